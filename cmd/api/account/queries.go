package account

const (
	existsByNumber          = "SELECT EXISTS(SELECT 1 FROM accounts WHERE number=$1);"
	selectByNumber          = "SELECT number, balance, created_at, modified_at FROM accounts WHERE number=$1;"
	selectByNumberForUpdate = "SELECT number, balance, created_at, modified_at FROM accounts WHERE number=$1 FOR UPDATE;"
	insert                  = "INSERT INTO accounts(number, balance, created_at, modified_at) VALUES($1,$2,$3,$4);"
	updateBalance           = "UPDATE accounts SET balance=$1, modified_at=$2 WHERE number=$3;"
)
