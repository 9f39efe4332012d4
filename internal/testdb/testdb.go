package testdb

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/txnbank/transactions-api/internal/db"
)

const (
	databaseUser = "root"

	databasePass = "root"

	databaseHost = "localhost"

	databaseName = "testdb"

	databasePort = 5432
)

var TestTime = time.Now().UTC().Truncate(time.Millisecond)

func Open() (*sqlx.DB, error) {
	return db.NewConnection(db.Config{
		User: databaseUser,
		Pass: databasePass,
		Host: databaseHost,
		Name: databaseName,
		Port: databasePort,
	})
}

func SaveAccount(dbc *sqlx.DB, number int, balance float64) error {
	stmt, err := dbc.Prepare("INSERT INTO accounts(number, balance, created_at, modified_at) VALUES($1,$2,$3,$4);")
	if err != nil {
		return errors.Wrap(err, "prepare test account insertion")
	}

	if _, err = stmt.Exec(number, balance, TestTime, TestTime); err != nil {
		if err := stmt.Close(); err != nil {
			return errors.Wrap(err, "close psql statement")
		}

		return errors.Wrap(err, "insert test account")
	}

	if err := stmt.Close(); err != nil {
		return errors.Wrap(err, "close psql statement")
	}

	return nil
}

func DeleteAccounts(dbc *sqlx.DB) error {
	if _, err := dbc.Exec("DELETE FROM accounts;"); err != nil {
		return errors.Wrap(err, "delete test accounts")
	}

	return nil
}
