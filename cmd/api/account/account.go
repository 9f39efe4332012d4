package account

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type FundsError struct {
	Balance float64
}

func (fe *FundsError) Error() string {
	return fmt.Sprintf("insufficient funds, balance: %.2f", fe.Balance)
}

type NotFoundError struct {
	Number int
}

func (ne *NotFoundError) Error() string {
	return fmt.Sprintf("account number %d is not found", ne.Number)
}

type AlreadyExistsError struct {
	Number int
}

func (ae *AlreadyExistsError) Error() string {
	return fmt.Sprintf("account number %d already exists", ae.Number)
}

type Account struct {
	Number     int       `json:"number" db:"number"`
	Balance    float64   `json:"balance" db:"balance"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	ModifiedAt time.Time `json:"modifiedAt" db:"modified_at"`
}

func Exists(dbc *sqlx.DB, number int) (bool, error) {
	var exists bool

	if err := dbc.Get(&exists, existsByNumber, number); err != nil {
		return false, errors.Wrap(err, "check account number existence")
	}

	return exists, nil
}

func SelectByNumber(dbc *sqlx.DB, number int) (Account, error) {
	var acc Account

	pStmt, err := dbc.Preparex(selectByNumber)
	if err != nil {
		return Account{}, errors.Wrap(err, "prepare select account query")
	}

	defer func() {
		if err := pStmt.Close(); err != nil {
			log.WithError(errors.Wrap(err, "close psql statement")).Info("select account")
		}
	}()

	row := pStmt.QueryRowx(number)

	if err := row.StructScan(&acc); err != nil {
		return Account{}, errors.Wrap(err, "select singular row from accounts table")
	}

	return acc, nil
}

// SelectByNumberForUpdate locks the account row for the remainder of
// the surrounding transaction, serializing concurrent debits against
// the same account number.
func SelectByNumberForUpdate(tx *sqlx.Tx, number int) (Account, error) {
	var acc Account

	row := tx.QueryRowx(selectByNumberForUpdate, number)

	if err := row.StructScan(&acc); err != nil {
		return Account{}, errors.Wrap(err, "select account row for update")
	}

	return acc, nil
}

func Insert(dbc *sqlx.DB, acc Account) (Account, error) {
	stmt, err := dbc.Prepare(insert)
	if err != nil {
		return Account{}, errors.Wrap(err, "insert new account row prepare")
	}

	defer func() {
		if err := stmt.Close(); err != nil {
			log.WithError(errors.Wrap(err, "close psql statement")).Info("insert account")
		}
	}()

	if _, err = stmt.Exec(acc.Number, acc.Balance, acc.CreatedAt, acc.ModifiedAt); err != nil {
		return Account{}, err
	}

	return acc, nil
}

func UpdateBalance(tx *sqlx.Tx, number int, balance float64, modifiedAt time.Time) error {
	stmt, err := tx.Prepare(updateBalance)
	if err != nil {
		return errors.Wrap(err, "update account balance prepare")
	}

	if _, err = stmt.Exec(balance, modifiedAt, number); err != nil {
		return errors.Wrap(err, "update account balance row")
	}

	return nil
}
