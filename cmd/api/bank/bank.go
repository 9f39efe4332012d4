// Package bank holds the business operations on accounts: creation,
// lookup and transaction execution with fee charging.
package bank

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/txnbank/transactions-api/cmd/api/account"
	"github.com/txnbank/transactions-api/cmd/api/fee"
	"github.com/txnbank/transactions-api/internal/db"
)

// Create persists a new account with the requested number and initial
// balance. The number is the account identity and must be free.
func Create(dbc *sqlx.DB, r account.CreationRequest) (account.Account, error) {
	exists, err := account.Exists(dbc, r.Number)
	if err != nil {
		return account.Account{}, err
	}
	if exists {
		return account.Account{}, &account.AlreadyExistsError{Number: r.Number}
	}

	now := time.Now().UTC()
	acc := account.Account{
		Number:     r.Number,
		Balance:    r.InitialBalance,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	acc, err = account.Insert(dbc, acc)
	if err != nil {
		// two concurrent creates can both pass the existence check,
		// the unique constraint decides the race
		if pgErr, ok := errors.Cause(err).(*pq.Error); ok {
			if string(pgErr.Code) == db.PSQLErrUniqueConstraint {
				return account.Account{}, &account.AlreadyExistsError{Number: r.Number}
			}
		}
		return account.Account{}, errors.Wrap(err, "insert account")
	}

	log.Infof("successfully created account %d with balance %.2f", acc.Number, acc.Balance)
	return acc, nil
}

// Get returns the current snapshot of an account.
func Get(dbc *sqlx.DB, number int) (account.Account, error) {
	acc, err := account.SelectByNumber(dbc, number)
	if err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return account.Account{}, &account.NotFoundError{Number: number}
		}
		return account.Account{}, err
	}

	return acc, nil
}

// ExecuteTransaction debits amount plus the method's fee from the
// account. Lookup, guard and commit run in one sql transaction with
// the account row locked, so concurrent requests against the same
// number cannot both pass the balance guard.
func ExecuteTransaction(dbc *sqlx.DB, r account.TxRequest) (account.Account, error) {
	tx, err := dbc.BeginTxx(context.Background(), &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return account.Account{}, errors.Wrap(err, "begin transaction")
	}

	acc, err := account.SelectByNumberForUpdate(tx, r.Number)
	if err != nil {
		_ = tx.Rollback()
		if errors.Cause(err) == sql.ErrNoRows {
			return account.Account{}, &account.NotFoundError{Number: r.Number}
		}
		return account.Account{}, err
	}

	policy, err := fee.Resolve(r.Method)
	if err != nil {
		_ = tx.Rollback()
		return account.Account{}, err
	}

	charge, err := fee.WithLogging(policy).Fee(r.Amount)
	if err != nil {
		_ = tx.Rollback()
		return account.Account{}, err
	}

	total := r.Amount + charge
	if acc.Balance < total {
		_ = tx.Rollback()
		return account.Account{}, &account.FundsError{Balance: acc.Balance}
	}

	modifiedAt := time.Now().UTC()
	newBalance := acc.Balance - total

	if err = account.UpdateBalance(tx, acc.Number, newBalance, modifiedAt); err != nil {
		_ = tx.Rollback()
		log.Warnf("transaction on account %d was rolled back", acc.Number)
		return account.Account{}, err
	}

	if err = tx.Commit(); err != nil {
		log.Error("failed to commit transaction, error: ", err)
		return account.Account{}, errors.Wrap(err, "transaction commit")
	}

	acc.Balance = newBalance
	acc.ModifiedAt = modifiedAt

	log.Infof("successfully executed %s transaction of %.2f (fee %.2f) on account %d", r.Method, r.Amount, charge, acc.Number)
	return acc, nil
}
