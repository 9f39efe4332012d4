package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/txnbank/transactions-api/cmd/api/account"
	"github.com/txnbank/transactions-api/cmd/api/bank"
	"github.com/txnbank/transactions-api/cmd/api/fee"
	"github.com/txnbank/transactions-api/internal/web"
)

func (a *Application) ExecuteTransaction(w http.ResponseWriter, r *http.Request) {
	// request validation
	var payload account.TxRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		web.RespondError(w, http.StatusBadRequest, "invalid request payload, unable to parse")
		return
	}
	defer r.Body.Close()

	if payload.Amount < 0 {
		web.RespondError(w, http.StatusBadRequest, "transaction amount can't be negative")
		return
	}

	acc, err := bank.ExecuteTransaction(a.DB, payload)
	if err != nil {
		var notFound *account.NotFoundError
		var invalid *fee.InvalidMethodError
		var funds *account.FundsError

		switch {
		case errors.As(err, &notFound):
			web.RespondError(w, http.StatusNotFound, notFound.Error())
		case errors.As(err, &invalid):
			web.RespondError(w, http.StatusBadRequest, invalid.Error())
		case errors.As(err, &funds):
			web.RespondError(w, http.StatusUnprocessableEntity, funds.Error())
		default:
			web.RespondError(w, http.StatusInternalServerError, fmt.Sprintf("unable to execute transaction: %s", err.Error()))
		}
		return
	}

	a.cacheBalance(acc.Number, acc.Balance)

	web.Respond(w, http.StatusCreated, acc)
}
