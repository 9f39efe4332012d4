package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/txnbank/transactions-api/cmd/api/account"
	"github.com/txnbank/transactions-api/cmd/api/bank"
	"github.com/txnbank/transactions-api/internal/web"
)

func (a *Application) CreateAccount(w http.ResponseWriter, r *http.Request) {
	// request validation
	var payload account.CreationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		web.RespondError(w, http.StatusBadRequest, "invalid request payload, unable to parse")
		return
	}
	defer r.Body.Close()

	if payload.Number < 0 {
		web.RespondError(w, http.StatusBadRequest, "account number can't be negative")
		return
	}
	if payload.InitialBalance < 0 {
		web.RespondError(w, http.StatusBadRequest, "initial balance can't be negative")
		return
	}

	acc, err := bank.Create(a.DB, payload)
	if err != nil {
		var alreadyExists *account.AlreadyExistsError
		if errors.As(err, &alreadyExists) {
			web.RespondError(w, http.StatusConflict, alreadyExists.Error())
			return
		}

		web.RespondError(w, http.StatusInternalServerError, fmt.Sprintf("unable to insert account: %s", err.Error()))
		return
	}

	a.cacheBalance(acc.Number, acc.Balance)

	web.Respond(w, http.StatusCreated, acc)
}

func (a *Application) GetAccountByNumber(w http.ResponseWriter, r *http.Request) {
	// request validation
	number, err := strconv.Atoi(httprouter.ParamsFromContext(r.Context()).ByName("number"))
	if err != nil {
		web.RespondError(w, http.StatusBadRequest, "unable to parse account number")
		return
	}

	acc, err := bank.Get(a.DB, number)
	if err != nil {
		var notFound *account.NotFoundError
		if errors.As(err, &notFound) {
			web.RespondError(w, http.StatusNotFound, notFound.Error())
			return
		}

		web.RespondError(w, http.StatusInternalServerError, fmt.Sprintf("unable to find account: %s", err.Error()))
		return
	}

	web.Respond(w, http.StatusOK, acc)
}
