package handler

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/Rhymond/go-money"
	rcache "github.com/go-redis/cache/v8"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/txnbank/transactions-api/cmd/api/account"
	"github.com/txnbank/transactions-api/cmd/api/bank"
	"github.com/txnbank/transactions-api/internal/web"
)

func (a *Application) GetBalance(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("number")

	number, err := strconv.Atoi(id)
	if err != nil {
		web.RespondError(w, http.StatusBadRequest, "unable to parse account number")
		return
	}

	// get balance from cache
	if a.Cache != nil {
		var balance float64
		if err := a.Cache.Balances.Get(context.Background(), id, &balance); err != nil {
			log.Warnf("failed to get balance from cache for account number %s", id)
		} else {
			web.Respond(w, http.StatusOK, map[string]string{"balance": displayBalance(balance)})
			return
		}
	}

	// not in cache, find in db
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

	a.cacheBalance(acc.Number, acc.Balance)

	web.Respond(w, http.StatusOK, map[string]string{"balance": displayBalance(acc.Balance)})
}

func (a *Application) cacheBalance(number int, balance float64) {
	if a.Cache == nil {
		return
	}

	item := &rcache.Item{
		Ctx:   context.Background(),
		Key:   strconv.Itoa(number),
		Value: balance,
		TTL:   time.Hour,
	}
	if err := a.Cache.Balances.Set(item); err != nil {
		log.Warnf("failed to cache balance for account number %d", number)
	}
}

func displayBalance(balance float64) string {
	return money.New(int64(math.Round(balance*100)), "BRL").Display()
}
