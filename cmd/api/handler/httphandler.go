package handler

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/julienschmidt/httprouter"
	"github.com/txnbank/transactions-api/internal/cache"
)

const (
	accounts        = "/accounts"
	accountByNumber = "/accounts/:number"
	balanceByNumber = "/accounts/:number/balance"
	transactions    = "/transactions"
)

type Application struct {
	DB      *sqlx.DB
	Cache   *cache.Redis
	handler http.Handler
}

func (a *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

func NewApplication(db *sqlx.DB, r *cache.Redis) *Application {
	app := Application{
		DB:    db,
		Cache: r,
	}

	router := httprouter.New()
	router.HandlerFunc(http.MethodPost, accounts, app.CreateAccount)
	router.HandlerFunc(http.MethodGet, accountByNumber, app.GetAccountByNumber)
	router.HandlerFunc(http.MethodGet, balanceByNumber, app.GetBalance)
	router.HandlerFunc(http.MethodPost, transactions, app.ExecuteTransaction)

	app.handler = router
	return &app
}
