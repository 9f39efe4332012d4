package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/txnbank/transactions-api/cmd/api/account"
)

const (
	existsQuery = "SELECT EXISTS\\(SELECT 1 FROM accounts WHERE number=\\$1\\);"
	insertQuery = "INSERT INTO accounts\\(number, balance, created_at, modified_at\\) VALUES\\(\\$1,\\$2,\\$3,\\$4\\);"
	selectQuery = "SELECT number, balance, created_at, modified_at FROM accounts WHERE number=\\$1;"
)

func TestCreateAccount(t *testing.T) {
	db, mock := NewMockDb()
	defer db.Close()
	app := NewApplication(db, nil)

	mock.ExpectQuery(existsQuery).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectPrepare(insertQuery).ExpectExec().WithArgs(1, 100.0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	payload := account.CreationRequest{Number: 1, InitialBalance: 100}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		t.Errorf("error encoding request body: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/accounts", &body)
	if err != nil {
		t.Errorf("error creating request: %v", err)
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	if e, a := http.StatusCreated, w.Code; e != a {
		t.Errorf("expected status code: %v, got status code: %v", e, a)
	}

	var actualAcc account.Account
	if err := json.NewDecoder(w.Body).Decode(&actualAcc); err != nil {
		t.Errorf("error decoding response body: %v", err)
	}

	assert.Equal(t, 1, actualAcc.Number)
	assert.Equal(t, 100.0, actualAcc.Balance)
	assert.NotNil(t, actualAcc.CreatedAt)
	assert.NotNil(t, actualAcc.ModifiedAt)
}

func TestCreateAccountInvalidPayload(t *testing.T) {
	db, _ := NewMockDb()
	defer db.Close()
	app := NewApplication(db, nil)

	req, err := http.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString("'"))
	if err != nil {
		t.Errorf("error creating request: %v", err)
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	if e, a := http.StatusBadRequest, w.Code; e != a {
		t.Errorf("expected status code: %v, got status code: %v", e, a)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Errorf("error decoding response body: %v", err)
	}

	assert.Equal(t, "invalid request payload, unable to parse", response["error"])
}

func TestCreateAccountNegativeBalance(t *testing.T) {
	db, _ := NewMockDb()
	defer db.Close()
	app := NewApplication(db, nil)

	payload := account.CreationRequest{Number: 1, InitialBalance: -5}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		t.Errorf("error encoding request body: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/accounts", &body)
	if err != nil {
		t.Errorf("error creating request: %v", err)
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	if e, a := http.StatusBadRequest, w.Code; e != a {
		t.Errorf("expected status code: %v, got status code: %v", e, a)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Errorf("error decoding response body: %v", err)
	}

	assert.Equal(t, "initial balance can't be negative", response["error"])
}

func TestCreateAccountNegativeNumber(t *testing.T) {
	db, _ := NewMockDb()
	defer db.Close()
	app := NewApplication(db, nil)

	payload := account.CreationRequest{Number: -1, InitialBalance: 10}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		t.Errorf("error encoding request body: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/accounts", &body)
	if err != nil {
		t.Errorf("error creating request: %v", err)
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	if e, a := http.StatusBadRequest, w.Code; e != a {
		t.Errorf("expected status code: %v, got status code: %v", e, a)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Errorf("error decoding response body: %v", err)
	}

	assert.Equal(t, "account number can't be negative", response["error"])
}

func TestCreateAccountAlreadyExists(t *testing.T) {
	db, mock := NewMockDb()
	defer db.Close()
	app := NewApplication(db, nil)

	mock.ExpectQuery(existsQuery).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	payload := account.CreationRequest{Number: 1, InitialBalance: 100}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		t.Errorf("error encoding request body: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/accounts", &body)
	if err != nil {
		t.Errorf("error creating request: %v", err)
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	if e, a := http.StatusConflict, w.Code; e != a {
		t.Errorf("expected status code: %v, got status code: %v", e, a)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Errorf("error decoding response body: %v", err)
	}

	assert.Equal(t, "account number 1 already exists", response["error"])
}

func TestGetAccountByNumber(t *testing.T) {
	db, mock := NewMockDb()
	defer db.Close()
	app := NewApplication(db, nil)

	utc := time.Now().UTC().Truncate(time.Millisecond)
	rows := sqlmock.NewRows([]string{"number", "balance", "created_at", "modified_at"}).
		AddRow(1, 100.0, utc, utc)

	mock.ExpectPrepare(selectQuery).ExpectQuery().WithArgs(1).WillReturnRows(rows)

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("/accounts/%d", 1), nil)
	if err != nil {
		t.Errorf("error creating request: %v", err)
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	if e, a := http.StatusOK, w.Code; e != a {
		t.Errorf("expected status code: %v, got status code: %v", e, a)
	}

	expectedAcc := account.Account{
		Number:     1,
		Balance:    100.0,
		CreatedAt:  utc,
		ModifiedAt: utc,
	}

	var actualAcc account.Account
	if err := json.NewDecoder(w.Body).Decode(&actualAcc); err != nil {
		t.Errorf("error decoding response body: %v", err)
	}

	if diff := cmp.Diff(expectedAcc, actualAcc); diff != "" {
		t.Errorf("unexpected difference in response body:\n%v", diff)
	}
}

func TestGetAccountByNumberDbError(t *testing.T) {
	db, mock := NewMockDb()
	defer db.Close()
	app := NewApplication(db, nil)

	mock.ExpectPrepare(selectQuery).ExpectQuery().WithArgs(2).WillReturnError(sql.ErrConnDone)

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("/accounts/%d", 2), nil)
	if err != nil {
		t.Errorf("error creating request: %v", err)
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	if e, a := http.StatusInternalServerError, w.Code; e != a {
		t.Errorf("expected status code: %v, got status code: %v", e, a)
	}
}

func TestGetAccountByNumberNotFound(t *testing.T) {
	db, mock := NewMockDb()
	defer db.Close()
	app := NewApplication(db, nil)

	mock.ExpectPrepare(selectQuery).ExpectQuery().WithArgs(999).WillReturnError(sql.ErrNoRows)

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("/accounts/%d", 999), nil)
	if err != nil {
		t.Errorf("error creating request: %v", err)
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	if e, a := http.StatusNotFound, w.Code; e != a {
		t.Errorf("expected status code: %v, got status code: %v", e, a)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Errorf("error decoding response body: %v", err)
	}

	assert.Equal(t, "account number 999 is not found", response["error"])
}

func TestGetAccountByNumberWithInvalidNumber(t *testing.T) {
	db, _ := NewMockDb()
	defer db.Close()
	app := NewApplication(db, nil)

	req, err := http.NewRequest(http.MethodGet, "/accounts/textNumber", nil)
	if err != nil {
		t.Errorf("error creating request: %v", err)
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	if e, a := http.StatusBadRequest, w.Code; e != a {
		t.Errorf("expected status code: %v, got status code: %v", e, a)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Errorf("error decoding response body: %v", err)
	}

	assert.Equal(t, "unable to parse account number", response["error"])
}
