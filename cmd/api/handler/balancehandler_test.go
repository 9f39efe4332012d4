package handler

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Rhymond/go-money"
	"github.com/stretchr/testify/assert"
)

func TestGetBalance(t *testing.T) {
	db, mock := NewMockDb()
	defer db.Close()
	app := NewApplication(db, nil)

	utc := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"number", "balance", "created_at", "modified_at"}).
		AddRow(3, 90.0, utc, utc)

	mock.ExpectPrepare(selectQuery).ExpectQuery().WithArgs(3).WillReturnRows(rows)

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("/accounts/%d/balance", 3), nil)
	if err != nil {
		t.Errorf("error creating request: %v", err)
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	if e, a := http.StatusOK, w.Code; e != a {
		t.Errorf("expected status code: %v, got status code: %v", e, a)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Errorf("error decoding response body: %v", err)
	}

	assert.Equal(t, displayBalance(90.0), response["balance"])
}

func TestGetBalanceNotFound(t *testing.T) {
	db, mock := NewMockDb()
	defer db.Close()
	app := NewApplication(db, nil)

	mock.ExpectPrepare(selectQuery).ExpectQuery().WithArgs(999).WillReturnError(sql.ErrNoRows)

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("/accounts/%d/balance", 999), nil)
	if err != nil {
		t.Errorf("error creating request: %v", err)
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	if e, a := http.StatusNotFound, w.Code; e != a {
		t.Errorf("expected status code: %v, got status code: %v", e, a)
	}
}

func TestGetBalanceInvalidNumber(t *testing.T) {
	db, _ := NewMockDb()
	defer db.Close()
	app := NewApplication(db, nil)

	req, err := http.NewRequest(http.MethodGet, "/accounts/textNumber/balance", nil)
	if err != nil {
		t.Errorf("error creating request: %v", err)
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	if e, a := http.StatusBadRequest, w.Code; e != a {
		t.Errorf("expected status code: %v, got status code: %v", e, a)
	}
}

func TestDisplayBalance(t *testing.T) {
	assert.Equal(t, money.New(9000, "BRL").Display(), displayBalance(90.0))
	assert.Equal(t, money.New(8970, "BRL").Display(), displayBalance(89.7))
}
