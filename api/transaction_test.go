package api

import (
	"testing"
	"time"

	"kardio/database"
	"kardio/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transactionRouter(userID string) *gin.Engine {
	h := NewTransactionHandler(service.NewTransactionService(database.DB))
	router := newTestRouter()
	g := router.Group("/me", asUser(userID))
	g.GET("/transactions", h.List)
	g.GET("/transactions/:id", h.Get)
	g.POST("/transactions", h.Create)
	return router
}

func TestTransactionHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	testConfig(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `merchants`").
		WillReturnRows(sqlmock.NewRows(merchantColumns).AddRow("M1", "Coop", now, now))
	mock.ExpectQuery("SELECT .* FROM `user_category_rules`").
		WithArgs("U1", "M1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "merchant_id", "category_id", "source_report_id", "created_at", "updated_at"}).
			AddRow("rule-1", "U1", "M1", "C2", "R1", now, now))
	mock.ExpectExec("INSERT INTO `transactions`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := doJSON(transactionRouter("U1"), "POST", "/me/transactions",
		`{"merchantName":"Coop","amount":"-12.5","occurredAt":"2026-10-01T08:30:00Z"}`)

	assert.Equal(t, 201, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "C2", resp["categoryId"])
	assert.Equal(t, "-12.5", resp["amount"])
	assert.Equal(t, "EUR", resp["currency"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Create_MissingFields(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	testConfig(t)

	w := doJSON(transactionRouter("U1"), "POST", "/me/transactions", `{"amount":"1"}`)
	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Get(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	testConfig(t)
	now := time.Now()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs("T1").
		WillReturnRows(sqlmock.NewRows(txnColumns).AddRow("T1", "U2", "M1", nil, "5.00", "EUR", "", now, now, now, nil))

	w := doJSON(transactionRouter("U1"), "GET", "/me/transactions/T1", "")
	assert.Equal(t, 403, w.Code)

	mock.ExpectQuery("SELECT .* FROM `transactions`").WillReturnRows(sqlmock.NewRows(txnColumns))
	w = doJSON(transactionRouter("U1"), "GET", "/me/transactions/T404", "")
	assert.Equal(t, 404, w.Code)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	testConfig(t)
	now := time.Now()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `transactions` WHERE user_id = \\? AND category_id = \\?").
		WithArgs("U1", "C2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT .* FROM `transactions` WHERE user_id = \\? AND category_id = \\?").
		WillReturnRows(sqlmock.NewRows(txnColumns).AddRow("T1", "U1", "M1", "C2", "5.00", "EUR", "", now, now, now, nil))

	w := doJSON(transactionRouter("U1"), "GET", "/me/transactions?category_id=C2", "")
	assert.Equal(t, 200, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, float64(1), resp["total"])
	assert.Len(t, resp["list"], 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
