package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"kardio/config"
	"kardio/database"
	"kardio/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var (
	userColumns     = []string{"id", "username", "password", "email", "is_admin", "status", "created_at", "updated_at", "deleted_at"}
	categoryColumns = []string{"id", "name", "sort", "color", "created_at", "updated_at", "deleted_at"}
	reportColumns   = []string{"id", "user_id", "transaction_id", "merchant_id", "merchant_name_snapshot", "current_category_id_snapshot", "requested_category_id", "user_note", "status", "resolved_by_admin_user_id", "resolved_at", "resolution_note", "created_at", "updated_at"}
	txnColumns      = []string{"id", "user_id", "merchant_id", "category_id", "amount", "currency", "description", "occurred_at", "created_at", "updated_at", "deleted_at"}
	merchantColumns = []string{"id", "name", "created_at", "updated_at"}
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}
	config.GlobalConfig = cfg
	middleware.InitJWT(cfg)
	t.Cleanup(func() { config.GlobalConfig = nil })
	return cfg
}

// asUser 模拟 JWTAuth 写入的用户ID
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// jsonIDs 取出数组响应中每条记录的 id，保持顺序
func jsonIDs(t *testing.T, body []byte) string {
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &list))
	ids := make([]interface{}, 0, len(list))
	for _, item := range list {
		ids = append(ids, item["id"])
	}
	out, err := json.Marshal(ids)
	require.NoError(t, err)
	return string(out)
}
