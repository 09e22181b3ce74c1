package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"kardio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend 内存版服务端，只实现客户端用到的接口
type fakeBackend struct {
	mu           sync.Mutex
	reports      []Report
	transactions map[string]*Transaction
	hits         map[string]int
	nextID       int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		transactions: map[string]*Transaction{
			"T1": {ID: "T1", UserID: "U1", MerchantID: "M1"},
			"T2": {ID: "T2", UserID: "U2", MerchantID: "M1"},
		},
		hits: map[string]int{},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Code: status, Message: message})
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hits[r.Method+" "+r.URL.Path]++

	if r.Header.Get("Authorization") != "Bearer good-token" {
		writeError(w, http.StatusUnauthorized, "未授权")
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/me/category-user-reports":
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RequestedCategoryID == "" {
			writeError(w, http.StatusBadRequest, "参数错误")
			return
		}
		txn, ok := b.transactions[req.TransactionID]
		if !ok {
			writeError(w, http.StatusBadRequest, "transaction does not exist")
			return
		}
		if txn.UserID != "U1" {
			writeError(w, http.StatusForbidden, "transaction belongs to another user")
			return
		}
		b.nextID++
		report := Report{
			ID:                        "R" + string(rune('0'+b.nextID)),
			UserID:                    "U1",
			TransactionID:             txn.ID,
			MerchantID:                txn.MerchantID,
			MerchantNameSnapshot:      "Coop",
			CurrentCategoryIDSnapshot: txn.CategoryID,
			RequestedCategoryID:       req.RequestedCategoryID,
			UserNote:                  req.UserNote,
			Status:                    models.ReportStatusPending,
			CreatedAt:                 time.Now().UTC(),
		}
		requested := req.RequestedCategoryID
		txn.CategoryID = &requested
		// 最新的在前
		b.reports = append([]Report{report}, b.reports...)
		writeJSON(w, http.StatusCreated, report)

	case r.Method == http.MethodGet && r.URL.Path == "/api/me/category-user-reports":
		writeJSON(w, http.StatusOK, b.reports)

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/me/transactions/"):
		txn, ok := b.transactions[strings.TrimPrefix(r.URL.Path, "/api/me/transactions/")]
		if !ok {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, txn)

	case r.Method == http.MethodGet && r.URL.Path == "/api/admin/category-user-reports":
		writeJSON(w, http.StatusOK, ReportPage{Total: int64(len(b.reports)), Page: 1, PageSize: 20, List: b.reports})

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/admin/category-user-reports/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/admin/category-user-reports/")
		for i := range b.reports {
			if b.reports[i].ID == id {
				writeJSON(w, http.StatusOK, b.reports[i])
				return
			}
		}
		writeError(w, http.StatusNotFound, "report not found")

	case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/api/admin/category-user-reports/"):
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/admin/category-user-reports/"), "/")
		var req resolveRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		for i := range b.reports {
			if b.reports[i].ID != parts[0] {
				continue
			}
			if b.reports[i].Status != models.ReportStatusPending {
				writeError(w, http.StatusConflict, "report is already resolved")
				return
			}
			decision := models.ReportStatusApproved
			if parts[1] == "reject" {
				decision = models.ReportStatusRejected
			}
			_ = b.reports[i].Resolve("A1", decision, req.ResolutionNote, time.Now())
			writeJSON(w, http.StatusOK, b.reports[i])
			return
		}
		writeError(w, http.StatusNotFound, "report not found")

	default:
		writeError(w, http.StatusInternalServerError, "unexpected "+r.Method+" "+r.URL.Path)
	}
}

func (b *fakeBackend) hitCount(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[key]
}

func newTestClient(t *testing.T) (*Client, *fakeBackend) {
	backend := newFakeBackend()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	return New(srv.URL, WithToken("good-token"), WithHTTPClient(srv.Client())), backend
}

func strPtr(s string) *string { return &s }

func TestClient_SubmitReport(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	r, err := c.SubmitReport(ctx, "T1", "C2", strPtr("wrong category"))
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, r.Status)
	assert.Nil(t, r.CurrentCategoryIDSnapshot)
	assert.Equal(t, "C2", r.RequestedCategoryID)
	assert.Equal(t, "wrong category", *r.UserNote)
	assert.Nil(t, r.ResolvedAt)

	mine, err := c.ListMine(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, r.ID, mine[0].ID)
	assert.Equal(t, r.MerchantNameSnapshot, mine[0].MerchantNameSnapshot)
	assert.Equal(t, r.RequestedCategoryID, mine[0].RequestedCategoryID)
}

func TestClient_SubmitInvalidatesReportsAndTransaction(t *testing.T) {
	c, backend := newTestClient(t)
	ctx := context.Background()

	before, err := c.Transaction(ctx, "T1")
	require.NoError(t, err)
	assert.Nil(t, before.CategoryID)
	_, err = c.ListMine(ctx)
	require.NoError(t, err)
	_, err = c.ListAdmin(ctx, "pending", 1)
	require.NoError(t, err)

	// 命中缓存，不再请求
	_, err = c.Transaction(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, 1, backend.hitCount("GET /api/me/transactions/T1"))

	_, err = c.SubmitReport(ctx, "T1", "C2", nil)
	require.NoError(t, err)

	for _, key := range []string{"reports/mine", "reports/admin/PENDING/1", "transaction/T1"} {
		_, ok := c.Cache().Peek(key)
		assert.False(t, ok, key)
	}

	after, err := c.Transaction(ctx, "T1")
	require.NoError(t, err)
	require.NotNil(t, after.CategoryID)
	assert.Equal(t, "C2", *after.CategoryID)
	assert.Equal(t, 2, backend.hitCount("GET /api/me/transactions/T1"))
}

func TestClient_SubmitNotOwner(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	mine, err := c.ListMine(ctx)
	require.NoError(t, err)
	assert.Empty(t, mine)

	_, err = c.SubmitReport(ctx, "T2", "C2", nil)
	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusForbidden, authErr.Status)

	// 失败的写操作不改变缓存
	_, ok := c.Cache().Peek(keyReportsMine)
	assert.True(t, ok)

	mine, err = c.ListMine(ctx)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestClient_SubmitValidation(t *testing.T) {
	c, _ := newTestClient(t)
	_, err := c.SubmitReport(context.Background(), "T404", "C2", nil)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, http.StatusBadRequest, vErr.Status)
	assert.Equal(t, "transaction does not exist", vErr.Message)
}

func TestClient_NoDeduplication(t *testing.T) {
	c, backend := newTestClient(t)
	ctx := context.Background()

	r1, err := c.SubmitReport(ctx, "T1", "C2", nil)
	require.NoError(t, err)
	r2, err := c.SubmitReport(ctx, "T1", "C3", nil)
	require.NoError(t, err)
	assert.NotEqual(t, r1.ID, r2.ID)
	assert.Equal(t, 2, backend.hitCount("POST /api/me/category-user-reports"))

	mine, err := c.ListMine(ctx)
	require.NoError(t, err)
	// 保持服务端顺序
	require.Len(t, mine, 2)
	assert.Equal(t, r2.ID, mine[0].ID)
	assert.Equal(t, r1.ID, mine[1].ID)
}

func TestClient_ResolveTwiceConflicts(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	r, err := c.SubmitReport(ctx, "T1", "C2", strPtr("wrong category"))
	require.NoError(t, err)

	resolved, err := c.Resolve(ctx, r.ID, models.ReportStatusApproved, strPtr("confirmed"))
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusApproved, resolved.Status)
	assert.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, "confirmed", *resolved.ResolutionNote)

	page, err := c.ListAdmin(ctx, "ALL", 1)
	require.NoError(t, err)

	_, err = c.Resolve(ctx, r.ID, models.ReportStatusRejected, nil)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	// 失败的处理不失效缓存，记录保持第一次处理的结果
	cachedPage, ok := c.Cache().Peek("reports/admin/ALL/1")
	require.True(t, ok)
	assert.Same(t, page, cachedPage)
	assert.Equal(t, models.ReportStatusApproved, page.List[0].Status)
}

func TestClient_ResolveInvalidatesAdminViews(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	r, err := c.SubmitReport(ctx, "T1", "C2", nil)
	require.NoError(t, err)
	_, err = c.ListAdmin(ctx, "PENDING", 1)
	require.NoError(t, err)
	_, err = c.ListMine(ctx)
	require.NoError(t, err)

	_, err = c.Transaction(ctx, "T1")
	require.NoError(t, err)
	_, err = c.Report(ctx, r.ID)
	require.NoError(t, err)
	_, ok := c.Cache().Peek(transactionKey("T1"))
	require.True(t, ok)

	_, err = c.Resolve(ctx, r.ID, models.ReportStatusRejected, nil)
	require.NoError(t, err)

	for _, key := range []string{"reports/admin/PENDING/1", keyReportsMine, reportKey(r.ID), transactionKey("T1")} {
		_, ok = c.Cache().Peek(key)
		assert.False(t, ok, key)
	}

	got, err := c.Report(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusRejected, got.Status)
}

func TestClient_ReportIDsDoNotCollideWithCollections(t *testing.T) {
	c, backend := newTestClient(t)
	ctx := context.Background()

	_, err := c.SubmitReport(ctx, "T1", "C2", nil)
	require.NoError(t, err)
	mine, err := c.ListMine(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	// 报告ID恰好是 mine 时走独立的 key，不会读到列表
	_, err = c.Report(ctx, "mine")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, http.StatusNotFound, vErr.Status)
	assert.Equal(t, 1, backend.hitCount("GET /api/admin/category-user-reports/mine"))

	cachedMine, ok := c.Cache().Peek(keyReportsMine)
	require.True(t, ok)
	assert.Len(t, cachedMine, 1)
}

func TestClient_ResolveRejectsUnknownDecision(t *testing.T) {
	c, backend := newTestClient(t)
	_, err := c.Resolve(context.Background(), "R1", models.ReportStatusPending, nil)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, backend.hitCount("POST /api/admin/category-user-reports/R1/approve"))
}

func TestClient_Unauthorized(t *testing.T) {
	c, _ := newTestClient(t)
	c.token = "bad-token"
	_, err := c.ListMine(context.Background())
	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.Status)
}

func TestClient_TransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusInternalServerError, "db down")
	}))
	c := New(srv.URL, WithToken("good-token"))

	_, err := c.ListMine(context.Background())
	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, http.StatusInternalServerError, tErr.Status)

	srv.Close()
	_, err = c.SubmitReport(context.Background(), "T1", "C2", nil)
	require.ErrorAs(t, err, &tErr)
	assert.Zero(t, tErr.Status)
	assert.False(t, errors.Is(err, context.Canceled))
}
