package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"kardio/models"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	cfgFile = ""
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestReportsMine(t *testing.T) {
	now := time.Now().UTC()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/me/category-user-reports", r.URL.Path)
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]models.CategoryChangeReport{{
			ID: "R1", TransactionID: "T1", MerchantNameSnapshot: "Coop",
			RequestedCategoryID: "C2", Status: models.ReportStatusPending, CreatedAt: now,
		}})
	}))
	defer srv.Close()

	cfg := filepath.Join(t.TempDir(), "kardioctl.yaml")
	out, err := runCLI(t, "--config", cfg, "--server", srv.URL, "--token", "tkn", "reports", "mine")
	require.NoError(t, err)
	assert.Contains(t, out, "R1")
	assert.Contains(t, out, "PENDING")
	assert.Contains(t, out, "Coop")
}

func TestReportsApprove_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/category-user-reports/R1/approve", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":409,"message":"report R1 is already APPROVED"}`))
	}))
	defer srv.Close()

	cfg := filepath.Join(t.TempDir(), "kardioctl.yaml")
	_, err := runCLI(t, "--config", cfg, "--server", srv.URL, "--token", "tkn", "reports", "approve", "R1", "--note", "ok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already APPROVED")
}

func TestLogin_SavesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"token":"fresh-token","user":{"id":"U1","username":"alice","isAdmin":true}}`))
	}))
	defer srv.Close()

	cfg := filepath.Join(t.TempDir(), "kardioctl.yaml")
	out, err := runCLI(t, "--config", cfg, "--server", srv.URL, "login", "-u", "alice", "-p", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "alice")

	saved, err := os.ReadFile(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(saved), "fresh-token")
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "kardioctl")
}
