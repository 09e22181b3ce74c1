package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsStartupError(t *testing.T) {
	oldConfig, oldPort := configFile, port
	defer func() { configFile, port = oldConfig, oldPort }()

	// 端口 1 上没有 MySQL，启动失败应返回错误而不是直接退出进程
	configFile = filepath.Join(t.TempDir(), "kardio.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
database:
  host: "127.0.0.1"
  port: "1"
log:
  level: "error"
`), 0o600))
	port = "0"

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "数据库初始化失败")
}
