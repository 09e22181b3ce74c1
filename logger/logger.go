// Package logger 基于 zerolog 的全局结构化日志
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log 全局日志实例
var Log zerolog.Logger

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	Log = newConsole(os.Stdout)
}

func newConsole(out io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger()
}

// SetLevel 设置全局日志级别，未知级别按 info 处理
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// SetJSON 切换为 JSON 输出（生产环境）
func SetJSON() {
	Log = zerolog.New(os.Stdout).
		With().
		Timestamp().
		Logger()
}

// SetOutput 替换输出目标，测试中用于捕获日志
func SetOutput(w io.Writer) {
	Log = zerolog.New(w).With().Timestamp().Logger()
}

// SetConsole 控制台格式输出到 w
func SetConsole(w io.Writer) {
	Log = newConsole(w)
}

// Setup 按配置初始化日志
func Setup(level string, json bool) {
	SetLevel(level)
	if json {
		SetJSON()
	}
}
