package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ValidationError 请求被拒绝：参数不合法或引用不存在（400、404 及其他 4xx）
type ValidationError struct {
	Status  int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%d): %s", e.Status, e.Message)
}

// AuthorizationError 未登录或无权限（401/403）
type AuthorizationError struct {
	Status  int
	Message string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("not authorized (%d): %s", e.Status, e.Message)
}

// ConflictError 状态已变化，例如报告已被处理（409）
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Message
}

// TransportError 网络失败或服务端 5xx；Status 为 0 表示没有收到响应
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return "transport failure: " + e.Err.Error()
	}
	return fmt.Sprintf("server error (%d): %v", e.Status, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// errorFromResponse 按状态码映射为对应的错误类型，调用方已确认状态码不是 2xx
func errorFromResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	message := strings.TrimSpace(string(raw))
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		message = body.Message
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return &AuthorizationError{Status: resp.StatusCode, Message: message}
	case resp.StatusCode == http.StatusConflict:
		return &ConflictError{Message: message}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ValidationError{Status: resp.StatusCode, Message: message}
	default:
		return &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("%s", message)}
	}
}
