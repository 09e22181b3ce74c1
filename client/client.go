// Package client 类别纠错流程的 Go 客户端
//
// 所有操作最多执行一次：不重试、不排队、不按交易去重。错误原样返回给调用方，
// 类型为 *ValidationError、*AuthorizationError、*ConflictError 或 *TransportError。
// 写操作成功后按 invalidationTable 失效缓存，失败时缓存保持不变。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kardio/logger"
)

// Client 访问 kardio REST 接口
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	cache      *Cache
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 自定义 http.Client（超时、代理等）
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken 设置 Bearer token
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithCache 共用缓存，多个 Client 传入同一个 Cache 即进程内共享
func WithCache(cache *Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// New 创建客户端，baseURL 形如 http://localhost:8080
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = NewCache()
	}
	return c
}

// Token 当前 token
func (c *Client) Token() string {
	return c.token
}

// Cache 客户端使用的缓存
func (c *Client) Cache() *Cache {
	return c.cache
}

// do 发送请求；out 为 nil 时忽略响应体
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// 调用方主动取消不算传输失败
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	logger.Log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("kardio request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
