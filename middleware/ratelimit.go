package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// slidingWindow 按 key 统计窗口内的请求时间戳
type slidingWindow struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	hits   map[string][]time.Time
}

func newSlidingWindow(max int, window time.Duration) *slidingWindow {
	return &slidingWindow{max: max, window: window, hits: make(map[string][]time.Time)}
}

// allow 记录一次请求，超过上限返回 false（被拒绝的请求不计数）
func (w *slidingWindow) allow(key string, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	ts := prune(w.hits[key], now.Add(-w.window))
	if len(ts) >= w.max {
		w.hits[key] = ts
		return false
	}
	w.hits[key] = append(ts, now)
	return true
}

// sweep 清理所有过期记录
func (w *slidingWindow) sweep(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := now.Add(-w.window)
	for key, ts := range w.hits {
		if ts = prune(ts, cutoff); len(ts) == 0 {
			delete(w.hits, key)
		} else {
			w.hits[key] = ts
		}
	}
}

func prune(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// RateLimit 滑动窗口限流中间件
// keyFn 决定限流维度（IP、用户等），message 为 429 时返回的提示
func RateLimit(maxAttempts int, window time.Duration, keyFn func(*gin.Context) string, message string) gin.HandlerFunc {
	limiter := newSlidingWindow(maxAttempts, window)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for now := range ticker.C {
			limiter.sweep(now)
		}
	}()

	return func(c *gin.Context) {
		if !limiter.allow(keyFn(c), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": message,
			})
			return
		}
		c.Next()
	}
}

// LoginRateLimit 登录接口限流：每 IP 每个窗口最多 maxAttempts 次
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	return RateLimit(maxAttempts, window, func(c *gin.Context) string {
		return c.ClientIP()
	}, "登录尝试过于频繁，请稍后再试")
}

// UserRateLimit 按当前登录用户限流，需在 JWTAuth 之后使用
func UserRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	return RateLimit(maxAttempts, window, func(c *gin.Context) string {
		if id := GetCurrentUserID(c); id != "" {
			return "user:" + id
		}
		return "ip:" + c.ClientIP()
	}, "提交过于频繁，请稍后再试")
}
