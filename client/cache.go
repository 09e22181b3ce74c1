package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache 查询结果缓存，key 为资源路径，例如 reports/mine、transactions/<id>
//
// 同一 key 的并发读取共用一次请求。取数期间 key 被失效时，结果照常返回给调用方但不写入缓存；
// 发起取数的调用方 context 已取消时，结果同样不写入。
// 缓存的值由多个调用方共享，调用方不得修改。
type Cache struct {
	mu      sync.Mutex
	entries map[string]any
	gen     uint64
	// key 或前缀最近一次被失效时的 gen
	keyGen    map[string]uint64
	prefixGen map[string]uint64
	group     singleflight.Group
}

// NewCache 创建空缓存
func NewCache() *Cache {
	return &Cache{
		entries:   make(map[string]any),
		keyGen:    make(map[string]uint64),
		prefixGen: make(map[string]uint64),
	}
}

// Peek 只读缓存，不发起请求
func (c *Cache) Peek(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

// Len 当前缓存条目数
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Invalidate 删除缓存；以 "/*" 结尾的 key 表示删除该前缀下的全部条目
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	for _, key := range keys {
		if prefix, ok := strings.CutSuffix(key, "*"); ok {
			c.prefixGen[prefix] = c.gen
			for k := range c.entries {
				if strings.HasPrefix(k, prefix) {
					delete(c.entries, k)
				}
			}
			continue
		}
		c.keyGen[key] = c.gen
		delete(c.entries, key)
	}
}

// invalidatedAt key 最近一次被失效的 gen，需持有锁
func (c *Cache) invalidatedAt(key string) uint64 {
	g := c.keyGen[key]
	for prefix, pg := range c.prefixGen {
		if pg > g && strings.HasPrefix(key, prefix) {
			g = pg
		}
	}
	return g
}

// Get 命中直接返回，否则调用 fetch
func (c *Cache) Get(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	if v, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return v, nil
	}
	started := c.gen
	// 失效之后的读取不与失效之前的请求合并
	flightKey := key + "@" + strconv.FormatUint(c.invalidatedAt(key), 10)
	c.mu.Unlock()

	ch := c.group.DoChan(flightKey, func() (any, error) {
		// 取数不随单个调用方取消，其他等待者仍能拿到结果
		v, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() == nil && c.invalidatedAt(key) <= started {
			c.entries[key] = v
		}
		return v, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// cached 泛型包装
func cached[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error)) (T, error) {
	v, err := c.Get(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	var zero T
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache key %q holds %T, want %T", key, v, zero)
	}
	return t, nil
}
