package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/metrics"
)

// BookCache 图书详情缓存
// 设计说明：
// 1. Cache-Aside策略：先查缓存，未命中查数据库后回填
// 2. 更新/删除图书时删除缓存而不是更新缓存，避免并发写不一致
// 3. 缓存故障只记录指标，不影响主流程（调用方把缓存miss当普通miss处理）
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	return &BookCache{client: client, ttl: ttl}
}

// Get 读取缓存，未命中返回(nil, nil)
func (c *BookCache) Get(ctx context.Context, bookID uint) (*book.Book, error) {
	val, err := c.client.Get(ctx, c.key(bookID)).Result()
	if err != nil {
		if err == redis.Nil {
			metrics.IncBookCacheMiss()
			return nil, nil
		}
		return nil, fmt.Errorf("读取图书缓存失败: %w", err)
	}

	var b book.Book
	if err := json.Unmarshal([]byte(val), &b); err != nil {
		return nil, fmt.Errorf("反序列化图书缓存失败: %w", err)
	}

	metrics.IncBookCacheHit()
	return &b, nil
}

// Set 写入缓存
func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	val, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("序列化图书失败: %w", err)
	}
	if err := c.client.Set(ctx, c.key(b.ID), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("写入图书缓存失败: %w", err)
	}
	return nil
}

// Delete 删除缓存，图书更新或删除后调用
func (c *BookCache) Delete(ctx context.Context, bookID uint) error {
	if err := c.client.Del(ctx, c.key(bookID)).Err(); err != nil {
		return fmt.Errorf("删除图书缓存失败: %w", err)
	}
	return nil
}

// key 格式：library:book:{id}
func (c *BookCache) key(bookID uint) string {
	return fmt.Sprintf("library:book:%d", bookID)
}
