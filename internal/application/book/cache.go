package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// Cache 图书详情缓存接口
// 实现在infrastructure/persistence/redis；应用层只依赖这个抽象
// 约定：Get未命中返回(nil, nil)，缓存故障由调用方降级处理
type Cache interface {
	Get(ctx context.Context, bookID uint) (*book.Book, error)
	Set(ctx context.Context, b *book.Book) error
	Delete(ctx context.Context, bookID uint) error
}
