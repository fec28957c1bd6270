package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/logger"
)

// GetBookUseCase 图书详情用例
// Cache-Aside：先查Redis，未命中查数据库后回填
// 缓存故障降级为直查数据库，只记录日志
type GetBookUseCase struct {
	bookService book.Service
	cache       Cache
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(bookService book.Service, cache Cache) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// Execute 执行图书详情查询
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookData, error) {
	if cached, err := uc.cache.Get(ctx, id); err != nil {
		logger.L().Warn("读取图书缓存失败", logger.Uint("book_id", id), logger.Err(err))
	} else if cached != nil {
		return ToBookData(cached), nil
	}

	b, err := uc.bookService.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, b); err != nil {
		logger.L().Warn("回填图书缓存失败", logger.Uint("book_id", id), logger.Err(err))
	}

	return ToBookData(b), nil
}
