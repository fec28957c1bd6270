package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/mq"
)

// FindByISBNUseCase ISBN查询用例
// 设计说明：
// 1. 本地命中直接返回；未命中时领域服务负责抓取外部记录并入库
// 2. 新入库时发布book.imported事件（尽力而为，失败不影响响应）
// 3. Created标志由HTTP层映射为200/201
type FindByISBNUseCase struct {
	bookService book.Service
	publisher   mq.EventPublisher
}

// NewFindByISBNUseCase 创建ISBN查询用例
func NewFindByISBNUseCase(bookService book.Service, publisher mq.EventPublisher) *FindByISBNUseCase {
	return &FindByISBNUseCase{
		bookService: bookService,
		publisher:   publisher,
	}
}

// FindByISBNResponse ISBN查询响应
type FindByISBNResponse struct {
	Book    *BookData
	Created bool // true表示本次从外部源抓取并入库
}

// Execute 执行ISBN查询
func (uc *FindByISBNUseCase) Execute(ctx context.Context, isbn string) (*FindByISBNResponse, error) {
	b, created, err := uc.bookService.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	if created {
		if err := uc.publisher.Publish(ctx, "book.imported", bookEvent{
			BookID: b.ID,
			ISBN:   b.ISBN,
			Title:  b.Title,
		}); err != nil {
			logger.L().Warn("发布book.imported事件失败",
				logger.Uint("book_id", b.ID), logger.Err(err))
		}
	}

	return &FindByISBNResponse{
		Book:    ToBookData(b),
		Created: created,
	}, nil
}
