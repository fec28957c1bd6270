package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/mq"
)

// CreateBookUseCase 图书创建用例
type CreateBookUseCase struct {
	bookService book.Service
	publisher   mq.EventPublisher
}

// NewCreateBookUseCase 创建图书创建用例
func NewCreateBookUseCase(bookService book.Service, publisher mq.EventPublisher) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
		publisher:   publisher,
	}
}

// CreateBookRequest 创建请求
// 除Genre外全部必填，必填校验由领域实体的Validate负责
type CreateBookRequest struct {
	Genre     string
	Author    string
	Image     string
	Title     string
	Subtitle  string
	Publisher string
	Year      string
	Pages     int
	ISBN      string
}

// Execute 执行图书创建
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookData, error) {
	b := &book.Book{
		Genre:     req.Genre,
		Author:    req.Author,
		Image:     req.Image,
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Publisher: req.Publisher,
		Year:      req.Year,
		Pages:     req.Pages,
		ISBN:      req.ISBN,
	}

	if err := uc.bookService.Create(ctx, b); err != nil {
		return nil, err
	}

	if err := uc.publisher.Publish(ctx, "book.created", bookEvent{
		BookID: b.ID,
		ISBN:   b.ISBN,
		Title:  b.Title,
	}); err != nil {
		logger.L().Warn("发布book.created事件失败",
			logger.Uint("book_id", b.ID), logger.Err(err))
	}

	return ToBookData(b), nil
}
