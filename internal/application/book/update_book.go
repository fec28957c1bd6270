package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/logger"
)

// UpdateBookUseCase 图书更新用例
// 全量替换语义：请求体携带完整记录，逐字段覆盖存量记录
type UpdateBookUseCase struct {
	bookService book.Service
	cache       Cache
}

// NewUpdateBookUseCase 创建图书更新用例
func NewUpdateBookUseCase(bookService book.Service, cache Cache) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// UpdateBookRequest 更新请求
// ID来自请求体，与路径ID不一致时返回冲突错误
type UpdateBookRequest struct {
	ID        uint
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

// Execute 执行图书更新
// pathID是URL路径中的图书ID
func (uc *UpdateBookUseCase) Execute(ctx context.Context, pathID uint, req UpdateBookRequest) (*BookData, error) {
	b := &book.Book{
		ID:        req.ID,
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

	if err := uc.bookService.Update(ctx, pathID, b); err != nil {
		return nil, err
	}

	// 更新后删除缓存而不是更新缓存，下次读取时重新加载
	if err := uc.cache.Delete(ctx, pathID); err != nil {
		logger.L().Warn("删除图书缓存失败", logger.Uint("book_id", pathID), logger.Err(err))
	}

	return ToBookData(b), nil
}
