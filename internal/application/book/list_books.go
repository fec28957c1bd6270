package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// ListBooksUseCase 图书列表用例
// 同时服务全量过滤列表和"出版社+体裁+年份"组合查询，
// 后者只是Filters的一个子集，不单独建用例
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建图书列表用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表请求
// 过滤字段为nil表示不过滤该列
type ListBooksRequest struct {
	Filters  book.Filters
	Page     int
	PageSize int
	SortBy   string
	Order    string
}

// ListBooksResponse 列表响应
type ListBooksResponse struct {
	Books    []*BookData `json:"books"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	page := book.PageParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		SortBy:   req.SortBy,
		Order:    req.Order,
	}
	page.Normalize()

	books, total, err := uc.bookService.List(ctx, req.Filters, page)
	if err != nil {
		return nil, err
	}

	return &ListBooksResponse{
		Books:    ToBookDataList(books),
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}
