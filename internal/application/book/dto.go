package book

import (
	"github.com/xiebiao/library/internal/domain/book"
)

// BookData 应用层图书DTO
// 设计说明：不直接对外暴露领域实体，领域模型变更不影响API契约
type BookData struct {
	ID        uint   `json:"id"`
	Genre     string `json:"genre,omitempty"`
	Author    string `json:"author"`
	Image     string `json:"image"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Publisher string `json:"publisher"`
	Year      string `json:"year"`
	Pages     int    `json:"pages"`
	ISBN      string `json:"isbn"`
}

// ToBookData 领域实体 → 应用层DTO
func ToBookData(b *book.Book) *BookData {
	return &BookData{
		ID:        b.ID,
		Genre:     b.Genre,
		Author:    b.Author,
		Image:     b.Image,
		Title:     b.Title,
		Subtitle:  b.Subtitle,
		Publisher: b.Publisher,
		Year:      b.Year,
		Pages:     b.Pages,
		ISBN:      b.ISBN,
	}
}

// ToBookDataList 实体切片批量转换
func ToBookDataList(books []*book.Book) []*BookData {
	out := make([]*BookData, len(books))
	for i, b := range books {
		out[i] = ToBookData(b)
	}
	return out
}

// bookEvent 图书事件载荷（book.created / book.imported）
type bookEvent struct {
	BookID uint   `json:"book_id"`
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
}
