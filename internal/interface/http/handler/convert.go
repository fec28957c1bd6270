package handler

import (
	appbook "github.com/xiebiao/library/internal/application/book"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/interface/http/dto"
)

// 应用层DTO → HTTP响应DTO的转换
// 两层DTO看似重复，但HTTP层可以独立演进（如增加展示字段）而不动应用层契约

func toBookResponse(b *appbook.BookData) *dto.BookResponse {
	return &dto.BookResponse{
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

func toBookResponses(books []*appbook.BookData) []*dto.BookResponse {
	out := make([]*dto.BookResponse, len(books))
	for i, b := range books {
		out[i] = toBookResponse(b)
	}
	return out
}

func toUserResponse(u *appuser.UserData) *dto.UserResponse {
	books := make([]*dto.BookResponse, len(u.Books))
	for i, b := range u.Books {
		books[i] = toBookResponse(b)
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Birthdate: u.Birthdate,
		Books:     books,
	}
}

func toUserResponses(users []*appuser.UserData) []*dto.UserResponse {
	out := make([]*dto.UserResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}
