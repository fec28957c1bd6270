package user

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/user"
)

// AddBookUseCase 添加持有图书用例
// 流程：先确认图书存在（404 Book Not Found），再加载用户（404 User Not Found），
// 持有判断由用户实体负责（已持有 → 409 Book Already Owned）
type AddBookUseCase struct {
	userRepo user.Repository
	bookRepo book.Repository
}

// NewAddBookUseCase 创建添加持有图书用例
func NewAddBookUseCase(userRepo user.Repository, bookRepo book.Repository) *AddBookUseCase {
	return &AddBookUseCase{
		userRepo: userRepo,
		bookRepo: bookRepo,
	}
}

// Execute 执行添加
func (uc *AddBookUseCase) Execute(ctx context.Context, userID, bookID uint) (*UserData, error) {
	b, err := uc.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.AddBook(b); err != nil {
		return nil, err
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	return ToUserData(u), nil
}
