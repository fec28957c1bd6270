package user

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/user"
)

// RemoveBookUseCase 移除持有图书用例
// 未持有时返回404（客户端视角是"这个用户的书单里没有这本书"），
// 图书记录本身不受影响
type RemoveBookUseCase struct {
	userRepo user.Repository
	bookRepo book.Repository
}

// NewRemoveBookUseCase 创建移除持有图书用例
func NewRemoveBookUseCase(userRepo user.Repository, bookRepo book.Repository) *RemoveBookUseCase {
	return &RemoveBookUseCase{
		userRepo: userRepo,
		bookRepo: bookRepo,
	}
}

// Execute 执行移除
func (uc *RemoveBookUseCase) Execute(ctx context.Context, userID, bookID uint) (*UserData, error) {
	if _, err := uc.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.RemoveBook(bookID); err != nil {
		return nil, err
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	return ToUserData(u), nil
}
