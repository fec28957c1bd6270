package user

import (
	"context"

	"github.com/xiebiao/library/internal/domain/user"
)

// DeleteUserUseCase 用户删除用例
type DeleteUserUseCase struct {
	repo user.Repository
}

// NewDeleteUserUseCase 创建用户删除用例
func NewDeleteUserUseCase(repo user.Repository) *DeleteUserUseCase {
	return &DeleteUserUseCase{repo: repo}
}

// Execute 按ID删除用户
func (uc *DeleteUserUseCase) Execute(ctx context.Context, id uint) error {
	return uc.repo.Delete(ctx, id)
}
