package user

import (
	"context"

	"github.com/xiebiao/library/internal/domain/user"
)

// GetUserUseCase 用户详情用例
type GetUserUseCase struct {
	repo user.Repository
}

// NewGetUserUseCase 创建用户详情用例
func NewGetUserUseCase(repo user.Repository) *GetUserUseCase {
	return &GetUserUseCase{repo: repo}
}

// Execute 根据ID获取用户
func (uc *GetUserUseCase) Execute(ctx context.Context, id uint) (*UserData, error) {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserData(u), nil
}

// ExecuteByUsername 根据用户名获取用户（当前认证主体查询自己的记录）
func (uc *GetUserUseCase) ExecuteByUsername(ctx context.Context, username string) (*UserData, error) {
	u, err := uc.repo.FindFirstByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return ToUserData(u), nil
}
