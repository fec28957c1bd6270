package user

import (
	"context"

	"github.com/xiebiao/library/internal/domain/user"
)

// EditPasswordUseCase 修改密码用例
// 业务规则：
// 1. 必须先用旧密码通过校验，失败时存量哈希保持不变
// 2. 新密码重新做bcrypt哈希后落库
type EditPasswordUseCase struct {
	repo        user.Repository
	userService user.Service
}

// NewEditPasswordUseCase 创建修改密码用例
func NewEditPasswordUseCase(repo user.Repository, userService user.Service) *EditPasswordUseCase {
	return &EditPasswordUseCase{
		repo:        repo,
		userService: userService,
	}
}

// EditPasswordRequest 修改密码请求
type EditPasswordRequest struct {
	OldPassword string
	NewPassword string
}

// Execute 执行密码修改
func (uc *EditPasswordUseCase) Execute(ctx context.Context, id uint, req EditPasswordRequest) (*UserData, error) {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !uc.userService.VerifyPassword(u.Password, req.OldPassword) {
		return nil, user.ErrOldPasswordMismatch
	}

	hashed, err := uc.userService.HashPassword(req.NewPassword)
	if err != nil {
		return nil, err
	}
	u.Password = hashed

	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return ToUserData(u), nil
}
