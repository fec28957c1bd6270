package user

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/user"
)

// UpdateUserUseCase 用户更新用例
// 全量替换语义，但密码例外：更新接口不接收密码字段，
// 存量哈希原样保留（密码只能通过editPass接口修改）
type UpdateUserUseCase struct {
	repo user.Repository
}

// NewUpdateUserUseCase 创建用户更新用例
func NewUpdateUserUseCase(repo user.Repository) *UpdateUserUseCase {
	return &UpdateUserUseCase{repo: repo}
}

// UpdateUserRequest 更新请求
type UpdateUserRequest struct {
	ID        uint
	Username  string
	Name      string
	Birthdate time.Time
}

// Execute 执行用户更新
// 错误顺序：ID不一致 → 记录不存在 → 缺失必填属性
func (uc *UpdateUserUseCase) Execute(ctx context.Context, pathID uint, req UpdateUserRequest) (*UserData, error) {
	if pathID != req.ID {
		return nil, user.ErrIDMismatch
	}

	existing, err := uc.repo.FindByID(ctx, pathID)
	if err != nil {
		return nil, err
	}

	existing.Username = req.Username
	existing.Name = req.Name
	if err := existing.SetBirthdate(req.Birthdate); err != nil {
		return nil, err
	}
	if err := existing.Validate(); err != nil {
		return nil, err
	}

	// Password与Books保持existing中的存量值
	if err := uc.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return ToUserData(existing), nil
}
