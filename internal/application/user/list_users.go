package user

import (
	"context"

	"github.com/xiebiao/library/internal/domain/user"
)

// ListUsersUseCase 用户列表用例
type ListUsersUseCase struct {
	repo user.Repository
}

// NewListUsersUseCase 创建用户列表用例
func NewListUsersUseCase(repo user.Repository) *ListUsersUseCase {
	return &ListUsersUseCase{repo: repo}
}

// ListUsersResponse 列表响应
type ListUsersResponse struct {
	Users    []*UserData `json:"users"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// Execute 分页查询全部用户
func (uc *ListUsersUseCase) Execute(ctx context.Context, page, pageSize int) (*ListUsersResponse, error) {
	params := user.PageParams{Page: page, PageSize: pageSize}
	params.Normalize()

	users, total, err := uc.repo.FindAll(ctx, params)
	if err != nil {
		return nil, err
	}

	return &ListUsersResponse{
		Users:    ToUserDataList(users),
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}
