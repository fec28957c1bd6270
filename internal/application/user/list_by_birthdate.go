package user

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/user"
)

// ListByBirthdateUseCase 出生日期区间+姓名子串查询用例
// fromDate/toDate任一为nil表示该侧无界；characters为空表示不过滤姓名
type ListByBirthdateUseCase struct {
	repo user.Repository
}

// NewListByBirthdateUseCase 创建出生日期区间查询用例
func NewListByBirthdateUseCase(repo user.Repository) *ListByBirthdateUseCase {
	return &ListByBirthdateUseCase{repo: repo}
}

// ListByBirthdateRequest 区间查询请求
type ListByBirthdateRequest struct {
	From       *time.Time
	To         *time.Time
	Characters string
	Page       int
	PageSize   int
}

// Execute 执行区间查询
func (uc *ListByBirthdateUseCase) Execute(ctx context.Context, req ListByBirthdateRequest) (*ListUsersResponse, error) {
	params := user.PageParams{Page: req.Page, PageSize: req.PageSize}
	params.Normalize()

	users, total, err := uc.repo.FindByBirthdateRangeAndNameContains(ctx, req.From, req.To, req.Characters, params)
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
