package user

import (
	"context"
	"time"
)

// Repository 用户仓储接口
// 设计说明：
// 1. 接口定义在domain层（依赖倒置原则），实现在infrastructure/persistence/mysql
// 2. 所有查询都预加载Books关联（持有关系是用户聚合的一部分）
type Repository interface {
	// Create 创建用户
	// 用户名冲突时返回ErrUsernameDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户（含Books）
	// 不存在时返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindFirstByUsername 根据用户名查找（存在重复时取第一条）
	// 不存在时返回ErrUserNotFound
	FindFirstByUsername(ctx context.Context, username string) (*User, error)

	// Update 全量更新用户（含Books关联同步）
	Update(ctx context.Context, user *User) error

	// Delete 删除用户
	// 不存在时返回ErrUserNotFound
	Delete(ctx context.Context, id uint) error

	// FindAll 分页查询全部用户
	FindAll(ctx context.Context, page PageParams) ([]*User, int64, error)

	// FindByBirthdateRangeAndNameContains 按出生日期区间与姓名子串查询
	// from/to为nil表示该侧无界；substring为空表示不过滤姓名
	FindByBirthdateRangeAndNameContains(ctx context.Context, from, to *time.Time, substring string, page PageParams) ([]*User, int64, error)
}

// PageParams 分页参数
type PageParams struct {
	Page     int
	PageSize int
}

// Normalize 填充分页默认值并限制上限
func (p *PageParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}
