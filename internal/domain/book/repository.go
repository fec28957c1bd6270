package book

import (
	"context"
)

// Repository 图书仓储接口（依赖倒置原则）
// 设计说明：
// 1. 由domain层定义接口，infrastructure层实现
// 2. 便于Mock测试，不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	// ISBN与现有记录冲突时返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	// 不存在时返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	// 不存在时返回ErrBookNotFound
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update 全量更新图书
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书
	// 不存在时返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error

	// FindAll 按可选等值过滤条件分页查询
	// Filters中为nil的条件表示"匹配任意值"
	FindAll(ctx context.Context, filters Filters, page PageParams) ([]*Book, int64, error)
}

// Filters 图书等值过滤条件
// 指针字段为nil时该条件不生效（区别于过滤"空字符串"）
type Filters struct {
	Author    *string
	Genre     *string
	Image     *string
	Title     *string
	Subtitle  *string
	Publisher *string
	Year      *string
	Pages     *int
	ISBN      *string
}

// PageParams 分页排序参数
type PageParams struct {
	Page     int    // 页码（从1开始）
	PageSize int    // 每页数量
	SortBy   string // 排序字段（白名单校验在仓储实现中）
	Order    string // asc | desc
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
