package book

import (
	"strconv"
	"time"
)

// Book 图书实体（聚合根）
// DDD设计说明：
// 1. 除Genre外的业务字段都是必填项，持久化前由Validate统一检查
// 2. Year保持字符串存储（外部元数据源的出版年份是自由文本提取的），
//    但Setter保证其可解析为正整数
// 3. 领域实体不依赖GORM tag（infrastructure层的Repository负责映射）
type Book struct {
	ID        uint
	Genre     string // 体裁，唯一的可选字段
	Author    string
	Image     string // 封面图片URL
	Title     string
	Subtitle  string
	Publisher string
	Year      string // 出版年份，正整数的字符串表示
	Pages     int
	ISBN      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New 创建新图书（工厂方法）
// 所有Setter校验生效；任一失败立即返回错误，不产生半初始化实体
func New(author, image, title, subtitle, publisher, year string, pages int, isbn, genre string) (*Book, error) {
	b := &Book{}
	b.Author = author
	b.Image = image
	b.Title = title
	b.Subtitle = subtitle
	b.Publisher = publisher
	b.Genre = genre
	b.ISBN = isbn
	if err := b.SetYear(year); err != nil {
		return nil, err
	}
	if err := b.SetPages(pages); err != nil {
		return nil, err
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	return b, nil
}

// SetYear 设置出版年份
// 业务规则：必须是可解析为正整数的字符串
func (b *Book) SetYear(year string) error {
	n, err := strconv.Atoi(year)
	if err != nil || n <= 0 {
		return ErrInvalidYear
	}
	b.Year = year
	return nil
}

// SetPages 设置页数
// 业务规则：至少1页
func (b *Book) SetPages(pages int) error {
	if pages < 1 {
		return ErrInvalidPages
	}
	b.Pages = pages
	return nil
}

// Validate 必填属性与取值约束检查（创建/更新前调用）
// Genre是唯一的可选字段；其余任一为空即失败。
// Year/Pages的取值约束与Setter保持一致：实体可能由请求体字段直接组装，
// 不经过Setter，持久化入口必须重新兜住正整数约束
func (b *Book) Validate() error {
	if b.Author == "" || b.Image == "" || b.Title == "" || b.Subtitle == "" ||
		b.Publisher == "" || b.Year == "" || b.Pages == 0 || b.ISBN == "" {
		return ErrNullAttributes
	}
	if n, err := strconv.Atoi(b.Year); err != nil || n <= 0 {
		return ErrInvalidYear
	}
	if b.Pages < 1 {
		return ErrInvalidPages
	}
	return nil
}

// SameIdentity 按持久化标识比较
// 说明：持有关系的成员判断用ID而非全字段相等，
// 避免两条恰好同名的图书记录被当作同一本书
func (b *Book) SameIdentity(other *Book) bool {
	return other != nil && b.ID != 0 && b.ID == other.ID
}
