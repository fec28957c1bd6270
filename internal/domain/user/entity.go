package user

import (
	"time"

	"github.com/xiebiao/library/internal/domain/book"
)

// User 用户实体（聚合根）
// DDD设计说明：
// 1. Password只存bcrypt哈希，实体上没有任何返回明文的途径
// 2. Books是持有关系（多对多），成员判断按图书ID，
//    两条字段恰好相同的图书记录不会互相顶替
// 3. 领域实体不依赖GORM tag（infrastructure层的Repository负责映射）
type User struct {
	ID        uint
	Username  string
	Password  string // bcrypt哈希值
	Name      string
	Birthdate time.Time
	Books     []*book.Book
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetBirthdate 设置出生日期
// 业务规则：必须严格早于当前时间
func (u *User) SetBirthdate(birthdate time.Time) error {
	if birthdate.IsZero() || !birthdate.Before(time.Now()) {
		return ErrInvalidBirthdate
	}
	u.Birthdate = birthdate
	return nil
}

// Validate 必填属性检查（创建/更新前调用）
func (u *User) Validate() error {
	if u.Username == "" || u.Name == "" || u.Birthdate.IsZero() {
		return ErrNullAttributes
	}
	return nil
}

// OwnsBook 是否已持有指定图书（按ID判断）
func (u *User) OwnsBook(bookID uint) bool {
	for _, b := range u.Books {
		if b.ID == bookID {
			return true
		}
	}
	return false
}

// AddBook 添加持有图书
// 已持有时返回ErrBookAlreadyOwned
func (u *User) AddBook(b *book.Book) error {
	if b == nil || b.ID == 0 {
		return book.ErrBookNotFound
	}
	if u.OwnsBook(b.ID) {
		return ErrBookAlreadyOwned
	}
	u.Books = append(u.Books, b)
	return nil
}

// RemoveBook 移除持有图书
// 未持有时返回ErrBookNotOwned（对外表现为404，图书记录本身不受影响）
func (u *User) RemoveBook(bookID uint) error {
	for i, b := range u.Books {
		if b.ID == bookID {
			u.Books = append(u.Books[:i], u.Books[i+1:]...)
			return nil
		}
	}
	return ErrBookNotOwned
}
