package user

import (
	"github.com/xiebiao/library/internal/domain/user"

	bookapp "github.com/xiebiao/library/internal/application/book"
)

// BirthdateFormat 出生日期的序列化格式（ISO日期）
const BirthdateFormat = "2006-01-02"

// UserData 应用层用户DTO
// 说明：不含password字段，存储的哈希值没有任何对外序列化途径
type UserData struct {
	ID        uint                `json:"id"`
	Username  string              `json:"username"`
	Name      string              `json:"name"`
	Birthdate string              `json:"birthdate"`
	Books     []*bookapp.BookData `json:"books"`
}

// ToUserData 领域实体 → 应用层DTO
func ToUserData(u *user.User) *UserData {
	books := make([]*bookapp.BookData, len(u.Books))
	for i, b := range u.Books {
		books[i] = bookapp.ToBookData(b)
	}
	return &UserData{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Birthdate: u.Birthdate.Format(BirthdateFormat),
		Books:     books,
	}
}

// ToUserDataList 实体切片批量转换
func ToUserDataList(users []*user.User) []*UserData {
	out := make([]*UserData, len(users))
	for i, u := range users {
		out[i] = ToUserData(u)
	}
	return out
}

// userEvent 用户事件载荷（user.registered）
type userEvent struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}
