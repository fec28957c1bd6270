package dto

// CreateUserRequest HTTP用户注册请求
// birthdate格式：ISO日期（2006-01-02）
type CreateUserRequest struct {
	Username  string `json:"username" example:"jdoe"`
	Password  string `json:"password" example:"s3cret"`
	Name      string `json:"name" example:"John Doe"`
	Birthdate string `json:"birthdate" example:"1990-05-21"`
}

// UpdateUserRequest HTTP用户更新请求
// 不含password字段：密码只能通过editPass接口修改，存量哈希原样保留
type UpdateUserRequest struct {
	ID        uint   `json:"id" example:"1"`
	Username  string `json:"username" example:"jdoe"`
	Name      string `json:"name" example:"John Doe"`
	Birthdate string `json:"birthdate" example:"1990-05-21"`
}

// EditPasswordRequest HTTP修改密码请求
type EditPasswordRequest struct {
	OldPassword string `json:"oldPassword" example:"s3cret"`
	NewPassword string `json:"newPassword" example:"n3w-s3cret"`
}

// ListUsersRequest HTTP用户列表请求
type ListUsersRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}

// UsersByBirthdateRequest 出生日期区间+姓名子串查询请求
// fromDate/toDate均为ISO日期，任一缺省表示该侧无界；
// characters为姓名子串，缺省表示不过滤
type UsersByBirthdateRequest struct {
	FromDate   string `form:"fromDate" example:"1950-01-01"`
	ToDate     string `form:"toDate" example:"2000-12-31"`
	Characters string `form:"characters" example:"doe"`
	Page       int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}

// UserResponse HTTP用户响应
// 永远不包含password字段
type UserResponse struct {
	ID        uint            `json:"id" example:"1"`
	Username  string          `json:"username" example:"jdoe"`
	Name      string          `json:"name" example:"John Doe"`
	Birthdate string          `json:"birthdate" example:"1990-05-21"`
	Books     []*BookResponse `json:"books"`
}
