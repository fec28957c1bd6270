package dto

// CreateBookRequest HTTP图书创建请求
// 必填校验交给领域层统一处理（缺失必填属性返回"Received Null Attributes"），
// 这里只做类型绑定，不加required tag，避免绑定错误抢先变成400 Bind Error
type CreateBookRequest struct {
	Genre     string `json:"genre" example:"Fantasy"`
	Author    string `json:"author" example:"J.K. Rowling"`
	Image     string `json:"image" example:"https://covers.openlibrary.org/b/id/8234423-S.jpg"`
	Title     string `json:"title" example:"Harry Potter and the Philosopher's Stone"`
	Subtitle  string `json:"subtitle" example:"-"`
	Publisher string `json:"publisher" example:"Bloomsbury"`
	Year      string `json:"year" example:"1997"`
	Pages     int    `json:"pages" example:"223"`
	ISBN      string `json:"isbn" example:"9780747532743"`
}

// UpdateBookRequest HTTP图书更新请求
// 全量替换语义：请求体必须携带完整记录，ID必须与路径ID一致
type UpdateBookRequest struct {
	ID        uint   `json:"id" example:"1"`
	Genre     string `json:"genre" example:"Fantasy"`
	Author    string `json:"author" example:"J.K. Rowling"`
	Image     string `json:"image" example:"https://covers.openlibrary.org/b/id/8234423-S.jpg"`
	Title     string `json:"title" example:"Harry Potter and the Philosopher's Stone"`
	Subtitle  string `json:"subtitle" example:"-"`
	Publisher string `json:"publisher" example:"Bloomsbury"`
	Year      string `json:"year" example:"1997"`
	Pages     int    `json:"pages" example:"223"`
	ISBN      string `json:"isbn" example:"9780747532743"`
}

// ListBooksRequest HTTP图书列表请求
// 过滤参数为指针：缺省(nil)表示不过滤该列，区别于过滤空字符串
type ListBooksRequest struct {
	Genre     *string `form:"genre"`
	Author    *string `form:"author"`
	Image     *string `form:"image"`
	Title     *string `form:"title"`
	Subtitle  *string `form:"subtitle"`
	Publisher *string `form:"publisher"`
	Year      *string `form:"year"`
	Pages     *int    `form:"pages"`
	ISBN      *string `form:"isbn"`

	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=author title publisher year pages isbn id" example:"title"`
	Order    string `form:"order" binding:"omitempty,oneof=asc desc" example:"asc"`
}

// BooksByPublisherGenreYearRequest 出版社+体裁+年份组合查询请求
type BooksByPublisherGenreYearRequest struct {
	Publisher *string `form:"publisher"`
	Genre     *string `form:"genre"`
	Year      *string `form:"year"`

	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID        uint   `json:"id" example:"1"`
	Genre     string `json:"genre,omitempty" example:"Fantasy"`
	Author    string `json:"author" example:"J.K. Rowling"`
	Image     string `json:"image" example:"https://covers.openlibrary.org/b/id/8234423-S.jpg"`
	Title     string `json:"title" example:"Harry Potter and the Philosopher's Stone"`
	Subtitle  string `json:"subtitle" example:"-"`
	Publisher string `json:"publisher" example:"Bloomsbury"`
	Year      string `json:"year" example:"1997"`
	Pages     int    `json:"pages" example:"223"`
	ISBN      string `json:"isbn" example:"9780747532743"`
}

// GreetingResponse 问候响应
type GreetingResponse struct {
	Message string `json:"message" example:"Hello, World!"`
}
