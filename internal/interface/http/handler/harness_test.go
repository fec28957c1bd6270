package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library/internal/application/book"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/mq"
)

// =========================================
// 内存仓储（接口级别替身，不碰数据库）
// =========================================

type memBookRepo struct {
	byID   map[uint]*book.Book
	nextID uint
}

func newMemBookRepo() *memBookRepo {
	return &memBookRepo{byID: make(map[uint]*book.Book), nextID: 1}
}

func (r *memBookRepo) Create(ctx context.Context, b *book.Book) error {
	for _, existing := range r.byID {
		if existing.ISBN == b.ISBN {
			return book.ErrISBNDuplicate
		}
	}
	b.ID = r.nextID
	r.nextID++
	copied := *b
	r.byID[b.ID] = &copied
	return nil
}

func (r *memBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *memBookRepo) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	for _, b := range r.byID {
		if b.ISBN == isbn {
			copied := *b
			return &copied, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (r *memBookRepo) Update(ctx context.Context, b *book.Book) error {
	if _, ok := r.byID[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	copied := *b
	r.byID[b.ID] = &copied
	return nil
}

func (r *memBookRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.byID[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memBookRepo) FindAll(ctx context.Context, filters book.Filters, page book.PageParams) ([]*book.Book, int64, error) {
	var out []*book.Book
	for _, b := range r.byID {
		if matchBook(b, filters) {
			copied := *b
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func matchBook(b *book.Book, f book.Filters) bool {
	if f.Author != nil && b.Author != *f.Author {
		return false
	}
	if f.Genre != nil && b.Genre != *f.Genre {
		return false
	}
	if f.Image != nil && b.Image != *f.Image {
		return false
	}
	if f.Title != nil && b.Title != *f.Title {
		return false
	}
	if f.Subtitle != nil && b.Subtitle != *f.Subtitle {
		return false
	}
	if f.Publisher != nil && b.Publisher != *f.Publisher {
		return false
	}
	if f.Year != nil && b.Year != *f.Year {
		return false
	}
	if f.Pages != nil && b.Pages != *f.Pages {
		return false
	}
	if f.ISBN != nil && b.ISBN != *f.ISBN {
		return false
	}
	return true
}

type memUserRepo struct {
	byID   map[uint]*user.User
	nextID uint
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[uint]*user.User), nextID: 1}
}

func cloneUser(u *user.User) *user.User {
	copied := *u
	copied.Books = append([]*book.Book(nil), u.Books...)
	return &copied
}

func (r *memUserRepo) Create(ctx context.Context, u *user.User) error {
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return user.ErrUsernameDuplicate
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.byID[u.ID] = cloneUser(u)
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) FindFirstByUsername(ctx context.Context, username string) (*user.User, error) {
	var found *user.User
	for _, u := range r.byID {
		if u.Username == username && (found == nil || u.ID < found.ID) {
			found = u
		}
	}
	if found == nil {
		return nil, user.ErrUserNotFound
	}
	return cloneUser(found), nil
}

func (r *memUserRepo) Update(ctx context.Context, u *user.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	r.byID[u.ID] = cloneUser(u)
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.byID[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memUserRepo) FindAll(ctx context.Context, page user.PageParams) ([]*user.User, int64, error) {
	var out []*user.User
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *memUserRepo) FindByBirthdateRangeAndNameContains(ctx context.Context, from, to *time.Time, substring string, page user.PageParams) ([]*user.User, int64, error) {
	var out []*user.User
	for _, u := range r.byID {
		if from != nil && u.Birthdate.Before(*from) {
			continue
		}
		if to != nil && u.Birthdate.After(*to) {
			continue
		}
		if substring != "" && !containsFold(u.Name, substring) {
			continue
		}
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Birthdate.Before(out[j].Birthdate) })
	return out, int64(len(out)), nil
}

func containsFold(s, substr string) bool {
	return bytes.Contains(bytes.ToLower([]byte(s)), bytes.ToLower([]byte(substr)))
}

// memBookCache 内存图书缓存
type memBookCache struct {
	data map[uint]*book.Book
}

func newMemBookCache() *memBookCache {
	return &memBookCache{data: make(map[uint]*book.Book)}
}

func (c *memBookCache) Get(ctx context.Context, bookID uint) (*book.Book, error) {
	b, ok := c.data[bookID]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (c *memBookCache) Set(ctx context.Context, b *book.Book) error {
	copied := *b
	c.data[b.ID] = &copied
	return nil
}

func (c *memBookCache) Delete(ctx context.Context, bookID uint) error {
	delete(c.data, bookID)
	return nil
}

// stubFetcher 可编程的外部元数据桩
type stubFetcher struct {
	book  *book.Book
	err   error
	calls int
}

func (f *stubFetcher) FetchByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.book
	copied.ISBN = isbn
	return &copied, nil
}

// =========================================
// 测试环境组装
// =========================================

// testEnv 一套完整的HTTP测试环境
type testEnv struct {
	router   *gin.Engine
	bookRepo *memBookRepo
	userRepo *memUserRepo
	cache    *memBookCache
	fetcher  *stubFetcher
	userSvc  user.Service
}

// newTestEnv 组装真实的服务与用例，仓储和外部依赖用内存替身
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bookRepo := newMemBookRepo()
	userRepo := newMemUserRepo()
	cache := newMemBookCache()
	fetcher := &stubFetcher{}
	publisher := mq.NopPublisher{}

	bookService := book.NewService(bookRepo, fetcher)
	userService := user.NewService(userRepo)

	bookHandler := NewBookHandler(
		appbook.NewFindByISBNUseCase(bookService, publisher),
		appbook.NewCreateBookUseCase(bookService, publisher),
		appbook.NewUpdateBookUseCase(bookService, cache),
		appbook.NewDeleteBookUseCase(bookService, cache),
		appbook.NewGetBookUseCase(bookService, cache),
		appbook.NewListBooksUseCase(bookService),
	)
	userHandler := NewUserHandler(
		appuser.NewCreateUserUseCase(userRepo, userService, publisher),
		appuser.NewUpdateUserUseCase(userRepo),
		appuser.NewDeleteUserUseCase(userRepo),
		appuser.NewGetUserUseCase(userRepo),
		appuser.NewListUsersUseCase(userRepo),
		appuser.NewEditPasswordUseCase(userRepo, userService),
		appuser.NewAddBookUseCase(userRepo, bookRepo),
		appuser.NewRemoveBookUseCase(userRepo, bookRepo),
		appuser.NewListByBirthdateUseCase(userRepo),
	)
	authMiddleware := middleware.NewAuthMiddleware(userService)

	r := gin.New()
	api := r.Group("/api")

	books := api.Group("/books")
	books.POST("", bookHandler.CreateBook)
	books.GET("/greeting", bookHandler.Greeting)
	authedBooks := books.Group("", authMiddleware.RequireAuth())
	authedBooks.GET("/", bookHandler.ListBooks)
	authedBooks.GET("/byPublisherAndByGenreAndByYear", bookHandler.BooksByPublisherGenreYear)
	authedBooks.GET("/isbn/:isbn", bookHandler.FindByISBN)
	authedBooks.GET("/:id", bookHandler.GetBook)
	authedBooks.PUT("/:id", bookHandler.UpdateBook)
	authedBooks.DELETE("/:id", bookHandler.DeleteBook)

	users := api.Group("/users")
	users.POST("/", userHandler.CreateUser)
	authedUsers := users.Group("", authMiddleware.RequireAuth())
	authedUsers.GET("/", userHandler.ListUsers)
	authedUsers.GET("/username", userHandler.CurrentUser)
	authedUsers.GET("/birthdateBetweenAndNameContains", userHandler.UsersByBirthdate)
	authedUsers.PUT("/editPass/:id", userHandler.EditPassword)
	authedUsers.GET("/:id", userHandler.GetUser)
	authedUsers.PUT("/:id", userHandler.UpdateUser)
	authedUsers.DELETE("/:id", userHandler.DeleteUser)
	authedUsers.PUT("/:id/:bookId", userHandler.AddBook)
	authedUsers.DELETE("/:id/:bookId", userHandler.RemoveBook)

	return &testEnv{
		router:   r,
		bookRepo: bookRepo,
		userRepo: userRepo,
		cache:    cache,
		fetcher:  fetcher,
		userSvc:  userService,
	}
}

// seedUser 预置一个用户（密码真实bcrypt哈希，供Basic认证使用）
func (e *testEnv) seedUser(t *testing.T, username, password, name string) *user.User {
	t.Helper()
	hashed, err := e.userSvc.HashPassword(password)
	if err != nil {
		t.Fatalf("哈希密码失败: %v", err)
	}
	u := &user.User{
		Username:  username,
		Password:  hashed,
		Name:      name,
		Birthdate: time.Date(1990, 5, 21, 0, 0, 0, 0, time.UTC),
	}
	if err := e.userRepo.Create(context.Background(), u); err != nil {
		t.Fatalf("预置用户失败: %v", err)
	}
	return u
}

// seedBook 预置一本图书
func (e *testEnv) seedBook(t *testing.T, title, isbn string) *book.Book {
	t.Helper()
	b := &book.Book{
		Genre:     "Fantasy",
		Author:    "Author",
		Image:     "img",
		Title:     title,
		Subtitle:  "-",
		Publisher: "Pub",
		Year:      "1994",
		Pages:     100,
		ISBN:      isbn,
	}
	if err := e.bookRepo.Create(context.Background(), b); err != nil {
		t.Fatalf("预置图书失败: %v", err)
	}
	return b
}

// apiResponse 统一响应结构
type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do 发送请求并解析响应
// basicAuth格式"user:pass"，为空表示不带认证
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, basicAuth string) (int, *apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("序列化请求体失败: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if basicAuth != "" {
		parts := bytes.SplitN([]byte(basicAuth), []byte(":"), 2)
		req.SetBasicAuth(string(parts[0]), string(parts[1]))
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v, body = %s", err, w.Body.String())
	}
	return w.Code, &resp
}

// mustData 把响应data解析到目标结构
func mustData(t *testing.T, resp *apiResponse, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, out); err != nil {
		t.Fatalf("解析响应data失败: %v", err)
	}
}
