package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 测试对象是真实运行中的服务实例（连MySQL和Redis），
// 通过环境变量LIBRARY_TEST_BASE_URL指定服务地址，未设置时跳过整个包

const (
	// EnvBaseURL 服务基础地址环境变量，如 http://localhost:8080
	EnvBaseURL = "LIBRARY_TEST_BASE_URL"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// BaseURL 返回待测服务的基础地址，未配置时跳过当前测试
func BaseURL(t *testing.T) string {
	t.Helper()
	base := os.Getenv(EnvBaseURL)
	if base == "" {
		t.Skipf("未设置%s，跳过集成测试", EnvBaseURL)
	}
	return base
}

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// BookData 图书响应数据
type BookData struct {
	ID        uint   `json:"id"`
	Genre     string `json:"genre"`
	Author    string `json:"author"`
	Image     string `json:"image"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Publisher string `json:"publisher"`
	Year      string `json:"year"`
	Pages     int    `json:"pages"`
	ISBN      string `json:"isbn"`
}

// UserData 用户响应数据（永远没有password字段）
type UserData struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Birthdate string     `json:"birthdate"`
	Books     []BookData `json:"books"`
}

// PageData 分页响应数据
type PageData struct {
	List       json.RawMessage `json:"list"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// Credentials Basic认证凭证，空值表示匿名请求
type Credentials struct {
	Username string
	Password string
}

// Anonymous 匿名请求（不带Authorization头）
var Anonymous = Credentials{}

// DoJSON 发送请求并解析JSON响应，返回HTTP状态码和响应体
func DoJSON(t *testing.T, method, url string, data interface{}, creds Credentials) (int, *Response) {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	req.Header.Set("Content-Type", "application/json")
	if creds.Username != "" {
		req.SetBasicAuth(creds.Username, creds.Password)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return resp.StatusCode, &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, creds Credentials) (int, *Response) {
	t.Helper()
	return DoJSON(t, http.MethodPost, url, data, creds)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, creds Credentials) (int, *Response) {
	t.Helper()
	return DoJSON(t, http.MethodGet, url, nil, creds)
}

// PutJSON 发送PUT请求
func PutJSON(t *testing.T, url string, data interface{}, creds Credentials) (int, *Response) {
	t.Helper()
	return DoJSON(t, http.MethodPut, url, data, creds)
}

// DeleteJSON 发送DELETE请求
func DeleteJSON(t *testing.T, url string, creds Credentials) (int, *Response) {
	t.Helper()
	return DoJSON(t, http.MethodDelete, url, nil, creds)
}

// GenerateTestUsername 生成唯一的测试用户名
func GenerateTestUsername(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// GenerateTestISBN 生成唯一的测试ISBN（978开头13位）
func GenerateTestISBN() string {
	timestamp := time.Now().UnixNano()
	return fmt.Sprintf("978%010d", timestamp%10000000000)
}

// RegisterTestUser 注册测试用户并返回其凭证
// 注册接口是公开的，注册成功后即可用Basic认证访问受保护接口
func RegisterTestUser(t *testing.T, base, prefix string) (UserData, Credentials) {
	t.Helper()

	username := GenerateTestUsername(prefix)
	const password = "Test1234"

	status, resp := PostJSON(t, base+"/api/users/", map[string]string{
		"username":  username,
		"password":  password,
		"name":      "Integration " + prefix,
		"birthdate": "1990-05-21",
	}, Anonymous)
	require.Equal(t, http.StatusCreated, status, "注册失败: %s", resp.Message)

	var user UserData
	require.NoError(t, json.Unmarshal(resp.Data, &user), "解析注册响应失败")

	return user, Credentials{Username: username, Password: password}
}

// CreateTestBook 创建测试图书并返回图书数据
// 创建接口是公开的铺数据接口
func CreateTestBook(t *testing.T, base, title string) BookData {
	t.Helper()

	status, resp := PostJSON(t, base+"/api/books", map[string]interface{}{
		"genre":     "Fantasy",
		"author":    "Integration Author",
		"image":     "https://covers.openlibrary.org/b/id/8234423-S.jpg",
		"title":     title,
		"subtitle":  "-",
		"publisher": "Integration Press",
		"year":      "1994",
		"pages":     321,
		"isbn":      GenerateTestISBN(),
	}, Anonymous)
	require.Equal(t, http.StatusCreated, status, "创建图书失败: %s", resp.Message)

	var book BookData
	require.NoError(t, json.Unmarshal(resp.Data, &book), "解析图书响应失败")

	return book
}
