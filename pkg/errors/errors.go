package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型，前三位即HTTP状态码（如40400 → 404）
// 2. Message是返回给客户端的原因短语（API契约的一部分，不要随意改动）
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 错误原因短语
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus 从错误码推导HTTP状态码
// 约定：错误码前三位就是HTTP状态码（40400 → 404，40901 → 409）
func (e *AppError) HTTPStatus() int {
	status := e.Code / 100
	if status < 100 || status > 599 {
		return 500
	}
	return status
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WithCause 在预定义错误的基础上附加内部错误
// 用途：保持对外的Code/Message不变，同时把底层原因带给日志
func (e *AppError) WithCause(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：前三位是HTTP状态码，后两位是同类错误的序号
// - 400xx: 请求体缺失必填属性、参数绑定失败
// - 401xx: 认证失败
// - 404xx: 资源不存在
// - 409xx: 业务冲突（ID不一致、重复持有、外部服务异常等）
// - 500xx: 服务端错误

const (
	// 参数错误（40000-40099）
	ErrCodeNullAttributes   = 40000 // 缺失必填属性
	ErrCodeBindError        = 40001 // 参数绑定失败
	ErrCodeInvalidParams    = 40002 // 参数错误(通用)
	ErrCodeInvalidYear      = 40003 // 出版年份不是正整数
	ErrCodeInvalidPages     = 40004 // 页数小于1
	ErrCodeInvalidBirthdate = 40005 // 出生日期不在过去

	// 认证错误（40100-40199）
	ErrCodeBadCredentials = 40100 // 用户名或密码错误

	// 资源错误（40400-40499）
	ErrCodeBookNotFound = 40400 // 图书不存在
	ErrCodeUserNotFound = 40401 // 用户不存在

	// 业务冲突（40900-40999）
	ErrCodeBookIDMismatch      = 40900 // 路径ID与请求体ID不一致（图书）
	ErrCodeUserIDMismatch      = 40907 // 路径ID与请求体ID不一致（用户）
	ErrCodeBookAlreadyOwned    = 40901 // 用户已持有该图书
	ErrCodeOldPasswordMismatch = 40902 // 旧密码不匹配
	ErrCodeConnectionFailed    = 40903 // 外部服务返回非成功状态
	ErrCodeUnableToReadRecord  = 40904 // 外部记录格式异常
	ErrCodeInvalidDate         = 40905 // 日期参数无法解析
	ErrCodeISBNDuplicate       = 40906 // ISBN已存在
	ErrCodeUsernameDuplicate   = 40908 // 用户名已存在

	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================
// 注意：Message作为响应的reason返回，与API文档保持一致

var (
	// 参数错误
	ErrNullAttributes = New(ErrCodeNullAttributes, "Received Null Attributes")
	ErrBindError      = New(ErrCodeBindError, "Malformed Request Body")
	ErrInvalidParams  = New(ErrCodeInvalidParams, "Invalid Parameters")

	// 认证
	ErrBadCredentials = New(ErrCodeBadCredentials, "Wrong User Or Password")

	// 资源不存在
	ErrBookNotFound = New(ErrCodeBookNotFound, "Book Not Found")
	ErrUserNotFound = New(ErrCodeUserNotFound, "User Not Found")

	// 业务冲突
	ErrBookIDMismatch      = New(ErrCodeBookIDMismatch, "Book Id Mismatch")
	ErrUserIDMismatch      = New(ErrCodeUserIDMismatch, "User Id Mismatch")
	ErrBookAlreadyOwned    = New(ErrCodeBookAlreadyOwned, "Book Already Owned")
	ErrOldPasswordMismatch = New(ErrCodeOldPasswordMismatch, "Old Password Mismatch")
	ErrInvalidDate         = New(ErrCodeInvalidDate, "Invalid date")
	ErrISBNDuplicate       = New(ErrCodeISBNDuplicate, "ISBN Already Exists")

	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "Internal Server Error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Database Error")
	ErrRedisError    = New(ErrCodeRedisError, "Cache Error")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Internal Server Error")
}

// Is 判断err是否为目标预定义错误（按Code比较）
// 说明：WithCause会生成新实例，指针比较会失效，所以按Code判断
func Is(err error, target *AppError) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == target.Code
}
