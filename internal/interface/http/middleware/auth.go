package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/domain/user"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// contextKeyUsername 认证主体用户名的Context key
const contextKeyUsername = "auth_username"

// AuthMiddleware HTTP Basic认证中间件
// 设计说明：
// 1. 凭据校验走用户领域服务（用户名查找+bcrypt比对）
// 2. 失败时带WWW-Authenticate响应头，方便浏览器和curl按标准流程弹出凭据
// 3. 认证通过后把主体用户名注入Context（/api/users/username接口使用）
type AuthMiddleware struct {
	userService user.Service
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(userService user.Service) *AuthMiddleware {
	return &AuthMiddleware{userService: userService}
}

// RequireAuth 要求Basic认证
// 使用方式：
//
//	authorized := r.Group("/api")
//	authorized.Use(authMiddleware.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			m.unauthorized(c)
			return
		}

		principal, err := m.userService.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			m.unauthorized(c)
			return
		}

		c.Set(contextKeyUsername, principal.Username)
		c.Next()
	}
}

// unauthorized 统一的401响应
// 无论用户不存在还是密码不匹配，对外只返回"Wrong User Or Password"
func (m *AuthMiddleware) unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="library"`)
	response.Error(c, apperrors.ErrBadCredentials)
	c.Abort()
}

// GetUsername 从Context获取认证主体用户名
func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(contextKeyUsername)
	if !exists {
		return "", false
	}
	name, ok := username.(string)
	return name, ok
}

// MustGetUsername 获取认证主体用户名
// 只能在RequireAuth保护的路由内调用；拿不到说明中间件配置有误
func MustGetUsername(c *gin.Context) string {
	name, ok := GetUsername(c)
	if !ok {
		panic("auth middleware not applied to this route")
	}
	return name
}
