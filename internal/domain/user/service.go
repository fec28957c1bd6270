package user

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bcryptCost bcrypt加密强度
// cost=12是推荐值，平衡安全性与性能（cost每+1，耗时翻倍）
const bcryptCost = 12

// Service 用户领域服务
// 设计说明：
// 1. 密码哈希/校验集中在这里，实体不依赖具体的crypto实现
//    （两步式API：先HashPassword得到哈希，再赋给实体）
// 2. Authenticate是Basic认证中间件的凭据校验入口
type Service interface {
	// HashPassword 明文密码 → bcrypt哈希
	HashPassword(plaintext string) (string, error)

	// VerifyPassword 校验明文密码与存储哈希是否匹配
	VerifyPassword(hashed, plaintext string) bool

	// Authenticate 按用户名+明文密码认证
	// 用户不存在或密码不匹配时统一返回ErrBadCredentials（不泄露哪一步失败）
	Authenticate(ctx context.Context, username, plaintext string) (*User, error)
}

type service struct {
	repo Repository
}

// NewService 创建用户领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// HashPassword 明文密码bcrypt加密
// bcrypt自动加盐，相同明文每次产生不同哈希
func (s *service) HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrNullAttributes
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", apperrors.Wrap(err, "Password Hashing Failed")
	}
	return string(hashed), nil
}

// VerifyPassword 校验明文与哈希
func (s *service) VerifyPassword(hashed, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

// Authenticate Basic认证凭据校验
func (s *service) Authenticate(ctx context.Context, username, plaintext string) (*User, error) {
	u, err := s.repo.FindFirstByUsername(ctx, username)
	if err != nil {
		// 统一返回凭据错误，避免用户名枚举
		return nil, ErrBadCredentials
	}
	if !s.VerifyPassword(u.Password, plaintext) {
		return nil, ErrBadCredentials
	}
	return u, nil
}
