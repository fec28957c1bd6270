package user

import (
	"context"
	"strings"
	"testing"
	"time"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// stubRepo 只实现凭据查找
type stubRepo struct {
	users map[string]*User
}

func (r *stubRepo) Create(ctx context.Context, u *User) error { return nil }
func (r *stubRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	return nil, ErrUserNotFound
}
func (r *stubRepo) FindFirstByUsername(ctx context.Context, username string) (*User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}
func (r *stubRepo) Update(ctx context.Context, u *User) error { return nil }
func (r *stubRepo) Delete(ctx context.Context, id uint) error { return nil }
func (r *stubRepo) FindAll(ctx context.Context, page PageParams) ([]*User, int64, error) {
	return nil, 0, nil
}
func (r *stubRepo) FindByBirthdateRangeAndNameContains(ctx context.Context, from, to *time.Time, substring string, page PageParams) ([]*User, int64, error) {
	return nil, 0, nil
}

// TestHashAndVerifyPassword 哈希后能验证，且每次哈希结果不同（自动加盐）
func TestHashAndVerifyPassword(t *testing.T) {
	svc := NewService(&stubRepo{})

	h1, err := svc.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("哈希失败: %v", err)
	}
	if !strings.HasPrefix(h1, "$2") {
		t.Errorf("应是bcrypt格式哈希: %s", h1)
	}
	if !svc.VerifyPassword(h1, "s3cret") {
		t.Error("正确密码应验证通过")
	}
	if svc.VerifyPassword(h1, "wrong") {
		t.Error("错误密码不应验证通过")
	}

	h2, err := svc.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("哈希失败: %v", err)
	}
	if h1 == h2 {
		t.Error("相同明文两次哈希应产生不同结果")
	}

	if _, err := svc.HashPassword(""); !apperrors.Is(err, ErrNullAttributes) {
		t.Errorf("空密码应返回缺必填, got %v", err)
	}
}

// TestAuthenticate 认证失败时统一返回凭据错误
func TestAuthenticate(t *testing.T) {
	repo := &stubRepo{users: make(map[string]*User)}
	svc := NewService(repo)

	hashed, err := svc.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("哈希失败: %v", err)
	}
	repo.users["jdoe"] = &User{ID: 1, Username: "jdoe", Password: hashed}

	principal, err := svc.Authenticate(context.Background(), "jdoe", "s3cret")
	if err != nil {
		t.Fatalf("正确凭据应认证成功: %v", err)
	}
	if principal.Username != "jdoe" {
		t.Errorf("主体用户名不对: %s", principal.Username)
	}

	// 密码不匹配和用户不存在返回同一个错误（不泄露哪一步失败）
	if _, err := svc.Authenticate(context.Background(), "jdoe", "wrong"); !apperrors.Is(err, ErrBadCredentials) {
		t.Errorf("密码不匹配应返回凭据错误, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "ghost", "s3cret"); !apperrors.Is(err, ErrBadCredentials) {
		t.Errorf("用户不存在应返回凭据错误, got %v", err)
	}
}
