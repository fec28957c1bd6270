package user

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/mq"
)

// CreateUserUseCase 用户注册用例
// 设计说明：
// 1. 密码在入库前由领域服务做bcrypt哈希，明文不落地
// 2. 注册成功后发布user.registered事件（尽力而为）
type CreateUserUseCase struct {
	repo        user.Repository
	userService user.Service
	publisher   mq.EventPublisher
}

// NewCreateUserUseCase 创建用户注册用例
func NewCreateUserUseCase(repo user.Repository, userService user.Service, publisher mq.EventPublisher) *CreateUserUseCase {
	return &CreateUserUseCase{
		repo:        repo,
		userService: userService,
		publisher:   publisher,
	}
}

// CreateUserRequest 注册请求
type CreateUserRequest struct {
	Username  string
	Password  string // 明文，仅在本次请求生命周期内存在
	Name      string
	Birthdate time.Time
}

// Execute 执行用户注册
func (uc *CreateUserUseCase) Execute(ctx context.Context, req CreateUserRequest) (*UserData, error) {
	u := &user.User{
		Username: req.Username,
		Name:     req.Name,
	}
	if err := u.SetBirthdate(req.Birthdate); err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	hashed, err := uc.userService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u.Password = hashed

	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if err := uc.publisher.Publish(ctx, "user.registered", userEvent{
		UserID:   u.ID,
		Username: u.Username,
	}); err != nil {
		logger.L().Warn("发布user.registered事件失败",
			logger.Uint("user_id", u.ID), logger.Err(err))
	}

	return ToUserData(u), nil
}
