package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/user"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// userRepository 用户仓储实现(MySQL)
// 设计说明：
// 1. 所有查询Preload("Books")：持有关系是用户聚合的一部分
// 2. Update同步Books关联（Association Replace），实现全量替换语义
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrUsernameDuplicate
		}
		return apperrors.ErrDatabaseError.WithCause(err)
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找用户（含Books）
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Preload("Books").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}
	return toUserEntity(&model), nil
}

// FindFirstByUsername 根据用户名查找（存在重复时取第一条）
func (r *userRepository) FindFirstByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Preload("Books").
		Where("username = ?", username).
		Order("id ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}
	return toUserEntity(&model), nil
}

// Update 全量更新用户并同步Books关联
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	model.ID = u.ID
	model.CreatedAt = u.CreatedAt

	tx := r.db.WithContext(ctx)

	// Omit关联列：Save只写users表，关联由Replace显式同步
	if err := tx.Omit("Books").Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrUsernameDuplicate
		}
		return apperrors.ErrDatabaseError.WithCause(err)
	}

	books := make([]BookModel, len(u.Books))
	for i, b := range u.Books {
		books[i] = BookModel{ID: b.ID}
	}
	if err := tx.Model(model).Association("Books").Replace(books); err != nil {
		return apperrors.ErrDatabaseError.WithCause(err)
	}

	u.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除用户(软删除)
// 持有关系记录保留在连接表中；图书记录本身不受影响
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&UserModel{}, id)
	if result.Error != nil {
		return apperrors.ErrDatabaseError.WithCause(result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// FindAll 分页查询全部用户
func (r *userRepository) FindAll(ctx context.Context, page user.PageParams) ([]*user.User, int64, error) {
	var models []UserModel
	var total int64

	query := r.db.WithContext(ctx).Model(&UserModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithCause(err)
	}

	offset := (page.Page - 1) * page.PageSize
	err := query.Preload("Books").
		Order("id ASC").
		Limit(page.PageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithCause(err)
	}

	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users, total, nil
}

// FindByBirthdateRangeAndNameContains 出生日期区间+姓名子串查询
// from/to为nil表示该侧无界；substring为空表示不过滤姓名
func (r *userRepository) FindByBirthdateRangeAndNameContains(ctx context.Context, from, to *time.Time, substring string, page user.PageParams) ([]*user.User, int64, error) {
	var models []UserModel
	var total int64

	query := r.db.WithContext(ctx).Model(&UserModel{})
	if from != nil {
		query = query.Where("birthdate >= ?", *from)
	}
	if to != nil {
		query = query.Where("birthdate <= ?", *to)
	}
	if substring != "" {
		query = query.Where("name LIKE ?", "%"+substring+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithCause(err)
	}

	offset := (page.Page - 1) * page.PageSize
	err := query.Preload("Books").
		Order("birthdate ASC").
		Limit(page.PageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithCause(err)
	}

	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users, total, nil
}

// =========================================
// 辅助函数：模型转换
// =========================================

// toUserModel 领域实体 → GORM模型
func toUserModel(u *user.User) *UserModel {
	return &UserModel{
		Username:  u.Username,
		Password:  u.Password,
		Name:      u.Name,
		Birthdate: u.Birthdate,
	}
}

// toUserEntity GORM模型 → 领域实体
func toUserEntity(model *UserModel) *user.User {
	u := &user.User{
		ID:        model.ID,
		Username:  model.Username,
		Password:  model.Password,
		Name:      model.Name,
		Birthdate: model.Birthdate,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	for i := range model.Books {
		u.Books = append(u.Books, toBookEntity(&model.Books[i]))
	}
	return u
}
