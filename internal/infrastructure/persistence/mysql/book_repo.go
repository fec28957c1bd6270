package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明：
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 数据库特定错误（如ISBN唯一索引冲突）转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.ErrDatabaseError.WithCause(err)
	}

	// 回填自增ID和时间戳
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}
	return toBookEntity(&model), nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}
	return toBookEntity(&model), nil
}

// Update 全量更新图书（Save覆盖所有字段）
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	model.ID = b.ID
	model.CreatedAt = b.CreatedAt

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.ErrDatabaseError.WithCause(err)
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除图书(软删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.ErrDatabaseError.WithCause(result.Error)
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// FindAll 按可选等值过滤条件分页查询
// 过滤字段为nil时不参与查询（"匹配任意值"）
func (r *bookRepository) FindAll(ctx context.Context, filters book.Filters, page book.PageParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	query := r.db.WithContext(ctx).Model(&BookModel{})
	query = applyBookFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithCause(err)
	}

	query = query.Order(bookOrderClause(page))

	offset := (page.Page - 1) * page.PageSize
	if err := query.Limit(page.PageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithCause(err)
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

// applyBookFilters 拼接等值过滤条件
func applyBookFilters(query *gorm.DB, f book.Filters) *gorm.DB {
	if f.Author != nil {
		query = query.Where("author = ?", *f.Author)
	}
	if f.Genre != nil {
		query = query.Where("genre = ?", *f.Genre)
	}
	if f.Image != nil {
		query = query.Where("image = ?", *f.Image)
	}
	if f.Title != nil {
		query = query.Where("title = ?", *f.Title)
	}
	if f.Subtitle != nil {
		query = query.Where("subtitle = ?", *f.Subtitle)
	}
	if f.Publisher != nil {
		query = query.Where("publisher = ?", *f.Publisher)
	}
	if f.Year != nil {
		query = query.Where("year = ?", *f.Year)
	}
	if f.Pages != nil {
		query = query.Where("pages = ?", *f.Pages)
	}
	if f.ISBN != nil {
		query = query.Where("isbn = ?", *f.ISBN)
	}
	return query
}

// bookOrderClause 排序白名单，防止把任意用户输入拼进ORDER BY
func bookOrderClause(page book.PageParams) string {
	column := "created_at"
	switch page.SortBy {
	case "author", "title", "publisher", "year", "pages", "isbn", "id":
		column = page.SortBy
	}
	direction := "DESC"
	if page.Order == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}

// =========================================
// 辅助函数：模型转换
// =========================================

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	var genre *string
	if b.Genre != "" {
		genre = &b.Genre
	}
	return &BookModel{
		Genre:     genre,
		Author:    b.Author,
		Image:     b.Image,
		Title:     b.Title,
		Subtitle:  b.Subtitle,
		Publisher: b.Publisher,
		Year:      b.Year,
		Pages:     b.Pages,
		ISBN:      b.ISBN,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	genre := ""
	if model.Genre != nil {
		genre = *model.Genre
	}
	return &book.Book{
		ID:        model.ID,
		Genre:     genre,
		Author:    model.Author,
		Image:     model.Image,
		Title:     model.Title,
		Subtitle:  model.Subtitle,
		Publisher: model.Publisher,
		Year:      model.Year,
		Pages:     model.Pages,
		ISBN:      model.ISBN,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
