package book

import (
	"context"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// MetadataFetcher 外部图书元数据抓取接口
// 实现在infrastructure/openlibrary；domain层只依赖这个抽象
type MetadataFetcher interface {
	// FetchByISBN 抓取并归一化外部记录
	// 错误约定：
	// - 外部服务返回非成功状态 → ErrCodeConnectionFailed
	// - 外部源没有该ISBN的记录 → ErrBookNotFound
	// - 外部记录结构异常（缺字段、类型不符、提取不到年份）→ ErrCodeUnableToReadRecord
	FetchByISBN(ctx context.Context, isbn string) (*Book, error)
}

// Service 图书领域服务
// 封装"本地查找、未命中则外部抓取并入库"的编排，以及创建/更新前的必填校验
type Service interface {
	// GetByISBN 按ISBN查找图书
	// 返回的created为true表示本地未命中、已从外部源抓取并入库
	GetByISBN(ctx context.Context, isbn string) (b *Book, created bool, err error)

	// Create 创建图书（必填属性校验后持久化）
	Create(ctx context.Context, b *Book) error

	// Update 全量更新图书
	// 错误顺序：ID不一致 → 记录不存在 → 缺失必填属性
	Update(ctx context.Context, id uint, b *Book) error

	// Delete 删除图书
	Delete(ctx context.Context, id uint) error

	// Get 根据ID获取图书
	Get(ctx context.Context, id uint) (*Book, error)

	// List 按过滤条件分页查询
	List(ctx context.Context, filters Filters, page PageParams) ([]*Book, int64, error)
}

type service struct {
	repo     Repository
	metadata MetadataFetcher
}

// NewService 创建图书领域服务
func NewService(repo Repository, metadata MetadataFetcher) Service {
	return &service{repo: repo, metadata: metadata}
}

// GetByISBN 本地查找，未命中则外部抓取并入库
//
// 状态机：LocalHit → 返回 | LocalMiss → Fetch → Persist → 返回(created)
// 并发说明：两个请求同时抓取同一ISBN时，数据库唯一索引保证只有一个入库成功，
// 失败的一方回读本地记录，当作本地命中处理
func (s *service) GetByISBN(ctx context.Context, isbn string) (*Book, bool, error) {
	existing, err := s.repo.FindByISBN(ctx, isbn)
	if err == nil {
		return existing, false, nil
	}
	if !apperrors.Is(err, ErrBookNotFound) {
		return nil, false, err
	}

	// 本地未命中，抓取外部记录（错误原样向上传递）
	fetched, err := s.metadata.FetchByISBN(ctx, isbn)
	if err != nil {
		return nil, false, err
	}
	if err := fetched.Validate(); err != nil {
		return nil, false, err
	}

	if err := s.repo.Create(ctx, fetched); err != nil {
		if apperrors.Is(err, ErrISBNDuplicate) {
			// 并发抓取竞争中落败，回读赢家写入的记录
			winner, findErr := s.repo.FindByISBN(ctx, isbn)
			if findErr != nil {
				return nil, false, findErr
			}
			return winner, false, nil
		}
		return nil, false, err
	}

	return fetched, true, nil
}

// Create 创建图书
func (s *service) Create(ctx context.Context, b *Book) error {
	if err := b.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, b)
}

// Update 全量更新图书
func (s *service) Update(ctx context.Context, id uint, b *Book) error {
	if id != b.ID {
		return ErrIDMismatch
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, b)
}

// Delete 删除图书
func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// Get 根据ID获取图书
func (s *service) Get(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// List 分页查询
func (s *service) List(ctx context.Context, filters Filters, page PageParams) ([]*Book, int64, error) {
	page.Normalize()
	return s.repo.FindAll(ctx, filters, page)
}
