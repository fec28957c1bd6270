package openlibrary

import (
	"regexp"
	"strings"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// BookDTO 外部元数据源的传输结构（不持久化）
// 只在抓取到归一化为Book之间短暂存在
type BookDTO struct {
	ISBN          string
	Title         string
	Subtitle      string
	Publishers    []string
	Authors       []string
	NumberOfPages int
	PublishDate   string // 自由文本，如"1994"或"March 1994"
	Image         string
}

// nameJoiner 多作者/多出版社拼接分隔符
// 有意的有损归一化：Book只保留单个author/publisher字符串
const nameJoiner = " - "

// yearPattern 从自由文本出版日期中提取恰好4位数字的串
var yearPattern = regexp.MustCompile(`\b\d{4}\b`)

// AuthorsAsString 按源顺序拼接作者名
func (d *BookDTO) AuthorsAsString() string {
	return strings.Join(d.Authors, nameJoiner)
}

// PublishersAsString 按源顺序拼接出版社名
func (d *BookDTO) PublishersAsString() string {
	return strings.Join(d.Publishers, nameJoiner)
}

// Year 从PublishDate提取出版年份
// 提取不到4位数字串时返回错误（不允许无年份的图书入库）
func (d *BookDTO) Year() (string, error) {
	year := yearPattern.FindString(d.PublishDate)
	if year == "" {
		return "", apperrors.New(apperrors.ErrCodeUnableToReadRecord,
			"Unable To Read Book Record: no 4-digit year in publish date")
	}
	return year, nil
}

// ToBook DTO归一化为图书实体（字段1:1映射）
func (d *BookDTO) ToBook() (*book.Book, error) {
	year, err := d.Year()
	if err != nil {
		return nil, err
	}
	b, err := book.New(
		d.AuthorsAsString(),
		d.Image,
		d.Title,
		d.Subtitle,
		d.PublishersAsString(),
		year,
		d.NumberOfPages,
		d.ISBN,
		"", // 外部源没有体裁信息
	)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeUnableToReadRecord,
			"Unable To Read Book Record: "+err.Error())
	}
	return b, nil
}
