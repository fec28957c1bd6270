package book

import (
	"testing"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// newValidBook 构造一本字段齐全的图书
func newValidBook() *Book {
	return &Book{
		Genre:     "Fantasy",
		Author:    "J.K. Rowling",
		Image:     "https://covers.openlibrary.org/b/id/8234423-S.jpg",
		Title:     "Harry Potter and the Philosopher's Stone",
		Subtitle:  "-",
		Publisher: "Bloomsbury",
		Year:      "1997",
		Pages:     223,
		ISBN:      "9780747532743",
	}
}

// TestSetYear 测试出版年份校验
func TestSetYear(t *testing.T) {
	b := &Book{}

	cases := []struct {
		year    string
		wantErr bool
	}{
		{"1997", false},
		{"1", false},
		{"abc", true},
		{"-5", true},
		{"0", true},
		{"", true},
	}

	for _, tc := range cases {
		err := b.SetYear(tc.year)
		if tc.wantErr && err == nil {
			t.Errorf("SetYear(%q) 应该失败", tc.year)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("SetYear(%q) 不应该失败: %v", tc.year, err)
		}
		if tc.wantErr && err != nil && !apperrors.Is(err, ErrInvalidYear) {
			t.Errorf("SetYear(%q) 错误类型不对: %v", tc.year, err)
		}
	}
}

// TestSetPages 测试页数校验
func TestSetPages(t *testing.T) {
	b := &Book{}

	if err := b.SetPages(0); err == nil {
		t.Error("0页应该失败")
	}
	if err := b.SetPages(-10); err == nil {
		t.Error("负数页数应该失败")
	}
	if err := b.SetPages(1); err != nil {
		t.Errorf("1页不应该失败: %v", err)
	}
	if b.Pages != 1 {
		t.Errorf("Pages = %d, 期望 1", b.Pages)
	}
}

// TestValidate 测试必填属性检查
// 除Genre外任一字段缺失都应失败
func TestValidate(t *testing.T) {
	if err := newValidBook().Validate(); err != nil {
		t.Fatalf("完整图书校验不应失败: %v", err)
	}

	// Genre是唯一可选字段
	b := newValidBook()
	b.Genre = ""
	if err := b.Validate(); err != nil {
		t.Errorf("缺少Genre不应失败: %v", err)
	}

	mutations := map[string]func(*Book){
		"author":    func(b *Book) { b.Author = "" },
		"image":     func(b *Book) { b.Image = "" },
		"title":     func(b *Book) { b.Title = "" },
		"subtitle":  func(b *Book) { b.Subtitle = "" },
		"publisher": func(b *Book) { b.Publisher = "" },
		"year":      func(b *Book) { b.Year = "" },
		"pages":     func(b *Book) { b.Pages = 0 },
		"isbn":      func(b *Book) { b.ISBN = "" },
	}

	for field, mutate := range mutations {
		b := newValidBook()
		mutate(b)
		err := b.Validate()
		if err == nil {
			t.Errorf("缺少%s应该失败", field)
			continue
		}
		if !apperrors.Is(err, ErrNullAttributes) {
			t.Errorf("缺少%s的错误类型不对: %v", field, err)
		}
	}
}

// TestValidateValueConstraints 测试Validate的取值约束
// 实体可能不经过Setter直接组装（请求体字段逐个赋值），
// Validate必须和Setter一样拒绝非正年份和非正页数
func TestValidateValueConstraints(t *testing.T) {
	years := []string{"-5", "0", "abc"}
	for _, year := range years {
		b := newValidBook()
		b.Year = year
		err := b.Validate()
		if err == nil {
			t.Errorf("year=%q 应该失败", year)
			continue
		}
		if !apperrors.Is(err, ErrInvalidYear) {
			t.Errorf("year=%q 错误类型不对: %v", year, err)
		}
	}

	b := newValidBook()
	b.Pages = -3
	err := b.Validate()
	if err == nil {
		t.Fatal("pages=-3 应该失败")
	}
	if !apperrors.Is(err, ErrInvalidPages) {
		t.Errorf("pages=-3 错误类型不对: %v", err)
	}

	// 年份错误与页数错误必须可区分（各自独立的错误码）
	if apperrors.Is(ErrInvalidYear, ErrInvalidPages) {
		t.Error("ErrInvalidYear和ErrInvalidPages不应共享错误码")
	}
	if apperrors.Is(ErrInvalidYear, apperrors.ErrInvalidParams) {
		t.Error("ErrInvalidYear不应与通用参数错误共享错误码")
	}
}

// TestNewFactory 测试工厂方法
func TestNewFactory(t *testing.T) {
	b, err := New("Author", "img", "Title", "Sub", "Pub", "1994", 100, "12345", "")
	if err != nil {
		t.Fatalf("合法参数不应失败: %v", err)
	}
	if b.Year != "1994" || b.Pages != 100 {
		t.Errorf("字段赋值不对: year=%s pages=%d", b.Year, b.Pages)
	}
	if b.CreatedAt.IsZero() {
		t.Error("CreatedAt应该被初始化")
	}

	if _, err := New("Author", "img", "Title", "Sub", "Pub", "later", 100, "12345", ""); err == nil {
		t.Error("非数字年份应该失败")
	}
	if _, err := New("Author", "img", "Title", "Sub", "Pub", "1994", 0, "12345", ""); err == nil {
		t.Error("0页应该失败")
	}
}

// TestSameIdentity 测试按持久化标识比较
func TestSameIdentity(t *testing.T) {
	a := newValidBook()
	a.ID = 1
	b := newValidBook()
	b.ID = 1
	c := newValidBook()
	c.ID = 2

	if !a.SameIdentity(b) {
		t.Error("相同ID应该判定为同一本书")
	}
	if a.SameIdentity(c) {
		t.Error("不同ID不应判定为同一本书")
	}
	if a.SameIdentity(nil) {
		t.Error("nil不应判定为同一本书")
	}

	// 未持久化的实体（ID=0）之间永远不相同
	x := newValidBook()
	y := newValidBook()
	if x.SameIdentity(y) {
		t.Error("ID为0的实体不应判定为同一本书")
	}
}
