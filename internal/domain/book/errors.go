package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrIDMismatch 路径ID与请求体ID不一致
	ErrIDMismatch = apperrors.ErrBookIDMismatch

	// ErrNullAttributes 缺失必填属性
	ErrNullAttributes = apperrors.ErrNullAttributes

	// ErrISBNDuplicate ISBN已存在（数据库唯一索引保证）
	ErrISBNDuplicate = apperrors.ErrISBNDuplicate

	// ErrInvalidYear 年份必须是正整数的字符串表示
	ErrInvalidYear = apperrors.New(apperrors.ErrCodeInvalidYear, "Please Enter A Valid Year")

	// ErrInvalidPages 页数至少为1
	ErrInvalidPages = apperrors.New(apperrors.ErrCodeInvalidPages, "The Book Must Have At Least 1 Page")
)
