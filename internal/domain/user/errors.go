package user

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.ErrUserNotFound

	// ErrIDMismatch 路径ID与请求体ID不一致
	ErrIDMismatch = apperrors.ErrUserIDMismatch

	// ErrNullAttributes 缺失必填属性
	ErrNullAttributes = apperrors.ErrNullAttributes

	// ErrBookAlreadyOwned 用户已持有该图书
	ErrBookAlreadyOwned = apperrors.ErrBookAlreadyOwned

	// ErrBookNotOwned 用户未持有该图书
	// 对外复用"Book Not Found"（404）：客户端视角是"这个用户的书单里没有这本书"
	ErrBookNotOwned = apperrors.ErrBookNotFound

	// ErrOldPasswordMismatch 修改密码时旧密码校验失败
	ErrOldPasswordMismatch = apperrors.ErrOldPasswordMismatch

	// ErrBadCredentials Basic认证失败
	ErrBadCredentials = apperrors.ErrBadCredentials

	// ErrInvalidBirthdate 出生日期必须早于当前时间
	ErrInvalidBirthdate = apperrors.New(apperrors.ErrCodeInvalidBirthdate, "The Birthdate Must Be In The Past")

	// ErrUsernameDuplicate 用户名已存在（数据库唯一索引保证，业务冲突返回409）
	ErrUsernameDuplicate = apperrors.New(apperrors.ErrCodeUsernameDuplicate, "Username Already Exists")
)
