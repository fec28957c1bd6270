package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为MySQL唯一索引冲突错误(错误码1062)
// 用于区分isbn/username唯一约束冲突与其他数据库错误
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 驱动未翻译时回退到错误信息匹配
	return strings.Contains(err.Error(), "Duplicate entry")
}
