package mysql

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/logger"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := gormlogger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	logger.L().Info("database connected",
		logger.String("host", cfg.Database.Host),
		logger.String("dbname", cfg.Database.DBName),
	)

	// 注意：生产环境应使用版本化迁移脚本，不要依赖AutoMigrate
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 多对多关联book_user由GORM根据UserModel.Books的tag一并建表
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&UserModel{},
	)
}

// BookModel GORM图书模型
// 设计说明：
// 1. ISBN唯一索引：并发抓取同一ISBN时由数据库裁决赢家
// 2. Genre可空，其余业务字段非空（与领域校验一致，双保险）
// 3. Year按领域约定存字符串（外部源的出版年份从自由文本提取）
type BookModel struct {
	ID        uint           `gorm:"primaryKey"`
	Genre     *string        `gorm:"size:100;comment:体裁(可空)"`
	Author    string         `gorm:"index:idx_search;size:255;not null;comment:作者"`
	Image     string         `gorm:"size:500;not null;comment:封面图片URL"`
	Title     string         `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Subtitle  string         `gorm:"size:200;not null;comment:副标题"`
	Publisher string         `gorm:"size:255;not null;comment:出版社"`
	Year      string         `gorm:"size:10;not null;comment:出版年份"`
	Pages     int            `gorm:"not null;comment:页数"`
	ISBN      string         `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// UserModel GORM用户模型
// 设计说明：
// 1. Username唯一索引（凭据查找按用户名精确匹配）
// 2. Password只存bcrypt哈希（60字节）
// 3. Books多对多关联，连接表book_user（只有两个外键列）
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Username  string         `gorm:"uniqueIndex;size:100;not null;comment:用户名"`
	Password  string         `gorm:"size:255;not null;comment:密码(bcrypt哈希)"`
	Name      string         `gorm:"size:100;not null;comment:姓名"`
	Birthdate time.Time      `gorm:"not null;comment:出生日期"`
	Books     []BookModel    `gorm:"many2many:book_user"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}
