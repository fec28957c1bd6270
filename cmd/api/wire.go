//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 使用方式：
// 1. 修改依赖关系后运行 `wire gen ./cmd/api`
// 2. Wire生成wire_gen.go，包含完整的依赖创建代码
// 3. main.go中的手动组装可替换为InitializeApp()
//
// 说明：当前main.go维护手动注入，本文件保证依赖图始终可被Wire验证

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appbook "github.com/xiebiao/library/internal/application/book"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/openlibrary"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	provideBookCache,
	providePublisherProvider,
	openlibrary.NewClient,
	wire.Bind(new(book.MetadataFetcher), new(*openlibrary.Client)),
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewBookRepository,
	mysql.NewUserRepository,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService,
	user.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewFindByISBNUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appuser.NewCreateUserUseCase,
	appuser.NewUpdateUserUseCase,
	appuser.NewDeleteUserUseCase,
	appuser.NewGetUserUseCase,
	appuser.NewListUsersUseCase,
	appuser.NewEditPasswordUseCase,
	appuser.NewAddBookUseCase,
	appuser.NewRemoveBookUseCase,
	appuser.NewListByBirthdateUseCase,
)

// interfaceSet 接口层依赖
var interfaceSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewUserHandler,
	middleware.NewAuthMiddleware,
)

// provideBookCache 从配置与Redis客户端创建图书缓存
func provideBookCache(cfg *config.Config, client *goredis.Client) appbook.Cache {
	return redis.NewBookCache(client, cfg.Redis.BookTTL)
}

// providePublisherProvider 按配置创建事件发布者
func providePublisherProvider(cfg *config.Config) (mq.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return mq.NopPublisher{}, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	userHandler *handler.UserHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Metrics())

	// registerRoutes已包含/ping、/metrics、/swagger
	registerRoutes(r, bookHandler, userHandler, authMiddleware)
	return r
}

// InitializeApp 初始化整个应用
// Wire会按依赖关系生成所有构造函数的调用顺序
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
		provideGinEngine,
	)
	return nil, nil
}
