package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
	"github.com/xiebiao/library/pkg/response"
)

// main 主程序入口
// 说明：手动依赖注入；wire.go中维护等价的Provider配置
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志与指标
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	defer logger.Sync()
	metrics.Init()

	logger.L().Info("配置加载成功",
		logger.Int("port", cfg.Server.Port),
		logger.String("mode", cfg.Server.Mode),
		logger.String("database", fmt.Sprintf("%s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		logger.String("redis", cfg.Redis.Addr()),
		logger.String("openlibrary", cfg.OpenLibrary.BaseURL),
	)

	// 3. 初始化数据库与Redis
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 初始化事件发布者（mq.enabled=false时用Nop实现）
	publisher := providePublisher(cfg)
	defer publisher.Close()

	// 5. 依赖注入（手动组装）
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	bookRepo := mysql.NewBookRepository(db)
	userRepo := mysql.NewUserRepository(db)
	bookCache := redis.NewBookCache(redisClient, cfg.Redis.BookTTL)
	metadataClient := openlibrary.NewClient(cfg)

	// 领域层
	bookService := book.NewService(bookRepo, metadataClient)
	userService := user.NewService(userRepo)

	// 应用层
	findByISBNUseCase := appbook.NewFindByISBNUseCase(bookService, publisher)
	createBookUseCase := appbook.NewCreateBookUseCase(bookService, publisher)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService, bookCache)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService, bookCache)
	getBookUseCase := appbook.NewGetBookUseCase(bookService, bookCache)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)

	createUserUseCase := appuser.NewCreateUserUseCase(userRepo, userService, publisher)
	updateUserUseCase := appuser.NewUpdateUserUseCase(userRepo)
	deleteUserUseCase := appuser.NewDeleteUserUseCase(userRepo)
	getUserUseCase := appuser.NewGetUserUseCase(userRepo)
	listUsersUseCase := appuser.NewListUsersUseCase(userRepo)
	editPasswordUseCase := appuser.NewEditPasswordUseCase(userRepo, userService)
	addBookUseCase := appuser.NewAddBookUseCase(userRepo, bookRepo)
	removeBookUseCase := appuser.NewRemoveBookUseCase(userRepo, bookRepo)
	listByBirthdateUseCase := appuser.NewListByBirthdateUseCase(userRepo)

	// 接口层
	bookHandler := handler.NewBookHandler(
		findByISBNUseCase,
		createBookUseCase,
		updateBookUseCase,
		deleteBookUseCase,
		getBookUseCase,
		listBooksUseCase,
	)
	userHandler := handler.NewUserHandler(
		createUserUseCase,
		updateUserUseCase,
		deleteUserUseCase,
		getUserUseCase,
		listUsersUseCase,
		editPasswordUseCase,
		addBookUseCase,
		removeBookUseCase,
		listByBirthdateUseCase,
	)
	authMiddleware := middleware.NewAuthMiddleware(userService)

	// 6. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Metrics())

	// 7. 注册路由
	registerRoutes(r, bookHandler, userHandler, authMiddleware)

	// 8. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.L().Info("服务启动", logger.String("addr", addr))

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// providePublisher 创建事件发布者
func providePublisher(cfg *config.Config) mq.EventPublisher {
	if !cfg.MQ.Enabled {
		return mq.NopPublisher{}
	}
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
	if err != nil {
		log.Fatalf("初始化RabbitMQ失败: %v", err)
	}
	return publisher
}

// registerRoutes 注册路由
// 认证策略：
// - 公开：/ping、/metrics、/swagger、POST /api/users/（注册）、
//   POST /api/books（铺数据）、GET /api/books/greeting
// - 其余/api路由要求HTTP Basic认证
func registerRoutes(r *gin.Engine, bookHandler *handler.BookHandler, userHandler *handler.UserHandler, authMiddleware *middleware.AuthMiddleware) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		books := api.Group("/books")
		{
			// 公开接口
			books.POST("", bookHandler.CreateBook)
			books.GET("/greeting", bookHandler.Greeting)

			// 需要认证
			authed := books.Group("", authMiddleware.RequireAuth())
			{
				authed.GET("/", bookHandler.ListBooks)
				authed.GET("/byPublisherAndByGenreAndByYear", bookHandler.BooksByPublisherGenreYear)
				authed.GET("/isbn/:isbn", bookHandler.FindByISBN)
				authed.GET("/:id", bookHandler.GetBook)
				authed.PUT("/:id", bookHandler.UpdateBook)
				authed.DELETE("/:id", bookHandler.DeleteBook)
			}
		}

		users := api.Group("/users")
		{
			// 公开接口：自助注册
			users.POST("/", userHandler.CreateUser)

			// 需要认证
			authed := users.Group("", authMiddleware.RequireAuth())
			{
				authed.GET("/", userHandler.ListUsers)
				authed.GET("/username", userHandler.CurrentUser)
				authed.GET("/birthdateBetweenAndNameContains", userHandler.UsersByBirthdate)
				authed.PUT("/editPass/:id", userHandler.EditPassword)
				authed.GET("/:id", userHandler.GetUser)
				authed.PUT("/:id", userHandler.UpdateUser)
				authed.DELETE("/:id", userHandler.DeleteUser)
				authed.PUT("/:id/:bookId", userHandler.AddBook)
				authed.DELETE("/:id/:bookId", userHandler.RemoveBook)
			}
		}
	}
}
