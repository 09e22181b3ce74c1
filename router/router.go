package router

import (
	"time"

	"kardio/api"
	"kardio/config"
	_ "kardio/docs"
	"kardio/middleware"
	"kardio/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Services 路由依赖的业务服务
type Services struct {
	Reports      *service.ReportService
	Transactions *service.TransactionService
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, svc Services) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	apiGroup := r.Group("/api")

	// 认证相关路由（无需登录）
	authHandler := api.NewAuthHandler(cfg)
	loginLimit := middleware.LoginRateLimit(10, time.Minute)
	auth := apiGroup.Group("/auth")
	{
		auth.POST("/register", loginLimit, authHandler.Register)
		auth.POST("/login", loginLimit, authHandler.Login)
	}

	// 需要 JWT 认证的路由
	authorized := apiGroup.Group("")
	authorized.Use(middleware.JWTAuth())
	{
		authorized.GET("/auth/profile", authHandler.GetProfile)
		authorized.PUT("/auth/password", authHandler.ChangePassword)

		categoryHandler := api.NewCategoryHandler()
		authorized.GET("/categories", categoryHandler.List)

		me := authorized.Group("/me")
		{
			reportHandler := api.NewReportHandler(svc.Reports)
			me.POST("/category-user-reports", middleware.UserRateLimit(30, time.Minute), reportHandler.Submit)
			me.GET("/category-user-reports", reportHandler.ListMine)

			txnHandler := api.NewTransactionHandler(svc.Transactions)
			me.GET("/transactions", txnHandler.List)
			me.POST("/transactions", txnHandler.Create)
			me.GET("/transactions/:id", txnHandler.Get)
		}

		// 管理端：每次请求回查用户表确认管理员身份
		admin := authorized.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/categories", categoryHandler.Create)
			admin.PUT("/categories/:id", categoryHandler.Update)
			admin.DELETE("/categories/:id", categoryHandler.Delete)

			userAdminHandler := api.NewUserAdminHandler()
			admin.PUT("/users/:id/status", userAdminHandler.UpdateStatus)

			adminReportHandler := api.NewAdminReportHandler(svc.Reports)
			reports := admin.Group("/category-user-reports")
			{
				reports.GET("", adminReportHandler.List)
				reports.GET("/export", adminReportHandler.Export)
				reports.GET("/:id", adminReportHandler.Get)
				reports.POST("/:id/approve", adminReportHandler.Approve)
				reports.POST("/:id/reject", adminReportHandler.Reject)
			}
		}
	}

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
