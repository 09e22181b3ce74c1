package main

import (
	"flag"
	"fmt"
	"strings"

	"kardio/config"
	"kardio/database"
	"kardio/logger"
	"kardio/middleware"
	"kardio/router"
	"kardio/service"
)

// @title Kardio API
// @version 1.0
// @description 交易类别纠错：用户提交改类报告并立即生效，管理员审核
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println("kardio v1.0.0")
		return
	}

	// run 返回后 defer 的资源已释放，再退出进程
	if err := run(); err != nil {
		logger.Log.Fatal().Err(err).Msg("kardio 异常退出")
	}
}

func run() error {
	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	logger.Setup(cfg.Log.Level, cfg.Log.JSON)

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		logger.Log.Info().Str("port", port).Msg("命令行指定端口")
	}

	config.PrintConfig()

	if err := database.Init(cfg); err != nil {
		return fmt.Errorf("数据库初始化失败: %w", err)
	}

	middleware.InitJWT(cfg)

	// 报告事件：未启用或连接失败时不发布
	var publisher service.EventPublisher = service.NopPublisher{}
	if cfg.Events.Enabled {
		amqpPublisher, err := service.NewAMQPPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			logger.Log.Error().Err(err).Msg("连接消息队列失败，报告事件将不会发布")
		} else {
			defer func() {
				if err := amqpPublisher.Close(); err != nil {
					logger.Log.Warn().Err(err).Msg("关闭消息队列连接失败")
				}
			}()
			publisher = amqpPublisher
		}
	}

	notifier := service.NewEmailNotifier(database.DB, service.NewEmailService(&cfg.Email))

	r := router.SetupRouter(cfg, router.Services{
		Reports:      service.NewReportService(database.DB, publisher, notifier),
		Transactions: service.NewTransactionService(database.DB),
	})

	logger.Log.Info().
		Str("swagger", fmt.Sprintf("http://localhost%s/swagger/index.html", cfg.Server.Port)).
		Str("api", fmt.Sprintf("http://localhost%s/api/", cfg.Server.Port)).
		Msg("kardio 已启动")

	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("服务器启动失败: %w", err)
	}
	return nil
}
