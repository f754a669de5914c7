package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/learning-feed-backend/api"
	"github.com/SlpAus/learning-feed-backend/internal/content"
	"github.com/SlpAus/learning-feed-backend/internal/detect"
	"github.com/SlpAus/learning-feed-backend/internal/platform/backup"
	"github.com/SlpAus/learning-feed-backend/internal/platform/config"
	"github.com/SlpAus/learning-feed-backend/internal/platform/database"
	"github.com/SlpAus/learning-feed-backend/internal/platform/health"
	"github.com/SlpAus/learning-feed-backend/internal/platform/shutdown"
	"github.com/SlpAus/learning-feed-backend/internal/platform/startup"
	"github.com/SlpAus/learning-feed-backend/internal/stats"
	"github.com/SlpAus/learning-feed-backend/pkg/lifecycle"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("无法加载配置文件: %v", err))
	}

	gin.SetMode(cfg.Server.Mode)
	database.InitDB(cfg.Database.Sqlite)

	if cfg.Database.Redis.Enabled {
		database.InitRedis(cfg.Database.Redis)
		health.InitializeRunID()
	}

	// 仓库与服务在这里构造一次，通过依赖注入传递给各处理器，
	// 不使用模块级的全局store实例
	contentRepo := content.NewRepository(database.DB)
	statsRepo := stats.NewRepository(database.DB)
	contentService := content.NewService(database.DB, contentRepo, statsRepo)

	// 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(database.DB, contentRepo); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 启动后台服务
	manager := lifecycle.NewManager()

	if cfg.Database.Redis.Enabled {
		handle, err := manager.NewServiceHandle("redis-health-checker")
		if err != nil {
			panic(err)
		}
		go health.StartRedisHealthCheck(handle)
	}

	var backupService *backup.Service
	if cfg.Backup.Enabled {
		backupService = backup.NewService(database.DB, cfg.Backup)
		handle, err := manager.NewServiceHandle("database-backup")
		if err != nil {
			panic(err)
		}
		go backupService.Run(handle)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", api.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r, api.Handlers{
		Content: content.NewHandler(contentRepo, contentService),
		Stats:   stats.NewHandler(statsRepo),
		Detect:  detect.NewHandler(detect.NewEnricher(cfg.Detect.Enrichment)),
	})

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic("Failed to start server: " + err.Error())
		}
	}()

	// 阻塞等待停机信号并执行优雅停机
	coordinator := shutdown.NewCoordinator(manager, backupService)
	coordinator.ListenForSignalsAndShutdown(server)
}
