package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"portfolio/backend/internal/config"
	"portfolio/backend/internal/health"
	"portfolio/backend/internal/logger"
	"portfolio/backend/internal/monitoring"
	"portfolio/backend/internal/notify"
	"portfolio/backend/internal/service"
	"portfolio/backend/internal/storage"
	"portfolio/backend/internal/storage/hybrid"
	"portfolio/backend/internal/storage/jsonl"
	sqlstore "portfolio/backend/internal/storage/sql"
	httptransport "portfolio/backend/internal/transport/http"
)

// main 启动个人网站后端服务（静态站点 + 联系表单 API）。
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 设置 Gin 模式（基于开发环境标志）
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// 初始化日志系统
	log, err := logger.NewLogger(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		LogFile:     cfg.Log.File,
		MaxSize:     100,
		MaxBackups:  3,
		MaxAge:      28,
		Compress:    true,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	log.Info("starting portfolio server",
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("development", cfg.Log.Development),
	)

	// 初始化存储层
	store, err := initializeStorage(cfg, log)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize storage: %v", err))
	}
	defer store.Close()

	// 初始化监控系统
	metrics := monitoring.NewMetrics()

	// 初始化健康检查
	healthChecker := health.NewHealthChecker(store, log)

	// 初始化通知器
	notifier := initializeNotifier(cfg, log)

	// 初始化服务层
	submissionService := service.NewSubmissionService(store, notifier, log)
	submissionService.SetMetrics(metrics)

	// 创建 HTTP 服务器
	httpAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	router := httptransport.NewRouter(httptransport.RouterDependencies{
		Config:            cfg,
		SubmissionService: submissionService,
		HealthChecker:     healthChecker,
		Metrics:           metrics,
		Logger:            log,
	})

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// 信号处理
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	// HTTP 服务器 goroutine
	group.Go(func() error {
		log.Info("starting HTTP server", zap.String("address", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", zap.Error(err))
			return err
		}
		return nil
	})

	// 优雅关闭 goroutine
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutdown signal received, gracefully shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error", zap.Error(err))
		}

		log.Info("server stopped")
		return nil
	})

	// 等待所有 goroutine 完成
	if err := group.Wait(); err != nil && err != context.Canceled {
		log.Fatal("server error", zap.Error(err))
	}

	log.Info("server exited cleanly")
}

// initializeStorage 根据配置装配存储层。
//
// 配置了数据库时使用双后端存储：数据库为主，本地文件为回退，
// 数据库短暂故障不会丢失留言。未配置数据库时直接使用文件存储，
// 此时文件存储就是唯一持久层，初始化失败必须阻止启动。
func initializeStorage(cfg *config.Config, log *zap.Logger) (storage.SubmissionRepository, error) {
	fileStore, err := jsonl.NewStore(cfg.Contact.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file store: %w", err)
	}

	if cfg.Database.Type == "" {
		log.Info("using file storage only", zap.String("path", cfg.Contact.StorePath))
		return fileStore, nil
	}

	dbStore, err := sqlstore.NewStore(
		cfg.Database.Type,
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
		cfg.Database.ConnMaxLifetime,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database storage: %w", err)
	}

	log.Info("using database storage with file fallback",
		zap.String("type", cfg.Database.Type),
		zap.String("fallback_path", cfg.Contact.StorePath),
	)
	return hybrid.NewStore(dbStore, fileStore, log), nil
}

// initializeNotifier 根据 SMTP 配置装配通知器。
//
// 缺少 SMTP 地址或收件人时通知静默禁用，表单照常工作。
func initializeNotifier(cfg *config.Config, log *zap.Logger) notify.Notifier {
	mailCfg := notify.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		To:       cfg.Contact.NotifyTo,
	}

	if !mailCfg.Enabled() {
		log.Info("mail notification disabled (smtp host or recipient not configured)")
		return notify.NopNotifier{}
	}

	log.Info("mail notification enabled",
		zap.String("smtp_host", cfg.SMTP.Host),
		zap.String("notify_to", cfg.Contact.NotifyTo),
	)
	return notify.NewMailer(mailCfg, log)
}
