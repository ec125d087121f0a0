package httptransport

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	gincors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio/backend/internal/config"
	"portfolio/backend/internal/health"
	"portfolio/backend/internal/middleware"
	"portfolio/backend/internal/monitoring"
	"portfolio/backend/internal/service"
)

// RouterDependencies 路由器依赖项
type RouterDependencies struct {
	Config            *config.Config
	SubmissionService *service.SubmissionService
	HealthChecker     *health.HealthChecker
	Metrics           *monitoring.Metrics // 可选
	Logger            *zap.Logger
}

// NewRouter 创建并返回 Gin 路由实例。
func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()

	// 使用自定义中间件替代默认中间件；启用监控时 panic 恢复同时计入指标
	if deps.Metrics != nil {
		mm := middleware.NewMonitoringMiddleware(deps.Metrics, deps.Logger)
		router.Use(mm.PanicRecovery())
		router.Use(middleware.RequestLogger(deps.Logger))
		router.Use(mm.HTTPMetrics())
		router.Use(mm.BusinessMetrics())
	} else {
		router.Use(middleware.RecoveryHandler(deps.Logger))
		router.Use(middleware.RequestLogger(deps.Logger))
	}
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.BodySizeLimit(middleware.DefaultBodyLimit))

	// CORS 配置
	corsConfig := gincors.Config{
		AllowOrigins:     deps.Config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	// 如果允许所有来源，则需清空凭证支持。
	for _, origin := range corsConfig.AllowOrigins {
		if origin == "*" {
			corsConfig.AllowCredentials = false
			break
		}
	}
	router.Use(gincors.New(corsConfig))

	// 创建处理器
	contactHandler := NewContactHandler(deps.SubmissionService, deps.Logger)

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.HealthChecker != nil {
		router.GET("/health/live", gin.WrapF(deps.HealthChecker.LiveHandler()))
		router.GET("/health/ready", gin.WrapF(deps.HealthChecker.ReadyHandler()))
	}

	// 监控指标
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.HTTPHandler()))
	}

	// API
	api := router.Group("/api")
	{
		api.POST("/contact", contactHandler.CreateSubmission)
	}

	// 静态站点（构建产物目录配置后生效）
	if deps.Config.Site.Dir != "" {
		router.NoRoute(staticSiteHandler(deps.Config.Site.Dir))
	} else {
		router.NoRoute(func(c *gin.Context) {
			NotFound(c, MsgNotFound)
		})
	}

	return router
}

// staticSiteHandler 提供静态站点文件。
//
// 解析规则：请求路径直接命中文件则返回该文件；命中目录则返回
// 其下的 index.html；都未命中时优先返回站点自带的 404.html，
// 否则回落到 JSON 404。路径先做 Clean，拒绝逃出站点目录。
func staticSiteHandler(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			NotFound(c, MsgNotFound)
			return
		}

		relPath := filepath.Clean(strings.TrimPrefix(c.Request.URL.Path, "/"))
		if strings.HasPrefix(relPath, "..") {
			NotFound(c, MsgNotFound)
			return
		}

		target := filepath.Join(dir, relPath)
		if info, err := os.Stat(target); err == nil {
			if info.IsDir() {
				index := filepath.Join(target, "index.html")
				if _, err := os.Stat(index); err == nil {
					c.File(index)
					return
				}
			} else {
				c.File(target)
				return
			}
		}

		// c.File 会覆盖状态码，404 页面需手动读出后带状态码返回
		notFoundPage := filepath.Join(dir, "404.html")
		if page, err := os.ReadFile(notFoundPage); err == nil {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", page)
			return
		}

		NotFound(c, MsgNotFound)
	}
}
