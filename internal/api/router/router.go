package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sumikko-Charlotte/AI-Career-Helper/config"
	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/api/handler"
	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/api/middleware"
	"github.com/sumikko-Charlotte/AI-Career-Helper/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil（限流降级放行）
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodySize))
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window))
	}

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API ──
	api := r.Group("/api")
	{
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)

		api.GET("/users", h.User.ListUsers)
		api.GET("/users/export", h.Export.ExportUsers)

		user := api.Group("/user")
		{
			user.POST("/updateStatus", h.User.UpdateStatus)
			user.POST("/delete", h.User.DeleteUser)
			user.POST("/addTask", h.User.AddTask)
			user.POST("/addResume", h.User.AddResume)
		}
	}

	return r
}
