package router

import (
	"net/http"
	"time"

	"filmorate/internal/catalog"
	"filmorate/internal/config"
	"filmorate/internal/film"
	"filmorate/internal/middleware"
	"filmorate/internal/service"
	"filmorate/internal/user"
	"filmorate/internal/validation"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 配置所有路由
func SetupRouter(cfg *config.Config, mgr *service.Manager) (*gin.Engine, error) {
	if err := validation.Register(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// CORS 配置
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 请求ID、指标、日志、错误映射
	r.Use(
		middleware.RequestID(),
		middleware.Prometheus(),
		middleware.AccessLog(),
		middleware.ErrorHandler(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"storage": mgr.Backend(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ----- 业务路由 -----
	user.NewHandler(mgr.GetAccountService()).RegisterRoutes(r)
	film.NewHandler(mgr.GetFilmService()).RegisterRoutes(r)
	catalog.NewHandler(mgr.GetCatalogService()).RegisterRoutes(r)

	return r, nil
}
