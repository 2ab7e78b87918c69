package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filmorate/internal/config"
	"filmorate/internal/constants"
	"filmorate/internal/database"
	"filmorate/internal/logging"
	"filmorate/internal/router"
	"filmorate/internal/server"
	"filmorate/internal/service"
	"filmorate/internal/storage"
	"filmorate/internal/storage/dbstore"
	"filmorate/internal/storage/memory"

	"github.com/gin-gonic/gin"
)

func main() {
	// 读取配置
	if err := config.Init(); err != nil {
		logging.Fatal().Err(err).Msg("加载配置失败")
	}
	cfg := config.GlobalConfig

	logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	gin.SetMode(cfg.Server.Mode)

	// 选择存储后端，运行期间不再切换
	store, closeFn, err := openStorage(cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("backend", cfg.Storage.Backend).Msg("初始化存储失败")
	}

	// 创建统一服务管理器
	serviceMgr := service.NewManager(cfg.Storage.Backend, store, closeFn)

	// 设置 Gin 路由
	r, err := router.SetupRouter(cfg, serviceMgr)
	if err != nil {
		logging.Fatal().Err(err).Msg("初始化路由失败")
	}

	// 启动 HTTP/HTTPS 服务器
	httpServer, tlsCfg := server.NewHTTPServer(cfg, r)
	go func() {
		if err := tlsCfg.Serve(httpServer); err != nil {
			logging.Fatal().Err(err).Msg("服务器启动失败")
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("HTTP 服务器关闭失败")
	}

	// 关闭服务管理器
	serviceMgr.Shutdown()

	logging.Info().Msg("服务器已安全关闭")
}

// openStorage 按配置创建存储后端，返回释放函数
func openStorage(cfg *config.Config) (storage.Storage, func() error, error) {
	if cfg.Storage.Backend == constants.StorageMemory {
		return memory.NewStorage(), func() error { return nil }, nil
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		return storage.Storage{}, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return storage.Storage{}, nil, err
	}
	return dbstore.New(db), sqlDB.Close, nil
}
