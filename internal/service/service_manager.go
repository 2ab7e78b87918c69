package service

import (
	"filmorate/internal/catalog"
	"filmorate/internal/film"
	"filmorate/internal/logging"
	"filmorate/internal/storage"
	"filmorate/internal/user"
)

// Manager 统一服务管理器，所有服务共享同一个存储后端
type Manager struct {
	backend        string
	accountService *user.AccountService
	filmService    *film.FilmService
	catalogService *catalog.Service
	closers        []func() error
}

// NewManager 创建服务管理器
func NewManager(backend string, s storage.Storage, closers ...func() error) *Manager {
	manager := &Manager{
		backend:        backend,
		accountService: user.NewAccountService(s.Users, s.Friends),
		filmService:    film.NewFilmService(s.Films, s.Likes, s.Genres, s.Users),
		catalogService: catalog.NewService(s.Genres, s.Ratings),
		closers:        closers,
	}

	logging.Info().Str("backend", backend).Msg("服务管理器初始化完成")
	return manager
}

// Backend 当前存储后端名称
func (m *Manager) Backend() string {
	return m.backend
}

// GetAccountService 获取用户服务
func (m *Manager) GetAccountService() *user.AccountService {
	return m.accountService
}

// GetFilmService 获取电影服务
func (m *Manager) GetFilmService() *film.FilmService {
	return m.filmService
}

// GetCatalogService 获取字典服务
func (m *Manager) GetCatalogService() *catalog.Service {
	return m.catalogService
}

// Shutdown 关闭所有服务，释放存储资源
func (m *Manager) Shutdown() {
	logging.Info().Msg("正在关闭服务管理器...")

	for _, closeFn := range m.closers {
		if err := closeFn(); err != nil {
			logging.Error().Err(err).Msg("释放存储资源失败")
		}
	}

	logging.Info().Msg("服务管理器已关闭")
}
