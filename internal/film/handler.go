package film

import (
	"net/http"

	"filmorate/internal/constants"
	"filmorate/internal/validation"

	"github.com/gin-gonic/gin"
)

// Handler 电影接口
type Handler struct {
	svc *FilmService
}

// NewHandler 创建电影接口
func NewHandler(svc *FilmService) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册 /films 路由
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	films := r.Group("/films")
	{
		films.GET("", h.FindAll)
		films.POST("", h.Create)
		films.PUT("", h.Update)
		films.GET("/popular", h.Popular)
		films.GET("/:id", h.FindByID)

		// ----- 点赞相关 -----
		films.PUT("/:id/like/:userId", h.Like)
		films.DELETE("/:id/like/:userId", h.Unlike)
	}
}

// FindAll 获取全部电影
func (h *Handler) FindAll(c *gin.Context) {
	films, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newFilmResponses(films))
}

// FindByID 获取单部电影
func (h *Handler) FindByID(c *gin.Context) {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	f, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newFilmResponse(f))
}

// Create 创建电影
func (h *Handler) Create(c *gin.Context) {
	var req NewFilmRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	f, err := req.toModel()
	if err != nil {
		_ = c.Error(err)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), f)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newFilmResponse(created))
}

// Update 更新电影
func (h *Handler) Update(c *gin.Context) {
	var req UpdateFilmRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	f, err := req.toModel()
	if err != nil {
		_ = c.Error(err)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), f)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newFilmResponse(updated))
}

func likeParams(c *gin.Context) (int64, int64, error) {
	filmID, err := validation.ParamID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	userID, err := validation.ParamID(c, "userId")
	if err != nil {
		return 0, 0, err
	}
	return filmID, userID, nil
}

// Like 点赞
func (h *Handler) Like(c *gin.Context) {
	filmID, userID, err := likeParams(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.svc.Like(c.Request.Context(), filmID, userID); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}

// Unlike 取消点赞
func (h *Handler) Unlike(c *gin.Context) {
	filmID, userID, err := likeParams(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.svc.Unlike(c.Request.Context(), filmID, userID); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}

// Popular 热门电影，count 缺省为 10
func (h *Handler) Popular(c *gin.Context) {
	count, err := validation.QueryInt(c, "count", constants.DefaultPopularCount)
	if err != nil {
		_ = c.Error(err)
		return
	}

	films, err := h.svc.Popular(c.Request.Context(), count)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newFilmResponses(films))
}
