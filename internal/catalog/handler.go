package catalog

import (
	"net/http"

	"filmorate/internal/validation"

	"github.com/gin-gonic/gin"
)

// Handler 字典接口
type Handler struct {
	svc *Service
}

// NewHandler 创建字典接口
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册 /genres 与 /mpa 路由
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/genres", h.Genres)
	r.GET("/genres/:id", h.Genre)
	r.GET("/mpa", h.Ratings)
	r.GET("/mpa/:id", h.Rating)
}

func (h *Handler) Genres(c *gin.Context) {
	genres, err := h.svc.Genres(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, NewGenreResponses(genres))
}

func (h *Handler) Genre(c *gin.Context) {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	g, err := h.svc.Genre(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, GenreResponse{ID: g.ID, Name: g.Name})
}

func (h *Handler) Ratings(c *gin.Context) {
	ratings, err := h.svc.Ratings(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, NewRatingResponses(ratings))
}

func (h *Handler) Rating(c *gin.Context) {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	r, err := h.svc.Rating(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, NewRatingResponse(r))
}
