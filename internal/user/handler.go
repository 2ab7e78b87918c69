package user

import (
	"net/http"

	"filmorate/internal/validation"

	"github.com/gin-gonic/gin"
)

// Handler 用户接口
type Handler struct {
	svc *AccountService
}

// NewHandler 创建用户接口
func NewHandler(svc *AccountService) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册 /users 路由
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	users := r.Group("/users")
	{
		users.GET("", h.FindAll)
		users.POST("", h.Create)
		users.PUT("", h.Update)
		users.GET("/:id", h.FindByID)

		// ----- 好友相关 -----
		users.PUT("/:id/friends/:friendId", h.AddFriend)
		users.DELETE("/:id/friends/:friendId", h.DeleteFriend)
		users.GET("/:id/friends", h.GetFriends)
		users.GET("/:id/friends/common/:otherId", h.GetCommonFriends)
	}
}

// FindAll 获取全部用户
func (h *Handler) FindAll(c *gin.Context) {
	users, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newUserResponses(users))
}

// FindByID 获取单个用户
func (h *Handler) FindByID(c *gin.Context) {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	u, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(u))
}

// Create 创建用户
func (h *Handler) Create(c *gin.Context) {
	var req NewUserRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	u, err := req.toModel()
	if err != nil {
		_ = c.Error(err)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), u)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(created))
}

// Update 更新用户
func (h *Handler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	u, err := req.toModel()
	if err != nil {
		_ = c.Error(err)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), u)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(updated))
}

// pairParams 读取两个路径ID
func pairParams(c *gin.Context, first, second string) (int64, int64, error) {
	a, err := validation.ParamID(c, first)
	if err != nil {
		return 0, 0, err
	}
	b, err := validation.ParamID(c, second)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// AddFriend 添加好友
func (h *Handler) AddFriend(c *gin.Context) {
	id, friendID, err := pairParams(c, "id", "friendId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.svc.AddFriend(c.Request.Context(), id, friendID); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}

// DeleteFriend 删除好友
func (h *Handler) DeleteFriend(c *gin.Context) {
	id, friendID, err := pairParams(c, "id", "friendId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.svc.DeleteFriend(c.Request.Context(), id, friendID); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}

// GetFriends 获取好友列表
func (h *Handler) GetFriends(c *gin.Context) {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	friends, err := h.svc.GetFriends(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newUserResponses(friends))
}

// GetCommonFriends 获取共同好友
func (h *Handler) GetCommonFriends(c *gin.Context) {
	id, otherID, err := pairParams(c, "id", "otherId")
	if err != nil {
		_ = c.Error(err)
		return
	}

	friends, err := h.svc.GetCommonFriends(c.Request.Context(), id, otherID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newUserResponses(friends))
}
