package middleware

import (
	"errors"
	"net/http"

	"filmorate/internal/constants"
	"filmorate/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse 错误响应体
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"description"`
}

// StatusFor 把业务错误映射为 HTTP 状态码
func StatusFor(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, constants.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, constants.ErrValidation), errors.As(err, &verrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler 处理器通过 c.Error 上报错误，这里统一写响应
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := StatusFor(err)
		logger := logging.Ctx(c.Request.Context())

		resp := ErrorResponse{Description: err.Error()}
		switch status {
		case http.StatusNotFound:
			resp.Error = "not found"
			logger.Warn().Err(err).Msg("实体不存在")
		case http.StatusBadRequest:
			resp.Error = "validation failed"
			logger.Warn().Err(err).Msg("请求参数无效")
		default:
			resp.Error = "internal server error"
			logger.Error().Err(err).Msg("请求处理失败")
		}

		c.JSON(status, resp)
	}
}
