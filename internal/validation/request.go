package validation

import (
	"fmt"
	"strconv"

	"filmorate/internal/constants"

	"github.com/gin-gonic/gin"
)

// BindJSON 绑定并校验请求体，失败时包装为 ErrValidation
func BindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return fmt.Errorf("%w: %v", constants.ErrValidation, err)
	}
	return nil
}

// ParamID 读取路径中的数字ID
func ParamID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: 路径参数 %s 不是有效的ID: %q", constants.ErrValidation, name, raw)
	}
	return id, nil
}

// QueryInt 读取整数查询参数，缺省时返回 def
func QueryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: 查询参数 %s 不是整数: %q", constants.ErrValidation, name, raw)
	}
	return v, nil
}
