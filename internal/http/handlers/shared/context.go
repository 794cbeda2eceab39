package shared

import (
	"github.com/furniro/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUintWithKeys 读取鉴权中间件写入的 uint 值，缺失按未登录处理
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	var (
		id       uint
		negative bool
	)
	switch v := value.(type) {
	case uint:
		id = v
	case uint64:
		id = uint(v)
	case int:
		negative = v < 0
		id = uint(v)
	case float64:
		negative = v < 0
		id = uint(v)
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
	if negative || id == 0 {
		RespondError(c, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return id, true
}
