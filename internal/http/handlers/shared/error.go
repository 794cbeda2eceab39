package shared

import (
	"github.com/furniro/storefront/internal/http/response"
	"github.com/furniro/storefront/internal/i18n"
	"github.com/furniro/storefront/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 返回携带 request_id 与 user_id 的日志实例
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	fields := make([]interface{}, 0, 4)
	if id := c.GetString("request_id"); id != "" {
		fields = append(fields, "request_id", id)
	}
	if uid := c.GetUint("user_id"); uid > 0 {
		fields = append(fields, "user_id", uid)
	}
	return logger.SW(fields...)
}

// RespondError 按 key 输出本地化错误响应
func RespondError(c *gin.Context, code int, key string, err error) {
	writeAppError(c, response.NewAppError(code, key, i18n.T(i18n.ResolveLocale(c), key), err))
}

// RespondErrorWithMsg 输出已格式化好的错误文案
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	writeAppError(c, response.NewAppError(code, "", msg, err))
}

func writeAppError(c *gin.Context, appErr *response.AppError) {
	// 只有带原始错误的情况需要落日志，纯业务校验失败不记录
	if appErr.Err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"key", appErr.Key,
			"error", appErr.Err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}
