package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/furniro/storefront/internal/constants"
	"github.com/furniro/storefront/internal/http/response"
	"github.com/furniro/storefront/internal/i18n"
	"github.com/furniro/storefront/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 从请求中提取限流主体，返回空串时按 IP 计数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则，窗口或次数非正时规则不生效
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

func (r RateLimitRule) active() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

// INCR 后首次计数设置过期，返回 {count, ttl}
var fixedWindowScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("TTL", KEYS[1])}
`)

// RateLimitMiddleware Redis 固定窗口限流，未配置 Redis 时放行，Redis 异常时返回 500
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	msgKey := strings.TrimSpace(rule.MessageKey)
	if msgKey == "" {
		msgKey = "error.rate_limited"
	}
	return func(c *gin.Context) {
		if client == nil || !rule.active() {
			c.Next()
			return
		}

		key := buildRateLimitKey(c, rule.Prefix, keyFunc)
		counters, err := fixedWindowScript.Run(c.Request.Context(), client, []string{key}, rule.WindowSeconds).Int64Slice()
		if err == nil && len(counters) != 2 {
			err = fmt.Errorf("unexpected rate limit reply: %v", counters)
		}
		if err != nil {
			logger.Warnw("rate_limit_unavailable", "key", key, "error", err)
			response.AbortWithError(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable"))
			return
		}

		count, ttl := counters[0], counters[1]
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(int64(rule.MaxRequests)-count, 0), 10))
		if count <= int64(rule.MaxRequests) {
			c.Next()
			return
		}

		retryAfter := int(ttl)
		if retryAfter < 1 {
			retryAfter = rule.WindowSeconds
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		response.AbortWithError(c, response.CodeTooManyRequests, i18n.Sprintf(i18n.ResolveLocale(c), msgKey, retryAfter))
	}
}

func buildRateLimitKey(c *gin.Context, prefix string, keyFunc RateLimitKeyFunc) string {
	var subject string
	if keyFunc != nil {
		subject = strings.TrimSpace(keyFunc(c))
	}
	if subject == "" {
		subject = c.ClientIP()
	}
	parts := []string{"ratelimit"}
	if prefix != "" {
		parts = append(parts, prefix)
	}
	return strings.Join(append(parts, subject), ":")
}

// KeyByIP 按客户端 IP 计数
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByGuestToken 按游客令牌计数，无令牌时按 IP
func KeyByGuestToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(constants.HeaderGuestToken)); token != "" {
		return "guest|" + token
	}
	return c.ClientIP()
}

// KeyByIPAndJSONField 按请求体字段（小写）与 IP 组合计数，读取后会还原请求体
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(peekJSONField(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

func peekJSONField(c *gin.Context, field string) string {
	if c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload[field], &text); err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
