package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/furniro/storefront/internal/config"
	"github.com/furniro/storefront/internal/constants"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":" Jane@Furniro.com "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("email")(c)
	if key != "jane@furniro.com|1.2.3.4" {
		t.Fatalf("key want jane@furniro.com|1.2.3.4 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Jane@Furniro.com") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestKeyByGuestToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/guest/cart", nil)
	c.Request.RemoteAddr = "5.6.7.8:1234"

	if key := KeyByGuestToken(c); key != "5.6.7.8" {
		t.Fatalf("missing token should fall back to ip, got %s", key)
	}

	c.Request.Header.Set(constants.HeaderGuestToken, " 7d3c5b34-4a4f-4b52-9d0a-3c2f3b4fb0a1 ")
	if key := KeyByGuestToken(c); key != "guest|7d3c5b34-4a4f-4b52-9d0a-3c2f3b4fb0a1" {
		t.Fatalf("unexpected guest key: %s", key)
	}
}

func TestBuildRateLimitKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "9.9.9.9:80"

	if key := buildRateLimitKey(c, "user_login", nil); key != "ratelimit:user_login:9.9.9.9" {
		t.Fatalf("unexpected key: %s", key)
	}
	if key := buildRateLimitKey(c, "", func(*gin.Context) string { return "custom" }); key != "ratelimit:custom" {
		t.Fatalf("unexpected key: %s", key)
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)
		if !strings.Contains(w.Body.String(), `"ok":true`) {
			t.Fatalf("request %d should pass through, got %s", i, w.Body.String())
		}
	}
}

func TestKeyByIPAndJSONFieldIgnoresNonString(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":42}`))
	c.Request.RemoteAddr = "1.2.3.4:5678"

	if key := KeyByIPAndJSONField("email")(c); key != "1.2.3.4" {
		t.Fatalf("non string field should fall back to ip, got %s", key)
	}
}

func TestGuestCartWriteHasOwnBudget(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Redis.Prefix = "fn"
	limits := newRateLimitRules(cfg)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/guest/cart", nil)
	c.Request.RemoteAddr = "5.6.7.8:1234"

	sessionKey := buildRateLimitKey(c, limits.guestSession.Prefix, KeyByIP)
	cartKey := buildRateLimitKey(c, limits.guestCartWrite.Prefix, KeyByGuestToken)
	if sessionKey == cartKey {
		t.Fatalf("tokenless cart writes must not share the session counter: %s", cartKey)
	}
	if cartKey != "ratelimit:fn:rate:guest_cart:5.6.7.8" {
		t.Fatalf("unexpected guest cart key: %s", cartKey)
	}

	prefixes := map[string]struct{}{}
	for _, rule := range []RateLimitRule{limits.login, limits.register, limits.guestSession, limits.guestCartWrite} {
		prefixes[rule.Prefix] = struct{}{}
	}
	if len(prefixes) != 4 {
		t.Fatalf("every rule needs a distinct prefix, got %v", prefixes)
	}
}
