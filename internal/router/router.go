package router

import (
	"sort"
	"strings"

	"github.com/furniro/storefront/internal/authz"
	"github.com/furniro/storefront/internal/cache"
	"github.com/furniro/storefront/internal/config"
	adminhandlers "github.com/furniro/storefront/internal/http/handlers/admin"
	publichandlers "github.com/furniro/storefront/internal/http/handlers/public"
	"github.com/furniro/storefront/internal/http/response"
	"github.com/furniro/storefront/internal/logger"
	"github.com/furniro/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

const adminRoutePrefix = "/api/v1/admin/"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisClient := cache.Client()
	limits := newRateLimitRules(cfg)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(GuestTokenMiddleware())

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.GetCategories)
			public.POST("/pricing/preview", publicHandler.PreviewPricing)
		}

		// 游客购物车
		guest := apiV1.Group("/guest")
		{
			guest.POST("/cart/session", RateLimitMiddleware(redisClient, limits.guestSession, KeyByIP), publicHandler.CreateGuestSession)
			guest.GET("/cart", publicHandler.GetGuestCart)
			guest.POST("/cart", RateLimitMiddleware(redisClient, limits.guestCartWrite, KeyByGuestToken), publicHandler.AddGuestCartItem)
			guest.DELETE("/cart/:productId", publicHandler.RemoveGuestCartItem)
			guest.DELETE("/cart", publicHandler.ClearGuestCart)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, limits.register, KeyByIP), publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, limits.login, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(c.UserAuthService))
		{
			user.GET("/me", publicHandler.GetMe)
			user.PUT("/me/profile", publicHandler.UpdateProfile)
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart", publicHandler.AddCartItem)
			user.DELETE("/cart/:productId", publicHandler.RemoveCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/cart/merge", publicHandler.MergeGuestCart)
			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders/mine", publicHandler.GetMyOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(c.UserAuthService), AdminRBACMiddleware(c.AuthzService))
		{
			// 仪表盘
			admin.GET("/dashboard/overview", adminHandler.GetDashboardOverview)

			// 商品管理
			admin.GET("/products", adminHandler.GetAdminProducts)
			admin.GET("/products/:id", adminHandler.GetAdminProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			// 订单管理
			admin.GET("/orders", adminHandler.AdminListOrders)
			admin.GET("/orders/:id", adminHandler.AdminGetOrder)
			admin.PUT("/orders/:id/pay", adminHandler.AdminMarkOrderPaid)
			admin.PUT("/orders/:id/deliver", adminHandler.AdminMarkOrderDelivered)

			// 用户管理
			admin.GET("/users", adminHandler.GetAdminUsers)
			admin.GET("/users/:id", adminHandler.GetAdminUser)
			admin.PUT("/users/:id", adminHandler.UpdateAdminUser)
			admin.DELETE("/users/:id", adminHandler.DeleteAdminUser)

			// 权限管理
			admin.GET("/authz/me", adminHandler.GetAuthzMe)
			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
			admin.GET("/authz/users/:id/roles", adminHandler.GetAuthzUserRoles)
			admin.PUT("/authz/users/:id/roles", adminHandler.SetAuthzUserRoles)
			admin.GET("/audit-logs", adminHandler.ListAuditLogs)
			admin.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
				response.Success(ctx, buildAdminPermissionCatalog(r.Routes()))
			})
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

// rateLimitRules 各接口独立计数，前缀互不相同
type rateLimitRules struct {
	login          RateLimitRule
	register       RateLimitRule
	guestSession   RateLimitRule
	guestCartWrite RateLimitRule
}

func newRateLimitRules(cfg *config.Config) rateLimitRules {
	prefix := strings.TrimSpace(cfg.Redis.Prefix)
	if prefix == "" {
		prefix = "furniro"
	}
	authWindow := cfg.Security.LoginRateLimit.WindowSeconds
	authMax := cfg.Security.LoginRateLimit.MaxAttempts
	return rateLimitRules{
		login: RateLimitRule{
			Prefix:        prefix + ":rate:login",
			WindowSeconds: authWindow,
			MaxRequests:   authMax,
			MessageKey:    "error.login_too_many",
		},
		register: RateLimitRule{
			Prefix:        prefix + ":rate:register",
			WindowSeconds: authWindow,
			MaxRequests:   authMax,
		},
		guestSession: RateLimitRule{
			Prefix:        prefix + ":rate:guest_session",
			WindowSeconds: 60,
			MaxRequests:   30,
		},
		guestCartWrite: RateLimitRule{
			Prefix:        prefix + ":rate:guest_cart",
			WindowSeconds: 60,
			MaxRequests:   30,
		},
	}
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildAdminPermissionCatalog 从已注册路由生成可授权的权限清单
func buildAdminPermissionCatalog(routes gin.RoutesInfo) []adminPermissionCatalogItem {
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, adminRoutePrefix) {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     adminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module != items[j].Module {
			return items[i].Module < items[j].Module
		}
		if items[i].Object != items[j].Object {
			return items[i].Object < items[j].Object
		}
		return items[i].Method < items[j].Method
	})
	return items
}

// adminPermissionModule 取 /admin/<module>/... 的第二段作为模块名
func adminPermissionModule(object string) string {
	segments := strings.Split(strings.Trim(object, "/"), "/")
	if len(segments) < 2 || segments[0] != "admin" {
		return "system"
	}
	return segments[1]
}
