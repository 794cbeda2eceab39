package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/furniro/storefront/internal/authz"
	"github.com/furniro/storefront/internal/cache"
	"github.com/furniro/storefront/internal/config"
	"github.com/furniro/storefront/internal/constants"
	"github.com/furniro/storefront/internal/logger"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/queue"
	"github.com/furniro/storefront/internal/repository"
	"github.com/furniro/storefront/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	MongoClient *mongo.Client

	// Repositories
	UserRepo      repository.UserRepository
	ProductRepo   repository.ProductRepository
	CartRepo      repository.CartRepository
	OrderRepo     repository.OrderRepository
	DashboardRepo repository.DashboardRepository
	AuditRepo     repository.AdminAuditLogRepository

	// Stores
	GuestCartStore cache.GuestCartStore

	// Services
	AuthzService     *authz.Service
	UserAuthService  *service.UserAuthService
	UserAdminService *service.UserAdminService
	ProductService   *service.ProductService
	Pricing          *service.PricingCalculator
	CartService      *service.CartService
	GuestCartService *service.GuestCartService
	CartReconciler   *service.CartReconciler
	OrderService     *service.OrderService
	DashboardService *service.DashboardService
	AuditService     *service.AdminAuditService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) (*Container, error) {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue, cfg.Cart.MergeRetryMaxAttempts)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient = nil
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	if err := c.initRepositories(); err != nil {
		return nil, err
	}

	// 2. 初始化 Services
	if err := c.initServices(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) initRepositories() error {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
	c.AuditRepo = repository.NewAdminAuditLogRepository(db)

	switch strings.ToLower(strings.TrimSpace(c.Config.Cart.Store)) {
	case constants.CartStoreMongo:
		cartRepo, err := c.initMongoCartRepository()
		if err != nil {
			return err
		}
		c.CartRepo = cartRepo
	case "", constants.CartStoreSQL:
		c.CartRepo = repository.NewCartRepository(db)
	default:
		return fmt.Errorf("unsupported cart store: %s", c.Config.Cart.Store)
	}
	logger.Infow("provider_cart_store_selected", "store", c.Config.Cart.Store)

	c.GuestCartStore = cache.NewGuestCartStore(time.Duration(c.Config.Cart.GuestTTLHours) * time.Hour)
	return nil
}

func (c *Container) initMongoCartRepository() (*repository.MongoCartRepository, error) {
	cfg := c.Config.Mongo
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connect mongo failed: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo failed: %w", err)
	}
	c.MongoClient = client

	repo := repository.NewMongoCartRepository(client.Database(cfg.Database).Collection(cfg.CartCollection))
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensure mongo cart indexes failed: %w", err)
	}
	return repo, nil
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}
	adminIDs, err := c.UserRepo.ListAdminIDs()
	if err != nil {
		return err
	}
	if err := c.AuthzService.SyncAdminUsers(adminIDs); err != nil {
		logger.Errorw("provider_sync_admin_roles_failed", "error", err)
		return err
	}

	c.Pricing = service.NewPricingCalculator(c.Config.Pricing)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.UserAdminService = service.NewUserAdminService(c.UserRepo, c.AuthzService)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.GuestCartService = service.NewGuestCartService(c.GuestCartStore, c.ProductRepo)
	c.CartReconciler = service.NewCartReconciler(
		c.GuestCartStore,
		c.CartRepo,
		c.ProductRepo,
		c.QueueClient,
		time.Duration(c.Config.Cart.MergeRetryDelaySeconds)*time.Second,
	)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.Pricing)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
	c.AuditService = service.NewAdminAuditService(c.AuditRepo)
	return nil
}

// Close 释放外部连接
func (c *Container) Close(ctx context.Context) {
	if c == nil {
		return
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
	if c.MongoClient != nil {
		if err := c.MongoClient.Disconnect(ctx); err != nil {
			logger.Warnw("provider_close_mongo_failed", "error", err)
		}
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
