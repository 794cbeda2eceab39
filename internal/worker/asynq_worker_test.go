package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/furniro/storefront/internal/cache"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/provider"
	"github.com/furniro/storefront/internal/queue"
	"github.com/furniro/storefront/internal/repository"
	"github.com/furniro/storefront/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupWorkerConsumer(t *testing.T) (*Consumer, *cache.MemoryGuestCartStore, *repository.GormProductRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	store := cache.NewMemoryGuestCartStore(time.Hour)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	container := &provider.Container{
		CartRepo:       cartRepo,
		ProductRepo:    productRepo,
		GuestCartStore: store,
		CartReconciler: service.NewCartReconciler(store, cartRepo, productRepo, nil, time.Second),
	}
	return NewConsumer(container), store, productRepo
}

func TestHandleCartMergeRetryMergesGuestCart(t *testing.T) {
	consumer, store, productRepo := setupWorkerConsumer(t)
	ctx := context.Background()
	product := &models.Product{Name: "lamp", Category: "decor", Image: "/lamp.png", Price: models.MustMoney("40"), CountInStock: 3}
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	token := uuid.NewString()
	if err := store.Save(ctx, token, &models.GuestCart{CartItems: []models.GuestCartItem{{ProductID: product.ID, Quantity: 2}}}); err != nil {
		t.Fatalf("save guest cart failed: %v", err)
	}

	task, err := queue.NewCartMergeRetryTask(queue.CartMergeRetryPayload{UserID: 7, GuestToken: token})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleCartMergeRetry(ctx, task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}

	cart, err := consumer.CartRepo.Get(ctx, 7)
	if err != nil || cart == nil {
		t.Fatalf("load cart failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("unexpected merged cart: %+v", cart.Items)
	}
	guest, err := store.Load(ctx, token)
	if err != nil {
		t.Fatalf("load guest cart failed: %v", err)
	}
	if !guest.IsEmpty() {
		t.Fatalf("guest cart should be cleared after merge")
	}
}

func TestHandleCartMergeRetrySkipsInvalidPayload(t *testing.T) {
	consumer, _, _ := setupWorkerConsumer(t)

	task, err := queue.NewCartMergeRetryTask(queue.CartMergeRetryPayload{UserID: 0, GuestToken: "x"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleCartMergeRetry(context.Background(), task); err != nil {
		t.Fatalf("invalid payload should be ignored, got %v", err)
	}

	malformed := asynq.NewTask(queue.TaskCartMergeRetry, []byte("{"))
	if err := consumer.handleCartMergeRetry(context.Background(), malformed); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("malformed payload want SkipRetry got %v", err)
	}

	badToken, err := queue.NewCartMergeRetryTask(queue.CartMergeRetryPayload{UserID: 3, GuestToken: "not-a-uuid"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleCartMergeRetry(context.Background(), badToken); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("bad guest token want SkipRetry got %v", err)
	}
}
