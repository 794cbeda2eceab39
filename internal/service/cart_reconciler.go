package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/furniro/storefront/internal/cache"
	"github.com/furniro/storefront/internal/logger"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/repository"
)

const defaultMergeRetryDelay = 30 * time.Second

// AuthTransition 匿名到已登录的身份切换事件
type AuthTransition struct {
	UserID     uint
	GuestToken string
}

// MergeRetryScheduler 合并失败后的延迟重试调度
type MergeRetryScheduler interface {
	EnqueueCartMergeRetry(userID uint, guestToken string, delay time.Duration) error
}

// MergeSkip 合并时被跳过的游客购物车项
type MergeSkip struct {
	ProductID uint   `json:"productId"`
	Reason    string `json:"reason"`
}

// MergeResult 合并结果
type MergeResult struct {
	Cart    *models.Cart `json:"cart"`
	Merged  int          `json:"merged"`
	Clamped []uint       `json:"clamped"`
	Skipped []MergeSkip  `json:"skipped"`
}

// 跳过原因
const (
	MergeSkipProductMissing = "product_missing"
	MergeSkipOutOfStock     = "out_of_stock"
	MergeSkipInvalid        = "invalid_quantity"
)

// CartReconciler 登录时将游客购物车合并到服务端购物车
type CartReconciler struct {
	guestStore  cache.GuestCartStore
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	retry       MergeRetryScheduler
	retryDelay  time.Duration
}

// NewCartReconciler 创建购物车合并器，retry 为空时不调度重试
func NewCartReconciler(guestStore cache.GuestCartStore, cartRepo repository.CartRepository, productRepo repository.ProductRepository, retry MergeRetryScheduler, retryDelay time.Duration) *CartReconciler {
	if retryDelay <= 0 {
		retryDelay = defaultMergeRetryDelay
	}
	return &CartReconciler{
		guestStore:  guestStore,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		retry:       retry,
		retryDelay:  retryDelay,
	}
}

// HandleTransition 身份切换钩子：合并游客购物车，临时故障时保留游客购物车并调度重试
func (r *CartReconciler) HandleTransition(ctx context.Context, transition AuthTransition) (*MergeResult, error) {
	result, err := r.Reconcile(ctx, transition)
	if err == nil || !errors.Is(err, ErrTransientIO) {
		return result, err
	}
	logger.Warnw("cart_merge_failed",
		"user_id", transition.UserID,
		"error", err,
	)
	if r.retry != nil {
		token := strings.TrimSpace(transition.GuestToken)
		if enqueueErr := r.retry.EnqueueCartMergeRetry(transition.UserID, token, r.retryDelay); enqueueErr != nil {
			logger.Warnw("cart_merge_retry_enqueue_failed",
				"user_id", transition.UserID,
				"error", enqueueErr,
			)
		}
	}
	return nil, err
}

// Reconcile 按插入顺序逐项覆盖写入服务端购物车，全部成功后才清空游客购物车
// 重复执行结果一致
func (r *CartReconciler) Reconcile(ctx context.Context, transition AuthTransition) (*MergeResult, error) {
	if transition.UserID == 0 {
		return nil, ErrUnauthorized
	}
	result := &MergeResult{Clamped: []uint{}, Skipped: []MergeSkip{}}

	token := strings.TrimSpace(transition.GuestToken)
	if token == "" {
		cart, err := r.cartRepo.GetOrCreate(ctx, transition.UserID)
		if err != nil {
			return nil, transientIO(err)
		}
		result.Cart = cart
		return result, nil
	}
	normalized, err := NormalizeGuestToken(token)
	if err != nil {
		return nil, err
	}

	guest, err := r.guestStore.Load(ctx, normalized)
	if err != nil {
		return nil, transientIO(err)
	}

	for _, item := range guest.CartItems {
		if item.ProductID == 0 || item.Quantity < 1 {
			result.Skipped = append(result.Skipped, MergeSkip{ProductID: item.ProductID, Reason: MergeSkipInvalid})
			continue
		}
		product, err := r.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, transientIO(err)
		}
		if product == nil {
			result.Skipped = append(result.Skipped, MergeSkip{ProductID: item.ProductID, Reason: MergeSkipProductMissing})
			continue
		}
		if product.CountInStock <= 0 {
			result.Skipped = append(result.Skipped, MergeSkip{ProductID: item.ProductID, Reason: MergeSkipOutOfStock})
			continue
		}
		quantity := item.Quantity
		if quantity > product.CountInStock {
			quantity = product.CountInStock
			result.Clamped = append(result.Clamped, item.ProductID)
		}
		if _, err := r.cartRepo.UpsertItem(ctx, transition.UserID, buildCartItem(product, quantity)); err != nil {
			return nil, transientIO(err)
		}
		result.Merged++
	}

	if !guest.IsEmpty() {
		if err := r.guestStore.Clear(ctx, normalized); err != nil {
			return nil, transientIO(err)
		}
	}

	cart, err := r.cartRepo.GetOrCreate(ctx, transition.UserID)
	if err != nil {
		return nil, transientIO(err)
	}
	result.Cart = cart

	if result.Merged > 0 || len(result.Skipped) > 0 {
		logger.Infow("cart_merge_completed",
			"user_id", transition.UserID,
			"merged", result.Merged,
			"clamped", len(result.Clamped),
			"skipped", len(result.Skipped),
		)
	}
	return result, nil
}

func transientIO(err error) error {
	if err == nil || errors.Is(err, ErrTransientIO) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTransientIO, err)
}
