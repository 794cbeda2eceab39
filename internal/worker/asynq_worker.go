package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/furniro/storefront/internal/logger"
	"github.com/furniro/storefront/internal/provider"
	"github.com/furniro/storefront/internal/queue"
	"github.com/furniro/storefront/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCartMergeRetry, c.handleCartMergeRetry)
}

// handleCartMergeRetry 重放游客购物车合并；仅临时故障返回错误以触发 asynq 重试
func (c *Consumer) handleCartMergeRetry(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || c.CartReconciler == nil || task == nil {
		logger.Debugw("worker_cart_merge_retry_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseCartMergeRetryPayload(task)
	if err != nil {
		logger.Warnw("worker_cart_merge_retry_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if !payload.Valid() {
		logger.Debugw("worker_cart_merge_retry_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}

	result, err := c.CartReconciler.Reconcile(ctx, service.AuthTransition{
		UserID:     payload.UserID,
		GuestToken: payload.GuestToken,
	})
	if err != nil {
		if errors.Is(err, service.ErrTransientIO) {
			logger.Warnw("worker_cart_merge_retry_transient_failed", "user_id", payload.UserID, "error", err)
			return err
		}
		logger.Warnw("worker_cart_merge_retry_dropped", "user_id", payload.UserID, "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	logger.Infow("worker_cart_merge_retry_done",
		"user_id", payload.UserID,
		"merged", result.Merged,
		"skipped", len(result.Skipped),
	)
	return nil
}
