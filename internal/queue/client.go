package queue

import (
	"cmp"
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/furniro/storefront/internal/config"
	"github.com/furniro/storefront/internal/constants"
	"github.com/furniro/storefront/internal/logger"

	"github.com/hibiken/asynq"
)

// DefaultQueue 未配置队列权重时使用的队列
const DefaultQueue = constants.QueueDefault

const defaultConcurrency = 10

// Client asynq 客户端封装，nil 或未启用时所有投递都是空操作
type Client struct {
	inner    *asynq.Client
	baseOpts []asynq.Option
}

// NewClient 创建队列客户端，maxRetry <= 0 时沿用 asynq 默认重试次数
func NewClient(cfg *config.QueueConfig, maxRetry int) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	opts := []asynq.Option{asynq.Queue(DefaultQueue)}
	if maxRetry > 0 {
		opts = append(opts, asynq.MaxRetry(maxRetry))
	}
	return &Client{
		inner:    asynq.NewClient(redisOpt(cfg)),
		baseOpts: opts,
	}, nil
}

func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}

// EnqueueCartMergeRetry 延迟投递游客购物车合并重试
// TaskID 按用户与游客令牌去重，已有待执行任务时直接返回成功
func (c *Client) EnqueueCartMergeRetry(userID uint, guestToken string, delay time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewCartMergeRetryTask(CartMergeRetryPayload{UserID: userID, GuestToken: guestToken})
	if err != nil {
		return err
	}
	opts := append([]asynq.Option{
		asynq.ProcessIn(max(delay, 0)),
		asynq.TaskID(cartMergeRetryTaskID(userID, guestToken)),
	}, c.baseOpts...)
	if _, err := c.inner.Enqueue(task, opts...); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return err
	}
	return nil
}

func cartMergeRetryTaskID(userID uint, guestToken string) string {
	return TaskCartMergeRetry + ":" + strconv.FormatUint(uint64(userID), 10) + ":" + strings.TrimSpace(guestToken)
}

// BuildServerConfig 生成 worker 端连接与调度配置，日志接入 zap
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency: defaultConcurrency,
		Queues:      map[string]int{DefaultQueue: 1},
		Logger:      logger.S(),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			logger.Warnw("queue_task_failed", "task", task.Type(), "retried", retried, "error", err)
		}),
	}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			serverCfg.Concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			serverCfg.Queues = cfg.Queues
		}
	}
	return redisOpt(cfg), serverCfg
}

func redisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	if cfg == nil {
		cfg = &config.QueueConfig{}
	}
	host := cmp.Or(strings.TrimSpace(cfg.Host), "127.0.0.1")
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	return asynq.RedisClientOpt{
		Addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
