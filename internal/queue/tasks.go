package queue

import (
	"encoding/json"
	"strings"

	"github.com/furniro/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCartMergeRetry 游客购物车合并重试任务
	TaskCartMergeRetry = constants.TaskCartMergeRetry
)

// CartMergeRetryPayload 合并重试任务载荷
type CartMergeRetryPayload struct {
	UserID     uint   `json:"user_id"`
	GuestToken string `json:"guest_token"`
}

// Valid 载荷是否可执行
func (p CartMergeRetryPayload) Valid() bool {
	return p.UserID != 0 && strings.TrimSpace(p.GuestToken) != ""
}

// NewCartMergeRetryTask 创建合并重试任务
func NewCartMergeRetryTask(payload CartMergeRetryPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCartMergeRetry, body), nil
}

// ParseCartMergeRetryPayload 解析合并重试任务载荷
func ParseCartMergeRetryPayload(task *asynq.Task) (CartMergeRetryPayload, error) {
	var payload CartMergeRetryPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
