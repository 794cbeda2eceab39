package queue

import (
	"testing"
	"time"

	"github.com/furniro/storefront/internal/config"
)

func TestCartMergeRetryTaskRoundTrip(t *testing.T) {
	task, err := NewCartMergeRetryTask(CartMergeRetryPayload{UserID: 42, GuestToken: "tok-1"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskCartMergeRetry {
		t.Fatalf("task type want %s got %s", TaskCartMergeRetry, task.Type())
	}
	payload, err := ParseCartMergeRetryPayload(task)
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.UserID != 42 || payload.GuestToken != "tok-1" || !payload.Valid() {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestCartMergeRetryPayloadValid(t *testing.T) {
	if (CartMergeRetryPayload{UserID: 1, GuestToken: "  "}).Valid() {
		t.Fatalf("blank token should be invalid")
	}
	if (CartMergeRetryPayload{GuestToken: "tok"}).Valid() {
		t.Fatalf("zero user should be invalid")
	}
}

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false}, 3)
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueCartMergeRetry(1, "tok", time.Second); err != nil {
		t.Fatalf("disabled client should not fail: %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 10 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
	if got := cartMergeRetryTaskID(7, " tok "); got != "cart:merge_retry:7:tok" {
		t.Fatalf("unexpected task id %s", got)
	}
}

func TestBuildServerConfigUsesConfiguredQueues(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Concurrency: 4, Queues: map[string]int{"critical": 5, "default": 1}})
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("blank host should default to localhost, got %s", opt.Addr)
	}
	if cfg.Concurrency != 4 || cfg.Queues["critical"] != 5 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
	if cfg.Logger == nil || cfg.ErrorHandler == nil {
		t.Fatalf("server config should carry logger and error handler")
	}
}

func TestNilClientIsDisabled(t *testing.T) {
	var client *Client
	if client.Enabled() {
		t.Fatalf("nil client should be disabled")
	}
	if err := client.EnqueueCartMergeRetry(1, "tok", -time.Second); err != nil {
		t.Fatalf("nil client enqueue should be a no-op: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("nil client close should be a no-op: %v", err)
	}
}
