package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/furniro/storefront/internal/models"
)

const defaultGuestCartTTL = 30 * 24 * time.Hour

// GuestCartStore 游客购物车存储
type GuestCartStore interface {
	Load(ctx context.Context, token string) (*models.GuestCart, error)
	Save(ctx context.Context, token string, cart *models.GuestCart) error
	Clear(ctx context.Context, token string) error
}

// NewGuestCartStore Redis 可用时使用 Redis，否则回退到进程内存储
func NewGuestCartStore(ttl time.Duration) GuestCartStore {
	if Enabled() {
		return NewRedisGuestCartStore(ttl)
	}
	return NewMemoryGuestCartStore(ttl)
}

func guestCartKey(token string) string {
	return "guest_cart:" + strings.TrimSpace(token)
}

func resolveGuestCartTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return defaultGuestCartTTL
	}
	return ttl
}

// RedisGuestCartStore Redis 实现，值为 {"cartItems":[...]} JSON
type RedisGuestCartStore struct {
	ttl time.Duration
}

// NewRedisGuestCartStore 创建 Redis 游客购物车存储
func NewRedisGuestCartStore(ttl time.Duration) *RedisGuestCartStore {
	return &RedisGuestCartStore{ttl: resolveGuestCartTTL(ttl)}
}

// Load 读取游客购物车，不存在时返回空购物车
func (s *RedisGuestCartStore) Load(ctx context.Context, token string) (*models.GuestCart, error) {
	var cart models.GuestCart
	hit, err := GetJSON(ctx, guestCartKey(token), &cart)
	if err != nil {
		return nil, err
	}
	if !hit || cart.CartItems == nil {
		return &models.GuestCart{CartItems: []models.GuestCartItem{}}, nil
	}
	return &cart, nil
}

// Save 写入游客购物车并刷新过期时间
func (s *RedisGuestCartStore) Save(ctx context.Context, token string, cart *models.GuestCart) error {
	return SetJSON(ctx, guestCartKey(token), cart.Clone(), s.ttl)
}

// Clear 删除游客购物车
func (s *RedisGuestCartStore) Clear(ctx context.Context, token string) error {
	return Del(ctx, guestCartKey(token))
}

type memoryGuestCartEntry struct {
	cart      *models.GuestCart
	expiresAt time.Time
}

// MemoryGuestCartStore 进程内实现（未启用 Redis 或测试时使用）
type MemoryGuestCartStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	carts map[string]memoryGuestCartEntry
	now   func() time.Time
}

// NewMemoryGuestCartStore 创建进程内游客购物车存储
func NewMemoryGuestCartStore(ttl time.Duration) *MemoryGuestCartStore {
	return &MemoryGuestCartStore{
		ttl:   resolveGuestCartTTL(ttl),
		carts: make(map[string]memoryGuestCartEntry),
		now:   time.Now,
	}
}

// Load 读取游客购物车，不存在或已过期时返回空购物车
func (s *MemoryGuestCartStore) Load(_ context.Context, token string) (*models.GuestCart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := guestCartKey(token)
	entry, ok := s.carts[key]
	if !ok {
		return &models.GuestCart{CartItems: []models.GuestCartItem{}}, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.carts, key)
		return &models.GuestCart{CartItems: []models.GuestCartItem{}}, nil
	}
	return entry.cart.Clone(), nil
}

// Save 写入游客购物车并刷新过期时间
func (s *MemoryGuestCartStore) Save(_ context.Context, token string, cart *models.GuestCart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[guestCartKey(token)] = memoryGuestCartEntry{
		cart:      cart.Clone(),
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

// Clear 删除游客购物车
func (s *MemoryGuestCartStore) Clear(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, guestCartKey(token))
	return nil
}
