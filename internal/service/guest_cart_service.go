package service

import (
	"context"
	"strings"

	"github.com/furniro/storefront/internal/cache"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/repository"

	"github.com/google/uuid"
)

// GuestCartService 游客购物车服务
type GuestCartService struct {
	store       cache.GuestCartStore
	productRepo repository.ProductRepository
}

// NewGuestCartService 创建游客购物车服务
func NewGuestCartService(store cache.GuestCartStore, productRepo repository.ProductRepository) *GuestCartService {
	return &GuestCartService{
		store:       store,
		productRepo: productRepo,
	}
}

// IssueToken 签发新的游客令牌
func (s *GuestCartService) IssueToken() string {
	return uuid.NewString()
}

// NormalizeGuestToken 校验并规范化游客令牌
func NormalizeGuestToken(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrGuestTokenRequired
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return "", ErrGuestTokenRequired
	}
	return parsed.String(), nil
}

// Get 获取游客购物车
func (s *GuestCartService) Get(ctx context.Context, token string) (*models.GuestCart, error) {
	normalized, err := NormalizeGuestToken(token)
	if err != nil {
		return nil, err
	}
	return s.store.Load(ctx, normalized)
}

// UpsertItem 添加或覆盖游客购物车项，新商品追加到末尾
func (s *GuestCartService) UpsertItem(ctx context.Context, token string, input CartItemInput) (*models.GuestCart, error) {
	normalized, err := NormalizeGuestToken(token)
	if err != nil {
		return nil, err
	}
	product, err := loadCartProduct(s.productRepo, input)
	if err != nil {
		return nil, err
	}
	if err := checkCartStock(product, input.Quantity); err != nil {
		return nil, err
	}
	cart, err := s.store.Load(ctx, normalized)
	if err != nil {
		return nil, err
	}
	entry := buildGuestCartItem(product, input.Quantity)
	replaced := false
	for i := range cart.CartItems {
		if cart.CartItems[i].ProductID == entry.ProductID {
			cart.CartItems[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		cart.CartItems = append(cart.CartItems, entry)
	}
	if err := s.store.Save(ctx, normalized, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem 删除游客购物车项，不存在时原样返回
func (s *GuestCartService) RemoveItem(ctx context.Context, token string, productID uint) (*models.GuestCart, error) {
	normalized, err := NormalizeGuestToken(token)
	if err != nil {
		return nil, err
	}
	if productID == 0 {
		return nil, ErrInvalidCartItem
	}
	cart, err := s.store.Load(ctx, normalized)
	if err != nil {
		return nil, err
	}
	kept := make([]models.GuestCartItem, 0, len(cart.CartItems))
	for _, item := range cart.CartItems {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(cart.CartItems) {
		return cart, nil
	}
	cart.CartItems = kept
	if err := s.store.Save(ctx, normalized, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear 清空游客购物车
func (s *GuestCartService) Clear(ctx context.Context, token string) (*models.GuestCart, error) {
	normalized, err := NormalizeGuestToken(token)
	if err != nil {
		return nil, err
	}
	if err := s.store.Clear(ctx, normalized); err != nil {
		return nil, err
	}
	return &models.GuestCart{CartItems: []models.GuestCartItem{}}, nil
}

func buildGuestCartItem(product *models.Product, quantity int) models.GuestCartItem {
	return models.GuestCartItem{
		ProductID:    product.ID,
		Name:         product.Name,
		Image:        product.Image,
		Price:        product.Price,
		Quantity:     quantity,
		CountInStock: product.CountInStock,
		Category:     product.Category,
	}
}
