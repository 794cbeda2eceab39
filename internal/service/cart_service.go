package service

import (
	"context"
	"errors"

	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/repository"
)

// CartItemInput 加购输入（名称/图片/价格以商品当前信息为准）
type CartItemInput struct {
	ProductID uint
	Quantity  int
}

// CartService 服务端购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Get 获取用户购物车，不存在时创建空购物车
func (s *CartService) Get(ctx context.Context, userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	return s.cartRepo.GetOrCreate(ctx, userID)
}

// UpsertItem 添加或覆盖购物车项（数量为覆盖而非累加）
func (s *CartService) UpsertItem(ctx context.Context, userID uint, input CartItemInput) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	product, err := loadCartProduct(s.productRepo, input)
	if err != nil {
		return nil, err
	}
	if err := checkCartStock(product, input.Quantity); err != nil {
		return nil, err
	}
	return s.cartRepo.UpsertItem(ctx, userID, buildCartItem(product, input.Quantity))
}

// RemoveItem 删除购物车项，商品不在购物车中时原样返回
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	if productID == 0 {
		return nil, ErrInvalidCartItem
	}
	cart, err := s.cartRepo.RemoveItem(ctx, userID, productID)
	if errors.Is(err, repository.ErrCartNotInitialized) {
		return nil, ErrCartNotFound
	}
	return cart, err
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	cart, err := s.cartRepo.Clear(ctx, userID)
	if errors.Is(err, repository.ErrCartNotInitialized) {
		return nil, ErrCartNotFound
	}
	return cart, err
}

// loadCartProduct 校验加购输入并加载商品
func loadCartProduct(productRepo repository.ProductRepository, input CartItemInput) (*models.Product, error) {
	if input.ProductID == 0 || input.Quantity < 1 {
		return nil, ErrInvalidCartItem
	}
	product, err := productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// checkCartStock 数量不能超过当前库存
func checkCartStock(product *models.Product, quantity int) error {
	if product.CountInStock <= 0 {
		return ErrProductOutOfStock
	}
	if quantity > product.CountInStock {
		return ErrQuantityExceedsStock
	}
	return nil
}

func buildCartItem(product *models.Product, quantity int) models.CartItem {
	return models.CartItem{
		ProductID:    product.ID,
		Name:         product.Name,
		Image:        product.Image,
		Price:        product.Price,
		Quantity:     quantity,
		CountInStock: product.CountInStock,
		Category:     product.Category,
	}
}
