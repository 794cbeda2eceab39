package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/furniro/storefront/internal/constants"
	"github.com/furniro/storefront/internal/logger"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/repository"

	"gorm.io/gorm"
)

// SubmitOrderInput 下单输入
type SubmitOrderInput struct {
	UserID          uint
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
	// ClientPrices 客户端计算的金额，仅用于比对
	ClientPrices *PriceBreakdown
}

// OrderService 订单服务
type OrderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	pricing   *PricingCalculator
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, pricing *PricingCalculator) *OrderService {
	if pricing == nil {
		pricing = NewDefaultPricingCalculator()
	}
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		pricing:   pricing,
	}
}

// Submit 以服务端购物车为准生成订单快照，订单写入与清空购物车同时成功或同时失败
func (s *OrderService) Submit(ctx context.Context, input SubmitOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrUnauthorized
	}
	address, err := normalizeShippingAddress(input.ShippingAddress)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := normalizePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.Get(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	items := snapshotOrderItems(cart.Items)
	breakdown := s.pricing.CalculateCart(cart.Items)
	if input.ClientPrices != nil && !breakdown.Matches(*input.ClientPrices) {
		logger.Warnw("order_client_total_mismatch",
			"user_id", input.UserID,
			"client_total", input.ClientPrices.TotalPrice.String(),
			"server_total", breakdown.TotalPrice.String(),
		)
	}

	order := &models.Order{
		OrderNo:       generateOrderNo(),
		UserID:        input.UserID,
		Address:       address.Address,
		City:          address.City,
		PostalCode:    address.PostalCode,
		Country:       address.Country,
		PaymentMethod: paymentMethod,
		ItemsPrice:    breakdown.ItemsPrice,
		ShippingPrice: breakdown.ShippingPrice,
		TaxPrice:      breakdown.TaxPrice,
		TotalPrice:    breakdown.TotalPrice,
	}

	detached := false
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order, items); err != nil {
			return err
		}
		var clearErr error
		detached, clearErr = s.clearCart(ctx, tx, input.UserID)
		return clearErr
	})
	if err != nil {
		if detached {
			s.restoreCart(ctx, input.UserID, cart.Items)
		}
		logger.Errorw("order_create_failed", "user_id", input.UserID, "error", err)
		return nil, err
	}

	logger.Infow("order_submitted",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", input.UserID,
		"items", len(items),
		"total", order.TotalPrice.String(),
	)
	return order, nil
}

// txCartStore 可以加入订单事务的购物车存储
type txCartStore interface {
	WithTx(tx *gorm.DB) *repository.GormCartRepository
}

// clearCart 在订单事务中清空购物车
// 不支持 SQL 事务的存储（如 Mongo）直接清空，detached 为 true 且清空已生效，事务回滚时需要 restoreCart
func (s *OrderService) clearCart(ctx context.Context, tx *gorm.DB, userID uint) (detached bool, err error) {
	store := s.cartRepo
	if joinable, ok := s.cartRepo.(txCartStore); ok {
		store = joinable.WithTx(tx)
	}
	_, err = store.Clear(ctx, userID)
	if errors.Is(err, repository.ErrCartNotInitialized) {
		err = nil
	}
	if err != nil {
		return false, err
	}
	_, joinable := s.cartRepo.(txCartStore)
	return !joinable, nil
}

// restoreCart 订单回滚后把已清空的独立存储购物车写回
func (s *OrderService) restoreCart(ctx context.Context, userID uint, items []models.CartItem) {
	for _, item := range items {
		if _, err := s.cartRepo.UpsertItem(ctx, userID, item); err != nil {
			logger.Errorw("order_restore_cart_failed",
				"user_id", userID,
				"product_id", item.ProductID,
				"error", err,
			)
			return
		}
	}
}

// snapshotOrderItems 深拷贝购物车项
func snapshotOrderItems(cartItems []models.CartItem) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(cartItems))
	for _, item := range cartItems {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Category:  item.Category,
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
		})
	}
	return items
}

func normalizeShippingAddress(raw models.ShippingAddress) (models.ShippingAddress, error) {
	address := models.ShippingAddress{
		Address:    strings.TrimSpace(raw.Address),
		City:       strings.TrimSpace(raw.City),
		PostalCode: strings.TrimSpace(raw.PostalCode),
		Country:    strings.TrimSpace(raw.Country),
	}
	if address.Address == "" || address.City == "" || address.PostalCode == "" || address.Country == "" {
		return models.ShippingAddress{}, ErrShippingAddressRequired
	}
	return address, nil
}

var supportedPaymentMethods = []string{
	constants.PaymentMethodPayPal,
	constants.PaymentMethodCard,
	constants.PaymentMethodCOD,
}

func normalizePaymentMethod(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrPaymentMethodRequired
	}
	for _, method := range supportedPaymentMethods {
		if strings.EqualFold(method, trimmed) {
			return method, nil
		}
	}
	return "", ErrPaymentMethodInvalid
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("FN%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(n.String())
	}
	return b.String()
}
