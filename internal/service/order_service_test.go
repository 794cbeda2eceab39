package service

import (
	"context"
	"errors"
	"testing"

	"github.com/furniro/storefront/internal/constants"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/repository"
)

var testShippingAddress = models.ShippingAddress{
	Address:    "1 Main St",
	City:       "Springfield",
	PostalCode: "12345",
	Country:    "US",
}

func setupOrderService(t *testing.T) (*OrderService, *CartService, *cartFixture) {
	t.Helper()
	f := setupCartFixture(t)
	orderSvc := NewOrderService(repository.NewOrderRepository(f.db), f.cartRepo, NewDefaultPricingCalculator())
	return orderSvc, NewCartService(f.cartRepo, f.productRepo), f
}

func TestOrderServiceSubmitComputesTotalsAndClearsCart(t *testing.T) {
	orderSvc, cartSvc, f := setupOrderService(t)
	ctx := context.Background()
	chair := f.product(t, "chair", "50", 10)
	if _, err := cartSvc.UpsertItem(ctx, 1, CartItemInput{ProductID: chair.ID, Quantity: 3}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	order, err := orderSvc.Submit(ctx, SubmitOrderInput{
		UserID:          1,
		ShippingAddress: testShippingAddress,
		PaymentMethod:   "paypal",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if order.ItemsPrice.String() != "150.00" || order.ShippingPrice.String() != "50.00" ||
		order.TaxPrice.String() != "22.50" || order.TotalPrice.String() != "222.50" {
		t.Fatalf("unexpected breakdown: items=%s shipping=%s tax=%s total=%s",
			order.ItemsPrice, order.ShippingPrice, order.TaxPrice, order.TotalPrice)
	}
	if order.IsPaid || order.IsDelivered {
		t.Fatalf("new order must be unpaid and undelivered")
	}
	if order.PaymentMethod != constants.PaymentMethodPayPal {
		t.Fatalf("payment method should be normalized, got %s", order.PaymentMethod)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 3 || order.Items[0].Name != "chair" {
		t.Fatalf("unexpected order items: %+v", order.Items)
	}

	cart, err := cartSvc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("cart should be empty after submission, got %d items", len(cart.Items))
	}
}

type brokenClearCartRepo struct {
	repository.CartRepository
}

func (r *brokenClearCartRepo) Clear(context.Context, uint) (*models.Cart, error) {
	return nil, errors.New("store down")
}

func TestOrderServiceSubmitRollsBackWhenCartClearFails(t *testing.T) {
	f := setupCartFixture(t)
	ctx := context.Background()
	cartSvc := NewCartService(f.cartRepo, f.productRepo)
	sofa := f.product(t, "sofa", "150", 10)
	if _, err := cartSvc.UpsertItem(ctx, 1, CartItemInput{ProductID: sofa.ID, Quantity: 1}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	orderSvc := NewOrderService(repository.NewOrderRepository(f.db), &brokenClearCartRepo{CartRepository: f.cartRepo}, NewDefaultPricingCalculator())

	for attempt := 1; attempt <= 2; attempt++ {
		order, err := orderSvc.Submit(ctx, SubmitOrderInput{UserID: 1, ShippingAddress: testShippingAddress, PaymentMethod: "PayPal"})
		if err == nil || order != nil {
			t.Fatalf("attempt %d: submit should fail when the cart cannot be cleared", attempt)
		}
	}

	var orders int64
	if err := f.db.Model(&models.Order{}).Count(&orders).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orders != 0 {
		t.Fatalf("no order may persist without clearing the cart, got %d", orders)
	}
	cart, err := cartSvc.Get(ctx, 1)
	if err != nil || len(cart.Items) != 1 {
		t.Fatalf("cart should keep its items for a retry, got %+v err=%v", cart, err)
	}
}

func TestOrderServiceSnapshotSurvivesCartChanges(t *testing.T) {
	orderSvc, cartSvc, f := setupOrderService(t)
	ctx := context.Background()
	lamp := f.product(t, "lamp", "40", 10)
	if _, err := cartSvc.UpsertItem(ctx, 1, CartItemInput{ProductID: lamp.ID, Quantity: 2}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	order, err := orderSvc.Submit(ctx, SubmitOrderInput{UserID: 1, ShippingAddress: testShippingAddress, PaymentMethod: "PayPal"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := cartSvc.UpsertItem(ctx, 1, CartItemInput{ProductID: lamp.ID, Quantity: 7}); err != nil {
		t.Fatalf("upsert after order failed: %v", err)
	}
	stored, err := orderSvc.GetForViewer(order.ID, 1, false)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if stored.Items[0].Quantity != 2 {
		t.Fatalf("order snapshot changed with cart, got qty %d", stored.Items[0].Quantity)
	}
}

func TestOrderServiceSubmitValidation(t *testing.T) {
	orderSvc, cartSvc, f := setupOrderService(t)
	ctx := context.Background()
	sofa := f.product(t, "sofa", "150", 10)

	if _, err := orderSvc.Submit(ctx, SubmitOrderInput{ShippingAddress: testShippingAddress, PaymentMethod: "PayPal"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("anonymous submit want ErrUnauthorized got %v", err)
	}
	if _, err := orderSvc.Submit(ctx, SubmitOrderInput{UserID: 1, ShippingAddress: testShippingAddress, PaymentMethod: "PayPal"}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("missing cart want ErrCartEmpty got %v", err)
	}

	if _, err := cartSvc.UpsertItem(ctx, 1, CartItemInput{ProductID: sofa.ID, Quantity: 1}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	missingCity := testShippingAddress
	missingCity.City = "  "
	if _, err := orderSvc.Submit(ctx, SubmitOrderInput{UserID: 1, ShippingAddress: missingCity, PaymentMethod: "PayPal"}); !errors.Is(err, ErrShippingAddressRequired) {
		t.Fatalf("missing city want ErrShippingAddressRequired got %v", err)
	}
	if _, err := orderSvc.Submit(ctx, SubmitOrderInput{UserID: 1, ShippingAddress: testShippingAddress}); !errors.Is(err, ErrPaymentMethodRequired) {
		t.Fatalf("missing payment method want ErrPaymentMethodRequired got %v", err)
	}
	if _, err := orderSvc.Submit(ctx, SubmitOrderInput{UserID: 1, ShippingAddress: testShippingAddress, PaymentMethod: "Barter"}); !errors.Is(err, ErrPaymentMethodInvalid) {
		t.Fatalf("unknown payment method want ErrPaymentMethodInvalid got %v", err)
	}

	cart, err := cartSvc.Get(ctx, 1)
	if err != nil || len(cart.Items) != 1 {
		t.Fatalf("failed submissions must leave the cart untouched, got %+v err=%v", cart, err)
	}
}

func TestOrderServiceClientTotalsAreAdvisory(t *testing.T) {
	orderSvc, cartSvc, f := setupOrderService(t)
	ctx := context.Background()
	sofa := f.product(t, "sofa", "150", 10)
	if _, err := cartSvc.UpsertItem(ctx, 1, CartItemInput{ProductID: sofa.ID, Quantity: 1}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	tampered := PriceBreakdown{
		ItemsPrice:    models.MustMoney("1"),
		ShippingPrice: models.MustMoney("0"),
		TaxPrice:      models.MustMoney("0"),
		TotalPrice:    models.MustMoney("1"),
	}
	order, err := orderSvc.Submit(ctx, SubmitOrderInput{UserID: 1, ShippingAddress: testShippingAddress, PaymentMethod: "PayPal", ClientPrices: &tampered})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if order.TotalPrice.String() != "222.50" {
		t.Fatalf("server total must win, got %s", order.TotalPrice.String())
	}
}

func TestOrderServiceStatusTransitions(t *testing.T) {
	orderSvc, cartSvc, f := setupOrderService(t)
	ctx := context.Background()
	sofa := f.product(t, "sofa", "150", 10)
	if _, err := cartSvc.UpsertItem(ctx, 1, CartItemInput{ProductID: sofa.ID, Quantity: 1}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	order, err := orderSvc.Submit(ctx, SubmitOrderInput{UserID: 1, ShippingAddress: testShippingAddress, PaymentMethod: "PayPal"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if OrderStatusOf(order) != constants.OrderStatusPendingPayment {
		t.Fatalf("unexpected initial status %s", OrderStatusOf(order))
	}

	if _, err := orderSvc.MarkDelivered(order.ID); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("deliver before pay want ErrOrderStatusInvalid got %v", err)
	}
	paid, err := orderSvc.MarkPaid(order.ID)
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if !paid.IsPaid || paid.PaidAt == nil || OrderStatusOf(paid) != constants.OrderStatusPaid {
		t.Fatalf("unexpected paid order: %+v", paid)
	}
	if _, err := orderSvc.MarkPaid(order.ID); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("repeat pay want ErrOrderStatusInvalid got %v", err)
	}
	delivered, err := orderSvc.MarkDelivered(order.ID)
	if err != nil {
		t.Fatalf("mark delivered failed: %v", err)
	}
	if OrderStatusOf(delivered) != constants.OrderStatusDelivered || delivered.DeliveredAt == nil {
		t.Fatalf("unexpected delivered order: %+v", delivered)
	}
	if _, err := orderSvc.MarkPaid(9999); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("missing order want ErrOrderNotFound got %v", err)
	}
}

func TestOrderServiceVisibility(t *testing.T) {
	orderSvc, cartSvc, f := setupOrderService(t)
	ctx := context.Background()
	sofa := f.product(t, "sofa", "150", 10)
	if _, err := cartSvc.UpsertItem(ctx, 1, CartItemInput{ProductID: sofa.ID, Quantity: 1}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	order, err := orderSvc.Submit(ctx, SubmitOrderInput{UserID: 1, ShippingAddress: testShippingAddress, PaymentMethod: "PayPal"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := orderSvc.GetForViewer(order.ID, 2, false); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("other user want ErrOrderNotFound got %v", err)
	}
	if _, err := orderSvc.GetForViewer(order.ID, 2, true); err != nil {
		t.Fatalf("admin should see any order: %v", err)
	}
	orders, total, err := orderSvc.ListByUser(repository.OrderListFilter{UserID: 1})
	if err != nil || total != 1 || len(orders) != 1 {
		t.Fatalf("list by user want 1 got total=%d err=%v", total, err)
	}
}
