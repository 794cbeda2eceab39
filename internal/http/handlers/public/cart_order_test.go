package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/furniro/storefront/internal/cache"
	"github.com/furniro/storefront/internal/constants"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/provider"
	"github.com/furniro/storefront/internal/repository"
	"github.com/furniro/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type testEnvelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupPublicHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:public_cart_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	guestStore := cache.NewMemoryGuestCartStore(time.Hour)
	pricing := service.NewDefaultPricingCalculator()

	h := New(&provider.Container{
		ProductRepo:      productRepo,
		CartRepo:         cartRepo,
		OrderRepo:        orderRepo,
		GuestCartStore:   guestStore,
		Pricing:          pricing,
		ProductService:   service.NewProductService(productRepo),
		CartService:      service.NewCartService(cartRepo, productRepo),
		GuestCartService: service.NewGuestCartService(guestStore, productRepo),
		CartReconciler:   service.NewCartReconciler(guestStore, cartRepo, productRepo, nil, 0),
		OrderService:     service.NewOrderService(orderRepo, cartRepo, pricing),
	})
	return h, db
}

func newPublicTestRouter(h *Handler, userID uint) *gin.Engine {
	r := gin.New()
	r.POST("/guest/cart/session", h.CreateGuestSession)
	r.GET("/guest/cart", h.GetGuestCart)
	r.POST("/guest/cart", h.AddGuestCartItem)
	r.POST("/public/pricing/preview", h.PreviewPricing)

	user := r.Group("")
	user.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	user.GET("/cart", h.GetCart)
	user.POST("/cart", h.AddCartItem)
	user.POST("/cart/merge", h.MergeGuestCart)
	user.POST("/orders", h.CreateOrder)
	user.GET("/orders/:id", h.GetOrder)
	return r
}

func createTestProduct(t *testing.T, db *gorm.DB, name, price string, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:         name,
		Description:  name,
		Category:     "living",
		Brand:        "Furniro",
		Price:        models.MustMoney(price),
		Image:        "/images/" + name + ".png",
		CountInStock: stock,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func doJSON(t *testing.T, r *gin.Engine, method, path, guestToken string, body interface{}) testEnvelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if guestToken != "" {
		req.Header.Set(constants.HeaderGuestToken, guestToken)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s http status want 200 got %d", method, path, w.Code)
	}
	var env testEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	return env
}

func TestGuestCartMergeAndOrderFlow(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	r := newPublicTestRouter(h, 1)

	sofa := createTestProduct(t, db, "syltherine", "120", 10)
	lamp := createTestProduct(t, db, "pingky", "40", 3)

	env := doJSON(t, r, http.MethodPost, "/guest/cart/session", "", nil)
	var session struct {
		GuestToken string `json:"guest_token"`
	}
	if err := json.Unmarshal(env.Data, &session); err != nil || session.GuestToken == "" {
		t.Fatalf("guest session missing token: %v %s", err, string(env.Data))
	}

	for _, item := range []CartItemRequest{
		{ProductID: sofa.ID, Quantity: 2},
		{ProductID: lamp.ID, Quantity: 3},
	} {
		env = doJSON(t, r, http.MethodPost, "/guest/cart", session.GuestToken, item)
		if env.StatusCode != 0 {
			t.Fatalf("add guest item failed: %+v", env)
		}
	}

	// 合并前库存下降，合并时应截断到库存
	if err := db.Model(&models.Product{}).Where("id = ?", lamp.ID).Update("count_in_stock", 1).Error; err != nil {
		t.Fatalf("update stock failed: %v", err)
	}

	env = doJSON(t, r, http.MethodPost, "/cart/merge", session.GuestToken, nil)
	if env.StatusCode != 0 {
		t.Fatalf("merge failed: %+v", env)
	}
	var merge struct {
		Merged  int    `json:"merged"`
		Clamped []uint `json:"clamped"`
		Cart    CartView
	}
	if err := json.Unmarshal(env.Data, &merge); err != nil {
		t.Fatalf("decode merge failed: %v", err)
	}
	if merge.Merged != 2 || len(merge.Clamped) != 1 || merge.Clamped[0] != lamp.ID {
		t.Fatalf("unexpected merge result: %+v", merge)
	}
	if len(merge.Cart.CartItems) != 2 || merge.Cart.CartItems[0].ProductID != sofa.ID || merge.Cart.CartItems[1].Quantity != 1 {
		t.Fatalf("unexpected merged cart: %+v", merge.Cart.CartItems)
	}

	env = doJSON(t, r, http.MethodGet, "/guest/cart", session.GuestToken, nil)
	var guestCart CartView
	if err := json.Unmarshal(env.Data, &guestCart); err != nil {
		t.Fatalf("decode guest cart failed: %v", err)
	}
	if len(guestCart.CartItems) != 0 {
		t.Fatalf("guest cart should be empty after merge: %+v", guestCart.CartItems)
	}

	env = doJSON(t, r, http.MethodPost, "/orders", "", gin.H{
		"shippingAddress": gin.H{"address": "1 Main St", "city": "Oslo", "postalCode": "0150", "country": "NO"},
		"paymentMethod":   constants.PaymentMethodPayPal,
		"itemsPrice":      "1.00",
		"shippingPrice":   "0.00",
		"taxPrice":        "0.00",
		"totalPrice":      "1.00",
	})
	if env.StatusCode != 0 {
		t.Fatalf("create order failed: %+v", env)
	}
	var order struct {
		ID            uint   `json:"id"`
		ItemsPrice    string `json:"itemsPrice"`
		ShippingPrice string `json:"shippingPrice"`
		TaxPrice      string `json:"taxPrice"`
		TotalPrice    string `json:"totalPrice"`
		IsPaid        bool   `json:"isPaid"`
		OrderItems    []struct {
			ProductID uint `json:"productId"`
			Quantity  int  `json:"qty"`
		} `json:"orderItems"`
	}
	if err := json.Unmarshal(env.Data, &order); err != nil {
		t.Fatalf("decode order failed: %v", err)
	}
	if order.ItemsPrice != "280.00" || order.ShippingPrice != "0.00" || order.TaxPrice != "42.00" || order.TotalPrice != "322.00" {
		t.Fatalf("unexpected order prices: %+v", order)
	}
	if order.IsPaid || len(order.OrderItems) != 2 {
		t.Fatalf("unexpected order state: %+v", order)
	}

	env = doJSON(t, r, http.MethodGet, "/cart", "", nil)
	var cart CartView
	if err := json.Unmarshal(env.Data, &cart); err != nil {
		t.Fatalf("decode cart failed: %v", err)
	}
	if len(cart.CartItems) != 0 {
		t.Fatalf("cart should be cleared after order: %+v", cart.CartItems)
	}

	env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), "", nil)
	if env.StatusCode != 0 {
		t.Fatalf("owner should read order: %+v", env)
	}
	other := newPublicTestRouter(h, 2)
	env = doJSON(t, other, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), "", nil)
	if env.StatusCode != 404 {
		t.Fatalf("other user should not see order, got %+v", env)
	}
}

func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	h, _ := setupPublicHandlerTest(t)
	r := newPublicTestRouter(h, 1)

	env := doJSON(t, r, http.MethodPost, "/orders", "", gin.H{
		"shippingAddress": gin.H{"address": "1 Main St", "city": "Oslo", "postalCode": "0150", "country": "NO"},
		"paymentMethod":   constants.PaymentMethodPayPal,
	})
	if env.StatusCode != 400 {
		t.Fatalf("empty cart order want 400 got %+v", env)
	}
}

func TestAddCartItemRejectsOverStock(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	r := newPublicTestRouter(h, 1)
	product := createTestProduct(t, db, "grifo", "150", 2)

	env := doJSON(t, r, http.MethodPost, "/cart", "", CartItemRequest{ProductID: product.ID, Quantity: 3})
	if env.StatusCode != 400 {
		t.Fatalf("over stock want 400 got %+v", env)
	}
	env = doJSON(t, r, http.MethodPost, "/cart", "", CartItemRequest{ProductID: 999, Quantity: 1})
	if env.StatusCode != 404 {
		t.Fatalf("missing product want 404 got %+v", env)
	}
}

func TestGuestCartRequiresToken(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	r := newPublicTestRouter(h, 1)
	product := createTestProduct(t, db, "muggo", "150", 2)

	env := doJSON(t, r, http.MethodPost, "/guest/cart", "", CartItemRequest{ProductID: product.ID, Quantity: 1})
	if env.StatusCode != 400 {
		t.Fatalf("missing guest token want 400 got %+v", env)
	}
	env = doJSON(t, r, http.MethodPost, "/cart/merge", "", nil)
	if env.StatusCode != 400 {
		t.Fatalf("merge without guest token want 400 got %+v", env)
	}
}

func TestPreviewPricing(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	r := newPublicTestRouter(h, 1)
	product := createTestProduct(t, db, "potty", "33.33", 5)

	env := doJSON(t, r, http.MethodPost, "/public/pricing/preview", "", PricingPreviewRequest{
		Items: []PricingPreviewItem{{ProductID: product.ID, Quantity: 1}},
	})
	if env.StatusCode != 0 {
		t.Fatalf("preview failed: %+v", env)
	}
	var prices service.PriceBreakdown
	if err := json.Unmarshal(env.Data, &prices); err != nil {
		t.Fatalf("decode prices failed: %v", err)
	}
	if prices.ItemsPrice.String() != "33.33" || prices.ShippingPrice.String() != "50.00" || prices.TaxPrice.String() != "5.00" || prices.TotalPrice.String() != "88.33" {
		t.Fatalf("unexpected preview: items=%s shipping=%s tax=%s total=%s",
			prices.ItemsPrice.String(), prices.ShippingPrice.String(), prices.TaxPrice.String(), prices.TotalPrice.String())
	}
}

func TestMergeGuestCartWithoutReconciler(t *testing.T) {
	h, _ := setupPublicHandlerTest(t)
	h.CartReconciler = nil
	r := newPublicTestRouter(h, 1)

	env := doJSON(t, r, http.MethodPost, "/cart/merge", "7d3c5b34-4a4f-4b52-9d0a-3c2f3b4fb0a1", nil)
	if env.StatusCode != 503 {
		t.Fatalf("merge without reconciler want 503 got %d", env.StatusCode)
	}
	env = doJSON(t, r, http.MethodGet, "/cart", "7d3c5b34-4a4f-4b52-9d0a-3c2f3b4fb0a1", nil)
	if env.StatusCode != 0 {
		t.Fatalf("cart read should not depend on the reconciler, got %d", env.StatusCode)
	}
}

func TestMappedErrorFallsBackToFamily(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/missing", func(c *gin.Context) {
		respondOrderSubmitError(c, fmt.Errorf("load cart: %w", service.ErrCartNotFound))
	})
	r.GET("/invalid", func(c *gin.Context) {
		respondOrderSubmitError(c, service.ErrQuantityExceedsStock)
	})

	if env := doJSON(t, r, http.MethodGet, "/missing", "", nil); env.StatusCode != 404 {
		t.Fatalf("not found family want 404 got %d", env.StatusCode)
	}
	if env := doJSON(t, r, http.MethodGet, "/invalid", "", nil); env.StatusCode != 400 {
		t.Fatalf("validation family want 400 got %d", env.StatusCode)
	}
}
