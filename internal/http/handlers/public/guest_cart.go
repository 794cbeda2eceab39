package public

import (
	"github.com/furniro/storefront/internal/http/response"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

func buildGuestCartView(cart *models.GuestCart, pricing *service.PricingCalculator) CartView {
	if pricing == nil {
		pricing = service.NewDefaultPricingCalculator()
	}
	view := CartView{CartItems: []CartItemView{}}
	lines := make([]service.PriceLine, 0)
	if cart != nil {
		for _, item := range cart.CartItems {
			view.CartItems = append(view.CartItems, CartItemView{
				ProductID:    item.ProductID,
				Name:         item.Name,
				Image:        item.Image,
				Price:        item.Price,
				Quantity:     item.Quantity,
				CountInStock: item.CountInStock,
				Category:     item.Category,
			})
			lines = append(lines, service.PriceLine{UnitPrice: item.Price, Quantity: item.Quantity})
		}
	}
	view.Prices = pricing.Calculate(lines)
	return view
}

// CreateGuestSession 签发游客令牌
func (h *Handler) CreateGuestSession(c *gin.Context) {
	token := h.GuestCartService.IssueToken()
	response.Success(c, gin.H{
		"guest_token": token,
		"cart":        buildGuestCartView(nil, h.Pricing),
	})
}

// GetGuestCart 获取游客购物车
func (h *Handler) GetGuestCart(c *gin.Context) {
	cart, err := h.GuestCartService.Get(c.Request.Context(), getGuestToken(c))
	if err != nil {
		respondGuestCartError(c, err, "error.cart_fetch_failed")
		return
	}
	response.Success(c, buildGuestCartView(cart, h.Pricing))
}

// AddGuestCartItem 添加或覆盖游客购物车项
func (h *Handler) AddGuestCartItem(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	cart, err := h.GuestCartService.UpsertItem(c.Request.Context(), getGuestToken(c), service.CartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondGuestCartError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, buildGuestCartView(cart, h.Pricing))
}

// RemoveGuestCartItem 删除游客购物车项
func (h *Handler) RemoveGuestCartItem(c *gin.Context) {
	productID, ok := parseUintParam(c, "productId", "error.cart_item_invalid")
	if !ok {
		return
	}
	cart, err := h.GuestCartService.RemoveItem(c.Request.Context(), getGuestToken(c), productID)
	if err != nil {
		respondGuestCartError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, buildGuestCartView(cart, h.Pricing))
}

// ClearGuestCart 清空游客购物车
func (h *Handler) ClearGuestCart(c *gin.Context) {
	cart, err := h.GuestCartService.Clear(c.Request.Context(), getGuestToken(c))
	if err != nil {
		respondGuestCartError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, buildGuestCartView(cart, h.Pricing))
}
