package public

import (
	"errors"

	"github.com/furniro/storefront/internal/http/response"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 加购请求
// name/image/price 由前端回传，仅做兼容，服务端以商品当前信息为准
type CartItemRequest struct {
	ProductID uint         `json:"productId" binding:"required"`
	Name      string       `json:"name"`
	Image     string       `json:"image"`
	Price     models.Money `json:"price"`
	Quantity  int          `json:"qty" binding:"required"`
}

// CartItemView 购物车项响应
type CartItemView struct {
	ProductID    uint         `json:"productId"`
	Name         string       `json:"name"`
	Image        string       `json:"image"`
	Price        models.Money `json:"price"`
	Quantity     int          `json:"qty"`
	CountInStock int          `json:"countInStock"`
	Category     string       `json:"category"`
}

// CartView 购物车响应（附带按当前规则计算的金额预览）
type CartView struct {
	CartItems []CartItemView         `json:"cartItems"`
	Prices    service.PriceBreakdown `json:"prices"`
}

func buildCartView(cart *models.Cart, pricing *service.PricingCalculator) CartView {
	if pricing == nil {
		pricing = service.NewDefaultPricingCalculator()
	}
	view := CartView{CartItems: []CartItemView{}}
	if cart == nil {
		view.Prices = pricing.CalculateCart(nil)
		return view
	}
	for _, item := range cart.Items {
		view.CartItems = append(view.CartItems, CartItemView{
			ProductID:    item.ProductID,
			Name:         item.Name,
			Image:        item.Image,
			Price:        item.Price,
			Quantity:     item.Quantity,
			CountInStock: item.CountInStock,
			Category:     item.Category,
		})
	}
	view.Prices = pricing.CalculateCart(cart.Items)
	return view
}

// GetCart 获取服务端购物车
// 请求仍携带游客令牌时先重试合并游客购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	if guestToken := getGuestToken(c); guestToken != "" && h.CartReconciler != nil {
		result, err := h.CartReconciler.HandleTransition(c.Request.Context(), service.AuthTransition{
			UserID:     uid,
			GuestToken: guestToken,
		})
		switch {
		case err == nil:
			response.Success(c, buildCartView(result.Cart, h.Pricing))
			return
		case errors.Is(err, service.ErrGuestTokenRequired):
			requestLog(c).Debugw("cart_guest_token_ignored", "user_id", uid)
		default:
			requestLog(c).Warnw("cart_merge_deferred", "user_id", uid, "error", err)
		}
	}

	cart, err := h.CartService.Get(c.Request.Context(), uid)
	if err != nil {
		respondCartError(c, err, "error.cart_fetch_failed")
		return
	}
	response.Success(c, buildCartView(cart, h.Pricing))
}

// AddCartItem 添加或覆盖购物车项
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	cart, err := h.CartService.UpsertItem(c.Request.Context(), uid, service.CartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondCartError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, buildCartView(cart, h.Pricing))
}

// RemoveCartItem 删除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "productId", "error.cart_item_invalid")
	if !ok {
		return
	}
	cart, err := h.CartService.RemoveItem(c.Request.Context(), uid, productID)
	if err != nil {
		respondCartError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, buildCartView(cart, h.Pricing))
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.Clear(c.Request.Context(), uid)
	if err != nil {
		respondCartError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, buildCartView(cart, h.Pricing))
}

// MergeGuestCart 主动合并游客购物车（登录时合并失败后客户端可重试）
func (h *Handler) MergeGuestCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	guestToken := getGuestToken(c)
	if guestToken == "" {
		respondError(c, response.CodeBadRequest, "error.guest_token_required", nil)
		return
	}
	if h.CartReconciler == nil {
		respondError(c, response.CodeUnavailable, "error.cart_merge_pending", nil)
		return
	}
	result, err := h.CartReconciler.HandleTransition(c.Request.Context(), service.AuthTransition{
		UserID:     uid,
		GuestToken: guestToken,
	})
	if err != nil {
		respondWithMappedError(c, err, cartMergeErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, gin.H{
		"merged":  result.Merged,
		"clamped": result.Clamped,
		"skipped": result.Skipped,
		"cart":    buildCartView(result.Cart, h.Pricing),
	})
}
