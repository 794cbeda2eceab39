package public

import (
	"strconv"

	handlershared "github.com/furniro/storefront/internal/http/handlers/shared"
	"github.com/furniro/storefront/internal/http/response"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/repository"
	"github.com/furniro/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 下单请求
// orderItems 与各项金额由前端回传，仅用于比对，订单以服务端购物车和计价结果为准
type CreateOrderRequest struct {
	OrderItems      []CartItemRequest      `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	ItemsPrice      *models.Money          `json:"itemsPrice"`
	ShippingPrice   *models.Money          `json:"shippingPrice"`
	TaxPrice        *models.Money          `json:"taxPrice"`
	TotalPrice      *models.Money          `json:"totalPrice"`
}

func (r CreateOrderRequest) clientPrices() *service.PriceBreakdown {
	if r.ItemsPrice == nil || r.ShippingPrice == nil || r.TaxPrice == nil || r.TotalPrice == nil {
		return nil
	}
	return &service.PriceBreakdown{
		ItemsPrice:    *r.ItemsPrice,
		ShippingPrice: *r.ShippingPrice,
		TaxPrice:      *r.TaxPrice,
		TotalPrice:    *r.TotalPrice,
	}
}

// CreateOrder 提交订单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.Submit(c.Request.Context(), service.SubmitOrderInput{
		UserID:          uid,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ClientPrices:    req.clientPrices(),
	})
	if err != nil {
		respondOrderSubmitError(c, err)
		return
	}
	response.Success(c, handlershared.BuildOrderView(order))
}

// GetMyOrders 当前用户订单列表
func (h *Handler) GetMyOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
	})
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}
	response.SuccessWithPage(c, handlershared.BuildOrderViews(orders), buildPagination(page, pageSize, total))
}

// GetOrder 订单详情，仅订单所有者或管理员可见
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseUintParam(c, "id", "error.order_not_found")
	if !ok {
		return
	}
	order, err := h.OrderService.GetForViewer(orderID, uid, isAdminViewer(c))
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}
	response.Success(c, handlershared.BuildOrderView(order))
}
