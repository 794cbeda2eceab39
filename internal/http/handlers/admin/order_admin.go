package admin

import (
	"strings"

	"github.com/furniro/storefront/internal/http/handlers/shared"
	"github.com/furniro/storefront/internal/http/response"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/repository"
	"github.com/furniro/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminListOrders 管理端订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	isPaid, err := parseBoolQuery(c, "is_paid")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	isDelivered, err := parseBoolQuery(c, "is_delivered")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	orders, total, err := h.OrderService.ListAdmin(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		OrderNo:     strings.TrimSpace(c.Query("order_no")),
		IsPaid:      isPaid,
		IsDelivered: isDelivered,
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, shared.BuildOrderViews(orders), shared.BuildPagination(page, pageSize, total))
}

// AdminGetOrder 管理端订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	operatorID, ok := getOperatorID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "error.order_not_found")
	if !ok {
		return
	}
	order, err := h.OrderService.GetForViewer(orderID, operatorID, true)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, "error.order_fetch_failed")
		return
	}
	response.Success(c, shared.BuildOrderView(order))
}

// AdminMarkOrderPaid 标记订单已支付
func (h *Handler) AdminMarkOrderPaid(c *gin.Context) {
	orderID, ok := parseIDParam(c, "error.order_not_found")
	if !ok {
		return
	}
	order, err := h.OrderService.MarkPaid(orderID)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, "error.order_update_failed")
		return
	}
	h.recordAudit(c, "order_mark_paid", service.AuditTargetOrder, order.ID, models.JSON{"order_no": order.OrderNo})
	response.Success(c, shared.BuildOrderView(order))
}

// AdminMarkOrderDelivered 标记订单已发货
func (h *Handler) AdminMarkOrderDelivered(c *gin.Context) {
	orderID, ok := parseIDParam(c, "error.order_not_found")
	if !ok {
		return
	}
	order, err := h.OrderService.MarkDelivered(orderID)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, "error.order_update_failed")
		return
	}
	h.recordAudit(c, "order_mark_delivered", service.AuditTargetOrder, order.ID, models.JSON{"order_no": order.OrderNo})
	response.Success(c, shared.BuildOrderView(order))
}
