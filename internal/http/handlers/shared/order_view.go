package shared

import (
	"time"

	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/service"
)

// OrderItemView 订单项响应
type OrderItemView struct {
	ProductID uint         `json:"productId"`
	Name      string       `json:"name"`
	Image     string       `json:"image"`
	Category  string       `json:"category"`
	Price     models.Money `json:"price"`
	Quantity  int          `json:"qty"`
}

// OrderView 订单响应
type OrderView struct {
	ID              uint                   `json:"id"`
	OrderNo         string                 `json:"orderNo"`
	UserID          uint                   `json:"user"`
	Status          string                 `json:"status"`
	OrderItems      []OrderItemView        `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	ItemsPrice      models.Money           `json:"itemsPrice"`
	ShippingPrice   models.Money           `json:"shippingPrice"`
	TaxPrice        models.Money           `json:"taxPrice"`
	TotalPrice      models.Money           `json:"totalPrice"`
	IsPaid          bool                   `json:"isPaid"`
	PaidAt          *time.Time             `json:"paidAt"`
	IsDelivered     bool                   `json:"isDelivered"`
	DeliveredAt     *time.Time             `json:"deliveredAt"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// BuildOrderView 构建订单响应。
func BuildOrderView(order *models.Order) OrderView {
	items := make([]OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemView{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Category:  item.Category,
			Price:     item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return OrderView{
		ID:              order.ID,
		OrderNo:         order.OrderNo,
		UserID:          order.UserID,
		Status:          service.OrderStatusOf(order),
		OrderItems:      items,
		ShippingAddress: order.ShippingAddress(),
		PaymentMethod:   order.PaymentMethod,
		ItemsPrice:      order.ItemsPrice,
		ShippingPrice:   order.ShippingPrice,
		TaxPrice:        order.TaxPrice,
		TotalPrice:      order.TotalPrice,
		IsPaid:          order.IsPaid,
		PaidAt:          order.PaidAt,
		IsDelivered:     order.IsDelivered,
		DeliveredAt:     order.DeliveredAt,
		CreatedAt:       order.CreatedAt,
	}
}

// BuildOrderViews 批量构建订单响应
func BuildOrderViews(orders []models.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, BuildOrderView(&orders[i]))
	}
	return views
}
