package service

import (
	"time"

	"github.com/furniro/storefront/internal/constants"
	"github.com/furniro/storefront/internal/logger"
	"github.com/furniro/storefront/internal/models"
)

// OrderStatusOf 由支付/发货标记推导展示状态
func OrderStatusOf(order *models.Order) string {
	switch {
	case order == nil:
		return ""
	case order.IsDelivered:
		return constants.OrderStatusDelivered
	case order.IsPaid:
		return constants.OrderStatusPaid
	default:
		return constants.OrderStatusPendingPayment
	}
}

// MarkPaid 管理员标记订单已支付（未支付 -> 已支付）
func (s *OrderService) MarkPaid(orderID uint) (*models.Order, error) {
	order, err := s.loadForTransition(orderID)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, ErrOrderStatusInvalid
	}
	affected, err := s.orderRepo.MarkPaid(orderID, time.Now())
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderStatusInvalid
	}
	logger.Infow("order_marked_paid", "order_id", orderID, "order_no", order.OrderNo)
	return s.loadForTransition(orderID)
}

// MarkDelivered 管理员标记订单已发货（已支付 -> 已发货）
func (s *OrderService) MarkDelivered(orderID uint) (*models.Order, error) {
	order, err := s.loadForTransition(orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsPaid || order.IsDelivered {
		return nil, ErrOrderStatusInvalid
	}
	affected, err := s.orderRepo.MarkDelivered(orderID, time.Now())
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderStatusInvalid
	}
	logger.Infow("order_marked_delivered", "order_id", orderID, "order_no", order.OrderNo)
	return s.loadForTransition(orderID)
}

func (s *OrderService) loadForTransition(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
