package service

import (
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/repository"
)

// ListByUser 获取用户订单列表
func (s *OrderService) ListByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrUnauthorized
	}
	return s.orderRepo.ListByUser(filter)
}

// ListAdmin 管理端订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetForViewer 获取订单详情，仅订单所有者或管理员可见
func (s *OrderService) GetForViewer(orderID, viewerID uint, isAdmin bool) (*models.Order, error) {
	if viewerID == 0 {
		return nil, ErrUnauthorized
	}
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	var (
		order *models.Order
		err   error
	)
	if isAdmin {
		order, err = s.orderRepo.GetByID(orderID)
	} else {
		order, err = s.orderRepo.GetByIDAndUser(orderID, viewerID)
	}
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
