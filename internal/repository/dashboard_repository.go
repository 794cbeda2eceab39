package repository

import (
	"fmt"
	"time"

	"github.com/furniro/storefront/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetTotals() (DashboardTotalsRow, error)
	GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error)
	GetTopCategories(limit int) ([]DashboardCategoryRow, error)
}

// DashboardTotalsRow 仪表盘总量统计
type DashboardTotalsRow struct {
	Products        int64
	Orders          int64
	Users           int64
	Revenue         float64
	PaidOrders      int64
	DeliveredOrders int64
}

// DashboardOrderTrendRow 订单趋势统计
type DashboardOrderTrendRow struct {
	Day     string
	Orders  int64
	Revenue float64
}

// DashboardCategoryRow 分类商品数
type DashboardCategoryRow struct {
	Category string
	Total    int64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetTotals 获取总量统计
func (r *GormDashboardRepository) GetTotals() (DashboardTotalsRow, error) {
	result := DashboardTotalsRow{}

	if err := r.db.Model(&models.Product{}).Count(&result.Products).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.User{}).Count(&result.Users).Error; err != nil {
		return result, err
	}

	orderBase := func() *gorm.DB {
		return r.db.Model(&models.Order{})
	}
	if err := orderBase().Count(&result.Orders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("is_paid = ?", true).Count(&result.PaidOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("is_delivered = ?", true).Count(&result.DeliveredOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Select("COALESCE(SUM(total_price), 0)").Scan(&result.Revenue).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetOrderTrends 按天统计订单数与金额
func (r *GormDashboardRepository) GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error) {
	rows := make([]DashboardOrderTrendRow, 0)
	dayExpr := "CAST(date(created_at) AS TEXT)"
	if err := r.db.Model(&models.Order{}).
		Select(fmt.Sprintf("%s as day, COUNT(*) as orders, COALESCE(SUM(total_price), 0) as revenue", dayExpr)).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Group(dayExpr).
		Order("day asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTopCategories 获取商品数最多的分类
func (r *GormDashboardRepository) GetTopCategories(limit int) ([]DashboardCategoryRow, error) {
	if limit <= 0 {
		limit = 6
	}
	rows := make([]DashboardCategoryRow, 0)
	if err := r.db.Model(&models.Product{}).
		Select("category, COUNT(*) as total").
		Group("category").
		Order("total DESC, category ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
