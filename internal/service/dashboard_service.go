package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/furniro/storefront/internal/cache"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	dashboardCacheTTL       = 45 * time.Second
	dashboardTrendDays      = 14
	dashboardTopCategories  = 6
	dashboardUncategorized  = "Uncategorized"
	dashboardTrendDayLayout = "2006-01-02"
)

// DashboardService 仪表盘服务
// 说明：聚合后台首页的商品、订单、用户概况。
type DashboardService struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo, now: time.Now}
}

// DashboardOverview 仪表盘总览
type DashboardOverview struct {
	Products      int64                  `json:"products"`
	Orders        int64                  `json:"orders"`
	Users         int64                  `json:"users"`
	Revenue       models.Money           `json:"revenue"`
	OrdersSeries  []DashboardSeriesPoint `json:"ordersSeries"`
	RevenueSeries []DashboardMoneyPoint  `json:"revenueSeries"`
	OrderHealth   DashboardOrderHealth   `json:"orderHealth"`
	TopCategories []DashboardSeriesPoint `json:"topCategories"`
}

// DashboardSeriesPoint 计数序列点
type DashboardSeriesPoint struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// DashboardMoneyPoint 金额序列点
type DashboardMoneyPoint struct {
	Label string       `json:"label"`
	Value models.Money `json:"value"`
}

// DashboardOrderHealth 订单支付/发货分布
type DashboardOrderHealth struct {
	Paid         int64 `json:"paid"`
	Unpaid       int64 `json:"unpaid"`
	Delivered    int64 `json:"delivered"`
	NotDelivered int64 `json:"notDelivered"`
}

// GetOverview 获取仪表盘总览，近 14 天按 UTC 自然日补零
func (s *DashboardService) GetOverview(ctx context.Context, forceRefresh bool) (*DashboardOverview, error) {
	if s == nil || s.repo == nil {
		return &DashboardOverview{}, nil
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	startAt := today.AddDate(0, 0, -(dashboardTrendDays - 1))
	endAt := today.AddDate(0, 0, 1)

	cacheKey := fmt.Sprintf("dashboard:overview:%d", startAt.Unix())
	if !forceRefresh {
		var cached DashboardOverview
		if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	totals, err := s.repo.GetTotals()
	if err != nil {
		return nil, err
	}
	trends, err := s.repo.GetOrderTrends(startAt, endAt)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.GetTopCategories(dashboardTopCategories)
	if err != nil {
		return nil, err
	}

	trendMap := make(map[string]repository.DashboardOrderTrendRow, len(trends))
	for _, row := range trends {
		trendMap[strings.TrimSpace(row.Day)] = row
	}

	overview := &DashboardOverview{
		Products: totals.Products,
		Orders:   totals.Orders,
		Users:    totals.Users,
		Revenue:  floatToMoney(totals.Revenue),
		OrderHealth: DashboardOrderHealth{
			Paid:         totals.PaidOrders,
			Unpaid:       totals.Orders - totals.PaidOrders,
			Delivered:    totals.DeliveredOrders,
			NotDelivered: totals.Orders - totals.DeliveredOrders,
		},
		OrdersSeries:  make([]DashboardSeriesPoint, 0, dashboardTrendDays),
		RevenueSeries: make([]DashboardMoneyPoint, 0, dashboardTrendDays),
		TopCategories: make([]DashboardSeriesPoint, 0, len(categories)),
	}
	for day := startAt; day.Before(endAt); day = day.AddDate(0, 0, 1) {
		label := day.Format(dashboardTrendDayLayout)
		row := trendMap[label]
		overview.OrdersSeries = append(overview.OrdersSeries, DashboardSeriesPoint{Label: label, Value: row.Orders})
		overview.RevenueSeries = append(overview.RevenueSeries, DashboardMoneyPoint{Label: label, Value: floatToMoney(row.Revenue)})
	}
	for _, row := range categories {
		label := strings.TrimSpace(row.Category)
		if label == "" {
			label = dashboardUncategorized
		}
		overview.TopCategories = append(overview.TopCategories, DashboardSeriesPoint{Label: label, Value: row.Total})
	}

	_ = cache.SetJSON(ctx, cacheKey, overview, dashboardCacheTTL)
	return overview, nil
}

func floatToMoney(value float64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromFloat(value))
}
