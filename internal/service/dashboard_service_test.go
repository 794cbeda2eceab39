package service

import (
	"context"
	"testing"
	"time"

	"github.com/furniro/storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDashboardRepo struct {
	totals     repository.DashboardTotalsRow
	trends     []repository.DashboardOrderTrendRow
	categories []repository.DashboardCategoryRow
	trendFrom  time.Time
	trendTo    time.Time
}

func (s *stubDashboardRepo) GetTotals() (repository.DashboardTotalsRow, error) {
	return s.totals, nil
}

func (s *stubDashboardRepo) GetOrderTrends(startAt, endAt time.Time) ([]repository.DashboardOrderTrendRow, error) {
	s.trendFrom, s.trendTo = startAt, endAt
	return s.trends, nil
}

func (s *stubDashboardRepo) GetTopCategories(limit int) ([]repository.DashboardCategoryRow, error) {
	return s.categories, nil
}

func TestDashboardServiceOverviewFillsEmptyDays(t *testing.T) {
	repo := &stubDashboardRepo{
		totals: repository.DashboardTotalsRow{Products: 8, Orders: 3, Users: 5, Revenue: 445.1, PaidOrders: 2, DeliveredOrders: 1},
		trends: []repository.DashboardOrderTrendRow{
			{Day: "2026-10-19", Orders: 2, Revenue: 322.5},
			{Day: "2026-10-10", Orders: 1, Revenue: 122.6},
		},
		categories: []repository.DashboardCategoryRow{{Category: "living", Total: 5}, {Category: "", Total: 3}},
	}
	svc := NewDashboardService(repo)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC) }

	overview, err := svc.GetOverview(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, "445.10", overview.Revenue.String())
	assert.Equal(t, DashboardOrderHealth{Paid: 2, Unpaid: 1, Delivered: 1, NotDelivered: 2}, overview.OrderHealth)
	require.Len(t, overview.OrdersSeries, 14)
	require.Len(t, overview.RevenueSeries, 14)
	assert.Equal(t, "2026-10-06", overview.OrdersSeries[0].Label)
	assert.Equal(t, "2026-10-19", overview.OrdersSeries[13].Label)
	assert.EqualValues(t, 2, overview.OrdersSeries[13].Value)
	assert.EqualValues(t, 1, overview.OrdersSeries[4].Value)
	assert.Equal(t, "122.60", overview.RevenueSeries[4].Value.String())
	assert.Equal(t, "0.00", overview.RevenueSeries[0].Value.String())
	assert.Equal(t, []DashboardSeriesPoint{{Label: "living", Value: 5}, {Label: "Uncategorized", Value: 3}}, overview.TopCategories)

	assert.Equal(t, time.Date(2026, 10, 6, 0, 0, 0, 0, time.UTC), repo.trendFrom)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), repo.trendTo)
}
