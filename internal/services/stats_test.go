package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/chanceofrain/spotifam/internal/models"
)

func TestDashboardTotals(t *testing.T) {
	ctx := context.Background()
	orders := new(OrderStoreMock)
	users := new(UserStoreMock)

	users.On("Count", ctx).Return(120, nil)
	users.On("CountActiveSince", ctx, mock.AnythingOfType("time.Time")).Return(34, nil)
	orders.On("CountByStatus", ctx).Return(map[models.OrderStatus]int{
		models.OrderCompleted:       15,
		models.OrderAwaitingPayment: 4,
		models.OrderCancelled:       1,
	}, nil)
	orders.On("TotalRevenue", ctx).Return(5550, nil)
	orders.On("DayStats", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(6, 1110, nil)

	svc := NewStatsService(orders, users)
	stats, err := svc.Dashboard(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 120, stats.TotalUsers)
	assert.Equal(t, 34, stats.ActiveUsers7d)
	assert.Equal(t, 20, stats.TotalOrders)
	assert.Equal(t, 5550, stats.TotalRevenueRub)
	assert.Equal(t, 6, stats.MonthOrders)
	assert.Equal(t, 1110, stats.MonthRevenueRub)
}

func TestDashboardMonthWindowStartsOnFirst(t *testing.T) {
	ctx := context.Background()
	orders := new(OrderStoreMock)
	users := new(UserStoreMock)

	fixed := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	users.On("Count", ctx).Return(0, nil)
	users.On("CountActiveSince", ctx, mock.AnythingOfType("time.Time")).Return(0, nil)
	orders.On("CountByStatus", ctx).Return(map[models.OrderStatus]int{}, nil)
	orders.On("TotalRevenue", ctx).Return(0, nil)
	orders.On("DayStats", ctx, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), fixed).
		Return(3, 450, nil)

	svc := NewStatsService(orders, users)
	svc.now = func() time.Time { return fixed }
	stats, err := svc.Dashboard(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 3, stats.MonthOrders)
	orders.AssertExpectations(t)
}

func TestDailySeriesShapeAndOrder(t *testing.T) {
	ctx := context.Background()
	orders := new(OrderStoreMock)
	users := new(UserStoreMock)

	fixed := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	svc := NewStatsService(orders, users)
	svc.now = func() time.Time { return fixed }

	orders.On("DayStats", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(2, 300, nil)

	points, err := svc.DailySeries(ctx, 7)
	assert.NoError(t, err)
	assert.Len(t, points, 7)

	// oldest first, ending today
	assert.Equal(t, "2024-06-09", points[0].Date)
	assert.Equal(t, "2024-06-15", points[6].Date)
	for i := 1; i < len(points); i++ {
		assert.Less(t, points[i-1].Date, points[i].Date)
	}
	for _, p := range points {
		assert.Equal(t, 2, p.Orders)
		assert.Equal(t, 300, p.RevenueRub)
	}
	orders.AssertNumberOfCalls(t, "DayStats", 7)
}

func TestDailySeriesUsesLocalDayBoundaries(t *testing.T) {
	ctx := context.Background()
	orders := new(OrderStoreMock)
	orders.On("DayStats", ctx, mock.Anything, mock.Anything).Return(0, 0, nil)

	// shortly after local midnight; the last bucket must still be the
	// local date, same convention as the dashboard month window
	zone := time.FixedZone("UTC+5", 5*3600)
	svc := NewStatsService(orders, new(UserStoreMock))
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 1, 0, 0, 0, zone) }

	points, err := svc.DailySeries(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, "2024-06-15", points[len(points)-1].Date)
}

func TestDailySeriesDefaultsTo30Days(t *testing.T) {
	ctx := context.Background()
	orders := new(OrderStoreMock)
	orders.On("DayStats", ctx, mock.Anything, mock.Anything).Return(0, 0, nil)

	svc := NewStatsService(orders, new(UserStoreMock))
	points, err := svc.DailySeries(ctx, 0)
	assert.NoError(t, err)
	assert.Len(t, points, 30)
}
