package services

import (
	"context"
	"time"

	"github.com/chanceofrain/spotifam/internal/models"
)

// DashboardStats is the headline block of the console dashboard.
type DashboardStats struct {
	TotalUsers      int
	ActiveUsers7d   int
	OrdersByStatus  map[models.OrderStatus]int
	TotalOrders     int
	TotalRevenueRub int
	MonthOrders     int
	MonthRevenueRub int
}

// DayPoint is one day of the orders chart.
type DayPoint struct {
	Date       string `json:"date"`
	Orders     int    `json:"orders"`
	RevenueRub int    `json:"revenue_rub"`
}

// StatsService aggregates console dashboard numbers.
type StatsService struct {
	orders OrderStore
	users  UserStore
	now    func() time.Time
}

func NewStatsService(orders OrderStore, users UserStore) *StatsService {
	return &StatsService{orders: orders, users: users, now: time.Now}
}

// Dashboard collects the headline counters.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.users.CountActiveSince(ctx, s.now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	byStatus, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orders.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthOrders, monthRevenue, err := s.orders.DayStats(ctx, monthStart, now)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range byStatus {
		total += n
	}
	return &DashboardStats{
		TotalUsers:      totalUsers,
		ActiveUsers7d:   active,
		OrdersByStatus:  byStatus,
		TotalOrders:     total,
		TotalRevenueRub: revenue,
		MonthOrders:     monthOrders,
		MonthRevenueRub: monthRevenue,
	}, nil
}

// DailySeries returns per-day order and revenue points for the last `days`
// days, oldest first, with zero-filled gaps.
func (s *StatsService) DailySeries(ctx context.Context, days int) ([]DayPoint, error) {
	if days <= 0 {
		days = 30
	}
	// Day boundaries follow the clock's location, matching the month window
	// on the dashboard.
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	points := make([]DayPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		from := today.AddDate(0, 0, -i)
		to := from.AddDate(0, 0, 1)
		orders, revenue, err := s.orders.DayStats(ctx, from, to)
		if err != nil {
			return nil, err
		}
		points = append(points, DayPoint{
			Date:       from.Format("2006-01-02"),
			Orders:     orders,
			RevenueRub: revenue,
		})
	}
	return points, nil
}
