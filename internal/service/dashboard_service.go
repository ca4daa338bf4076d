package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nareshwadi/market/market-backend/internal/domain"
	"github.com/nareshwadi/market/market-backend/internal/util"
)

// DashboardService computes the farmer-portal summary: simple sums and filters
// over orders in a time range plus catalog stock counts.
type DashboardService struct {
	orderRepo   domain.OrderRepository
	productRepo domain.ProductRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(orderRepo domain.OrderRepository, productRepo domain.ProductRepository) *DashboardService {
	return &DashboardService{orderRepo: orderRepo, productRepo: productRepo}
}

// GetStats returns aggregate stats for the given time range.
func (s *DashboardService) GetStats(ctx context.Context, timeRange util.TimeRange) (*domain.DashboardStats, error) {
	since, err := util.CutoffFor(timeRange)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}

	stats := &domain.DashboardStats{
		TotalRevenue: decimal.Zero,
		TotalOrders:  len(orders),
	}
	for _, o := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)
		switch o.Status {
		case domain.OrderStatusPending:
			stats.PendingOrders++
		case domain.OrderStatusDelivered:
			stats.DeliveredOrders++
		}
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = len(products)

	lowStock, err := s.productRepo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}
	stats.LowStockItems = lowStock

	return stats, nil
}
