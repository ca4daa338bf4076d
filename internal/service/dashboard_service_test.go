package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nareshwadi/market/market-backend/internal/domain"
	"github.com/nareshwadi/market/market-backend/internal/testutil"
	"github.com/nareshwadi/market/market-backend/internal/util"
)

func seedOrder(repo *testutil.MockOrderRepository, total int64, status domain.OrderStatus, age time.Duration) {
	o := &domain.Order{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Total:     decimal.NewFromInt(total),
		Status:    status,
		CreatedAt: time.Now().Add(-age),
	}
	repo.Orders[o.ID] = o
}

func TestDashboardService_GetStats(t *testing.T) {
	orderRepo := testutil.NewMockOrderRepository()
	productRepo := testutil.NewMockProductRepository()

	seedOrder(orderRepo, 500, domain.OrderStatusPending, time.Hour)
	seedOrder(orderRepo, 300, domain.OrderStatusDelivered, 2*time.Hour)
	seedOrder(orderRepo, 200, domain.OrderStatusShipped, 3*time.Hour)

	owner := uuid.New()
	seedProduct(productRepo, "p1", "Fruits", &owner)
	low := seedProduct(productRepo, "p2", "Grains", &owner)
	low.StockQuantity = 3 // at or below min level of 10

	svc := NewDashboardService(orderRepo, productRepo)

	stats, err := svc.GetStats(context.Background(), util.RangeAll)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if stats.TotalOrders != 3 {
		t.Errorf("expected 3 orders, got %d", stats.TotalOrders)
	}
	if !stats.TotalRevenue.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected revenue 1000, got %s", stats.TotalRevenue)
	}
	if stats.PendingOrders != 1 {
		t.Errorf("expected 1 pending order, got %d", stats.PendingOrders)
	}
	if stats.DeliveredOrders != 1 {
		t.Errorf("expected 1 delivered order, got %d", stats.DeliveredOrders)
	}
	if stats.TotalProducts != 2 {
		t.Errorf("expected 2 products, got %d", stats.TotalProducts)
	}
	if stats.LowStockItems != 1 {
		t.Errorf("expected 1 low-stock product, got %d", stats.LowStockItems)
	}
}

func TestDashboardService_GetStats_TimeRangeFilters(t *testing.T) {
	orderRepo := testutil.NewMockOrderRepository()
	productRepo := testutil.NewMockProductRepository()

	seedOrder(orderRepo, 500, domain.OrderStatusPending, time.Hour)
	seedOrder(orderRepo, 300, domain.OrderStatusPending, 48*time.Hour) // outside 24h

	svc := NewDashboardService(orderRepo, productRepo)

	stats, err := svc.GetStats(context.Background(), util.Range24Hours)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.TotalOrders != 1 {
		t.Errorf("expected 1 order in the last 24h, got %d", stats.TotalOrders)
	}
	if !stats.TotalRevenue.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected revenue 500, got %s", stats.TotalRevenue)
	}
}

func TestDashboardService_GetStats_InvalidRange(t *testing.T) {
	svc := NewDashboardService(testutil.NewMockOrderRepository(), testutil.NewMockProductRepository())

	if _, err := svc.GetStats(context.Background(), "fortnight"); err == nil {
		t.Error("expected an error for an unknown time range")
	}
}
