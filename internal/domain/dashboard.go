package domain

import "github.com/shopspring/decimal"

// DashboardStats is the farmer-portal summary: sums and counts over orders and
// the product catalog for a chosen time range.
type DashboardStats struct {
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalOrders     int             `json:"totalOrders"`
	PendingOrders   int             `json:"pendingOrders"`
	DeliveredOrders int             `json:"deliveredOrders"`
	TotalProducts   int             `json:"totalProducts"`
	LowStockItems   int             `json:"lowStockItems"`
}
