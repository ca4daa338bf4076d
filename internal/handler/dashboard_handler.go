package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/nareshwadi/market/market-backend/internal/domain"
	"github.com/nareshwadi/market/market-backend/internal/service"
	"github.com/nareshwadi/market/market-backend/internal/util"
)

// DashboardHandler handles farmer-portal dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DashboardStatsResponse represents the dashboard summary API response
type DashboardStatsResponse struct {
	TotalRevenue    string `json:"totalRevenue"`
	TotalOrders     int    `json:"totalOrders"`
	PendingOrders   int    `json:"pendingOrders"`
	DeliveredOrders int    `json:"deliveredOrders"`
	TotalProducts   int    `json:"totalProducts"`
	LowStockItems   int    `json:"lowStockItems"`
}

// GetStats handles GET /api/v1/seller/dashboard
// Accepts an optional range query param: 24h, 7days, 30days, 90days, all.
func (h *DashboardHandler) GetStats(c echo.Context) error {
	timeRange := util.TimeRange(c.QueryParam("range"))

	stats, err := h.dashboardService.GetStats(c.Request().Context(), timeRange)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return NewValidationError(c, "Unknown time range", []ValidationError{{Field: "range", Message: "Must be one of 24h, 7days, 30days, 90days, all"}})
		}
		log.Error().Err(err).Str("range", string(timeRange)).Msg("Failed to compute dashboard stats")
		return NewInternalError(c, "Failed to compute dashboard stats")
	}

	return c.JSON(http.StatusOK, DashboardStatsResponse{
		TotalRevenue:    stats.TotalRevenue.StringFixed(2),
		TotalOrders:     stats.TotalOrders,
		PendingOrders:   stats.PendingOrders,
		DeliveredOrders: stats.DeliveredOrders,
		TotalProducts:   stats.TotalProducts,
		LowStockItems:   stats.LowStockItems,
	})
}
