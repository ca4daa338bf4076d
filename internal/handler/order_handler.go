package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/nareshwadi/market/market-backend/internal/domain"
	"github.com/nareshwadi/market/market-backend/internal/middleware"
	"github.com/nareshwadi/market/market-backend/internal/service"
	"github.com/nareshwadi/market/market-backend/internal/websocket"
)

// OrderHandler handles checkout and order HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	publisher    websocket.EventPublisher
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *service.OrderService, publisher websocket.EventPublisher) *OrderHandler {
	return &OrderHandler{orderService: orderService, publisher: publisher}
}

// PlaceOrderRequest is the checkout form payload
type PlaceOrderRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone"`
}

// OrderItemResponse represents one frozen order line in API responses
type OrderItemResponse struct {
	LineID      string  `json:"lineId"`
	Name        string  `json:"name"`
	Price       string  `json:"price"`
	Quantity    int     `json:"quantity"`
	VariantName *string `json:"variantName,omitempty"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID        string              `json:"id"`
	Total     string              `json:"total"`
	Status    string              `json:"status"`
	Name      string              `json:"name"`
	Address   string              `json:"address"`
	City      string              `json:"city"`
	Pincode   string              `json:"pincode"`
	Phone     string              `json:"phone"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"createdAt"`
}

func toOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			LineID:      item.LineID,
			Name:        item.Name,
			Price:       item.Price.StringFixed(2),
			Quantity:    item.Quantity,
			VariantName: item.VariantName,
		})
	}
	return OrderResponse{
		ID:        o.ID.String(),
		Total:     o.Total.StringFixed(2),
		Status:    string(o.Status),
		Name:      o.Shipping.Name,
		Address:   o.Shipping.Address,
		City:      o.Shipping.City,
		Pincode:   o.Shipping.Pincode,
		Phone:     o.Shipping.Phone,
		Items:     items,
		CreatedAt: o.CreatedAt,
	}
}

// PlaceOrder handles POST /api/v1/orders
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	order, err := h.orderService.PlaceOrder(c.Request().Context(), userID, service.PlaceOrderInput{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Pincode: req.Pincode,
		Phone:   req.Phone,
	})
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return NewValidationError(c, "All shipping fields are required", nil)
		case domain.ErrCartEmpty:
			return NewConflictError(c, "Cart is empty")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to place order")
		return NewInternalError(c, "Failed to place order")
	}

	resp := toOrderResponse(order)
	h.publisher.Publish(userID, websocket.OrderCreated(resp))
	// The checkout cleared the cart remotely; tell live clients
	h.publisher.Publish(userID, websocket.CartCleared(CartResponse{Items: []CartItemResponse{}, Subtotal: "0.00"}))

	return c.JSON(http.StatusCreated, resp)
}

// ListOrders handles GET /api/v1/orders
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID := middleware.GetUserID(c)

	orders, err := h.orderService.ListOrders(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list orders")
		return NewInternalError(c, "Failed to list orders")
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return c.JSON(http.StatusOK, out)
}

// GetOrder handles GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID := middleware.GetUserID(c)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid order id", []ValidationError{{Field: "id", Message: "Must be a UUID"}})
	}

	order, err := h.orderService.GetOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		if err == domain.ErrOrderNotFound {
			return NewNotFoundError(c, "Order not found")
		}
		log.Error().Err(err).Str("order_id", orderID.String()).Msg("Failed to get order")
		return NewInternalError(c, "Failed to get order")
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// GetSellerOrder handles GET /api/v1/seller/orders/:id
// Unlike GetOrder it is not restricted to the buyer.
func (h *OrderHandler) GetSellerOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid order id", []ValidationError{{Field: "id", Message: "Must be a UUID"}})
	}

	order, err := h.orderService.GetOrderAny(c.Request().Context(), orderID)
	if err != nil {
		if err == domain.ErrOrderNotFound {
			return NewNotFoundError(c, "Order not found")
		}
		log.Error().Err(err).Str("order_id", orderID.String()).Msg("Failed to get order")
		return NewInternalError(c, "Failed to get order")
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// UpdateStatusRequest is the body of an order status change
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/v1/seller/orders/:id/status
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid order id", []ValidationError{{Field: "id", Message: "Must be a UUID"}})
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	err = h.orderService.UpdateStatus(c.Request().Context(), orderID, domain.OrderStatus(req.Status))
	if err != nil {
		switch err {
		case domain.ErrInvalidStatus:
			return NewValidationError(c, "Unknown order status", []ValidationError{{Field: "status", Message: "Must be one of pending, confirmed, shipped, delivered, cancelled"}})
		case domain.ErrOrderNotFound:
			return NewNotFoundError(c, "Order not found")
		}
		log.Error().Err(err).Str("order_id", orderID.String()).Msg("Failed to update order status")
		return NewInternalError(c, "Failed to update order status")
	}

	order, err := h.orderService.GetOrderAny(c.Request().Context(), orderID)
	if err == nil {
		h.publisher.Publish(order.UserID, websocket.OrderUpdated(toOrderResponse(order)))
		return c.JSON(http.StatusOK, toOrderResponse(order))
	}
	return c.NoContent(http.StatusNoContent)
}
