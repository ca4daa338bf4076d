package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/nareshwadi/market/market-backend/internal/domain"
	"github.com/nareshwadi/market/market-backend/internal/identity"
	"github.com/nareshwadi/market/market-backend/internal/middleware"
	"github.com/nareshwadi/market/market-backend/internal/store"
)

// CartHandler handles cart HTTP requests. Every request operates through the
// user's collection state container, so mutations made here are published to
// any live WebSocket subscribers of the same user.
type CartHandler struct {
	registry *store.Registry
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(registry *store.Registry) *CartHandler {
	return &CartHandler{registry: registry}
}

// VariantPayload carries a selected product variant over the wire
type VariantPayload struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ItemSnapshotRequest is the product data captured when adding to a collection
type ItemSnapshotRequest struct {
	ProductID     string          `json:"productId"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	IsOrganic     *bool           `json:"isOrganic"`
	InStock       *bool           `json:"inStock"`
	StockQuantity *int            `json:"stockQuantity"`
	Variant       *VariantPayload `json:"selectedVariant"`
}

func (r *ItemSnapshotRequest) toSnapshot() domain.ItemSnapshot {
	snap := domain.ItemSnapshot{
		ProductID:     r.ProductID,
		Name:          r.Name,
		Price:         r.Price,
		Image:         r.Image,
		Category:      r.Category,
		Description:   r.Description,
		IsOrganic:     r.IsOrganic,
		InStock:       r.InStock,
		StockQuantity: r.StockQuantity,
	}
	if r.Variant != nil {
		snap.Variant = &domain.Variant{Name: r.Variant.Name, Price: r.Variant.Price}
	}
	return snap
}

// CartItemResponse represents one cart line in API responses
type CartItemResponse struct {
	LineID       string          `json:"lineId"`
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	Price        string          `json:"price"`
	Image        string          `json:"image"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	IsOrganic    bool            `json:"isOrganic"`
	InStock      bool            `json:"inStock"`
	Quantity     int             `json:"quantity"`
	Variant      *VariantPayload `json:"selectedVariant,omitempty"`
	VariantLabel string          `json:"variantLabel,omitempty"`
	Subtotal     string          `json:"subtotal"`
}

// CartResponse represents the full cart state in API responses
type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Subtotal string             `json:"subtotal"`
	Count    int                `json:"count"`
}

func toCartItemResponse(item *domain.CartItem) CartItemResponse {
	resp := CartItemResponse{
		LineID:       item.LineID,
		ProductID:    item.ProductID,
		Name:         item.Name,
		Price:        item.Price.StringFixed(2),
		Image:        item.Image,
		Category:     item.Category,
		Description:  item.Description,
		IsOrganic:    item.IsOrganic,
		InStock:      item.InStock,
		Quantity:     item.Quantity,
		VariantLabel: domain.VariantLabel(item.Category, item.Name, item.Variant),
		Subtotal:     item.Subtotal().StringFixed(2),
	}
	if item.Variant != nil {
		resp.Variant = &VariantPayload{Name: item.Variant.Name, Price: item.Variant.Price}
	}
	return resp
}

func toCartResponse(items []*domain.CartItem) CartResponse {
	resp := CartResponse{Items: make([]CartItemResponse, 0, len(items))}
	subtotal := decimal.Zero
	count := 0
	for _, item := range items {
		resp.Items = append(resp.Items, toCartItemResponse(item))
		subtotal = subtotal.Add(item.Subtotal())
		count += item.Quantity
	}
	resp.Subtotal = subtotal.StringFixed(2)
	resp.Count = count
	return resp
}

func (h *CartHandler) acquire(c echo.Context) (*store.Stores, func()) {
	userID := middleware.GetUserID(c)
	p := identity.Principal{ID: userID}
	if claims := middleware.GetCustomClaims(c); claims != nil {
		p.Email = claims.Email
	}
	stores := h.registry.Acquire(p)
	return stores, func() { h.registry.Release(userID) }
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(c echo.Context) error {
	stores, release := h.acquire(c)
	defer release()

	stores.Cart.Reload(c.Request().Context())
	return c.JSON(http.StatusOK, toCartResponse(stores.Cart.State().Items))
}

// AddToCart handles POST /api/v1/cart
func (h *CartHandler) AddToCart(c echo.Context) error {
	var req ItemSnapshotRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.ProductID == "" {
		return NewValidationError(c, "Product id is required", []ValidationError{{Field: "productId", Message: "Required"}})
	}

	stores, release := h.acquire(c)
	defer release()

	if !stores.Cart.AddToCart(c.Request().Context(), req.toSnapshot()) {
		return NewInternalError(c, "Could not add item to cart")
	}
	return c.JSON(http.StatusOK, toCartResponse(stores.Cart.State().Items))
}

// UpdateQuantityRequest is the body of a quantity update
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity handles PUT /api/v1/cart/:lineId
// A quantity at or below zero removes the line instead of storing it.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	lineID := c.Param("lineId")
	if lineID == "" {
		return NewValidationError(c, "Line id is required", nil)
	}

	var req UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", []ValidationError{{Field: "quantity", Message: "Must be an integer"}})
	}

	stores, release := h.acquire(c)
	defer release()

	ctx := c.Request().Context()
	var ok bool
	if req.Quantity <= 0 {
		ok = stores.Cart.RemoveFromCart(ctx, lineID)
	} else {
		ok = stores.Cart.UpdateQuantity(ctx, lineID, req.Quantity)
	}
	if !ok {
		return NewInternalError(c, "Could not update cart")
	}
	return c.JSON(http.StatusOK, toCartResponse(stores.Cart.State().Items))
}

// RemoveFromCart handles DELETE /api/v1/cart/:lineId
func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	lineID := c.Param("lineId")
	if lineID == "" {
		return NewValidationError(c, "Line id is required", nil)
	}

	stores, release := h.acquire(c)
	defer release()

	if !stores.Cart.RemoveFromCart(c.Request().Context(), lineID) {
		return NewInternalError(c, "Could not remove item from cart")
	}
	return c.JSON(http.StatusOK, toCartResponse(stores.Cart.State().Items))
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(c echo.Context) error {
	stores, release := h.acquire(c)
	defer release()

	if !stores.Cart.ClearCart(c.Request().Context()) {
		return NewInternalError(c, "Could not clear cart")
	}
	return c.JSON(http.StatusOK, toCartResponse(stores.Cart.State().Items))
}
