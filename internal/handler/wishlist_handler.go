package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nareshwadi/market/market-backend/internal/domain"
	"github.com/nareshwadi/market/market-backend/internal/identity"
	"github.com/nareshwadi/market/market-backend/internal/middleware"
	"github.com/nareshwadi/market/market-backend/internal/store"
)

// WishlistHandler handles wishlist HTTP requests through the user's collection
// state container.
type WishlistHandler struct {
	registry *store.Registry
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(registry *store.Registry) *WishlistHandler {
	return &WishlistHandler{registry: registry}
}

// WishlistItemResponse represents one wishlist line in API responses
type WishlistItemResponse struct {
	LineID       string          `json:"lineId"`
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	Price        string          `json:"price"`
	Image        string          `json:"image"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	IsOrganic    bool            `json:"isOrganic"`
	InStock      bool            `json:"inStock"`
	Variant      *VariantPayload `json:"selectedVariant,omitempty"`
	VariantLabel string          `json:"variantLabel,omitempty"`
}

// WishlistResponse represents the full wishlist state in API responses
type WishlistResponse struct {
	Items []WishlistItemResponse `json:"items"`
	Count int                    `json:"count"`
}

func toWishlistItemResponse(item *domain.WishlistItem) WishlistItemResponse {
	resp := WishlistItemResponse{
		LineID:       item.LineID,
		ProductID:    item.ProductID,
		Name:         item.Name,
		Price:        item.Price.StringFixed(2),
		Image:        item.Image,
		Category:     item.Category,
		Description:  item.Description,
		IsOrganic:    item.IsOrganic,
		InStock:      item.InStock,
		VariantLabel: domain.VariantLabel(item.Category, item.Name, item.Variant),
	}
	if item.Variant != nil {
		resp.Variant = &VariantPayload{Name: item.Variant.Name, Price: item.Variant.Price}
	}
	return resp
}

func toWishlistResponse(items []*domain.WishlistItem) WishlistResponse {
	resp := WishlistResponse{Items: make([]WishlistItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, toWishlistItemResponse(item))
	}
	resp.Count = len(resp.Items)
	return resp
}

func (h *WishlistHandler) acquire(c echo.Context) (*store.Stores, func()) {
	userID := middleware.GetUserID(c)
	p := identity.Principal{ID: userID}
	if claims := middleware.GetCustomClaims(c); claims != nil {
		p.Email = claims.Email
	}
	stores := h.registry.Acquire(p)
	return stores, func() { h.registry.Release(userID) }
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	stores, release := h.acquire(c)
	defer release()

	stores.Wishlist.Reload(c.Request().Context())
	return c.JSON(http.StatusOK, toWishlistResponse(stores.Wishlist.State().Items))
}

// AddToWishlist handles POST /api/v1/wishlist
func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	var req ItemSnapshotRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.ProductID == "" {
		return NewValidationError(c, "Product id is required", []ValidationError{{Field: "productId", Message: "Required"}})
	}

	stores, release := h.acquire(c)
	defer release()

	if !stores.Wishlist.AddToWishlist(c.Request().Context(), req.toSnapshot()) {
		return NewInternalError(c, "Could not save item to wishlist")
	}
	return c.JSON(http.StatusOK, toWishlistResponse(stores.Wishlist.State().Items))
}

// RemoveFromWishlist handles DELETE /api/v1/wishlist/:lineId
func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	lineID := c.Param("lineId")
	if lineID == "" {
		return NewValidationError(c, "Line id is required", nil)
	}

	stores, release := h.acquire(c)
	defer release()

	if !stores.Wishlist.RemoveFromWishlist(c.Request().Context(), lineID) {
		return NewInternalError(c, "Could not remove item from wishlist")
	}
	return c.JSON(http.StatusOK, toWishlistResponse(stores.Wishlist.State().Items))
}

// ClearWishlist handles DELETE /api/v1/wishlist
func (h *WishlistHandler) ClearWishlist(c echo.Context) error {
	stores, release := h.acquire(c)
	defer release()

	if !stores.Wishlist.ClearWishlist(c.Request().Context()) {
		return NewInternalError(c, "Could not clear wishlist")
	}
	return c.JSON(http.StatusOK, toWishlistResponse(stores.Wishlist.State().Items))
}
