package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/nareshwadi/market/market-backend/internal/domain"
	"github.com/nareshwadi/market/market-backend/internal/middleware"
	"github.com/nareshwadi/market/market-backend/internal/service"
)

// ProductHandler handles catalog HTTP requests. Listing and reading are
// public; create/update/delete belong to the farmer portal and require auth.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ProductRequest is the create/update payload for a catalog listing
type ProductRequest struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	Category      string          `json:"category"`
	IsOrganic     bool            `json:"isOrganic"`
	StockQuantity int             `json:"stockQuantity"`
	MinStockLevel int             `json:"minStockLevel"`
}

// ProductResponse represents a catalog listing in API responses
type ProductResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         string `json:"price"`
	Image         string `json:"image"`
	Category      string `json:"category"`
	IsOrganic     bool   `json:"isOrganic"`
	InStock       bool   `json:"inStock"`
	StockQuantity int    `json:"stockQuantity"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.StringFixed(2),
		Image:         p.Image,
		Category:      p.Category,
		IsOrganic:     p.IsOrganic,
		InStock:       p.InStock,
		StockQuantity: p.StockQuantity,
	}
}

func toProductResponses(products []*domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

// ListProducts handles GET /api/v1/products
// Accepts an optional category query param.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	category := c.QueryParam("category")

	products, err := h.productService.ListProducts(c.Request().Context(), category)
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("Failed to list products")
		return NewInternalError(c, "Failed to list products")
	}
	return c.JSON(http.StatusOK, toProductResponses(products))
}

// GetProduct handles GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id := c.Param("id")

	product, err := h.productService.GetProduct(c.Request().Context(), id)
	if err != nil {
		if err == domain.ErrProductNotFound {
			return NewNotFoundError(c, "Product not found")
		}
		log.Error().Err(err).Str("product_id", id).Msg("Failed to get product")
		return NewInternalError(c, "Failed to get product")
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// ListMyProducts handles GET /api/v1/seller/products
func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	sellerID := middleware.GetUserID(c)

	products, err := h.productService.ListSellerProducts(c.Request().Context(), sellerID)
	if err != nil {
		log.Error().Err(err).Str("seller_id", sellerID.String()).Msg("Failed to list seller products")
		return NewInternalError(c, "Failed to list products")
	}
	return c.JSON(http.StatusOK, toProductResponses(products))
}

// CreateProduct handles POST /api/v1/seller/products
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	sellerID := middleware.GetUserID(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	product := &domain.Product{
		ID:            req.ID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Image:         req.Image,
		Category:      req.Category,
		IsOrganic:     req.IsOrganic,
		StockQuantity: req.StockQuantity,
		MinStockLevel: req.MinStockLevel,
	}

	created, err := h.productService.CreateProduct(c.Request().Context(), sellerID, product)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput, domain.ErrNameRequired, domain.ErrNameTooLong, domain.ErrInvalidPrice:
			return NewValidationError(c, err.Error(), nil)
		}
		log.Error().Err(err).Str("seller_id", sellerID.String()).Msg("Failed to create product")
		return NewInternalError(c, "Failed to create product")
	}
	return c.JSON(http.StatusCreated, toProductResponse(created))
}

// UpdateProduct handles PUT /api/v1/seller/products/:id
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	sellerID := middleware.GetUserID(c)
	id := c.Param("id")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	req.ID = id

	product := &domain.Product{
		ID:            req.ID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Image:         req.Image,
		Category:      req.Category,
		IsOrganic:     req.IsOrganic,
		StockQuantity: req.StockQuantity,
		MinStockLevel: req.MinStockLevel,
	}

	updated, err := h.productService.UpdateProduct(c.Request().Context(), sellerID, product)
	if err != nil {
		switch err {
		case domain.ErrProductNotFound:
			return NewNotFoundError(c, "Product not found")
		case domain.ErrForbidden:
			return NewForbiddenError(c, "You do not own this listing")
		case domain.ErrNameRequired, domain.ErrNameTooLong, domain.ErrInvalidPrice:
			return NewValidationError(c, err.Error(), nil)
		}
		log.Error().Err(err).Str("product_id", id).Msg("Failed to update product")
		return NewInternalError(c, "Failed to update product")
	}
	return c.JSON(http.StatusOK, toProductResponse(updated))
}

// UpdateStockRequest is the body of a stock adjustment
type UpdateStockRequest struct {
	StockQuantity int `json:"stockQuantity"`
}

// UpdateStock handles PATCH /api/v1/seller/products/:id/stock
func (h *ProductHandler) UpdateStock(c echo.Context) error {
	sellerID := middleware.GetUserID(c)
	id := c.Param("id")

	var req UpdateStockRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	err := h.productService.UpdateStock(c.Request().Context(), sellerID, id, req.StockQuantity)
	if err != nil {
		switch err {
		case domain.ErrProductNotFound:
			return NewNotFoundError(c, "Product not found")
		case domain.ErrForbidden:
			return NewForbiddenError(c, "You do not own this listing")
		case domain.ErrInvalidQuantity:
			return NewValidationError(c, "Stock quantity must not be negative", []ValidationError{{Field: "stockQuantity", Message: "Must be zero or positive"}})
		}
		log.Error().Err(err).Str("product_id", id).Msg("Failed to update stock")
		return NewInternalError(c, "Failed to update stock")
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteProduct handles DELETE /api/v1/seller/products/:id
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	sellerID := middleware.GetUserID(c)
	id := c.Param("id")

	err := h.productService.DeleteProduct(c.Request().Context(), sellerID, id)
	if err != nil {
		switch err {
		case domain.ErrProductNotFound:
			return NewNotFoundError(c, "Product not found")
		case domain.ErrForbidden:
			return NewForbiddenError(c, "You do not own this listing")
		}
		log.Error().Err(err).Str("product_id", id).Msg("Failed to delete product")
		return NewInternalError(c, "Failed to delete product")
	}
	return c.NoContent(http.StatusNoContent)
}
