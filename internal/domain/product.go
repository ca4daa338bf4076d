package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog listing. Variants (if any) are presentation data carried
// alongside; a variant only becomes structural once it is folded into a cart or
// wishlist line id.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	Category      string          `json:"category"`
	IsOrganic     bool            `json:"isOrganic"`
	InStock       bool            `json:"inStock"`
	StockQuantity int             `json:"stockQuantity"`
	MinStockLevel int             `json:"minStockLevel"`
	SellerID      *uuid.UUID      `json:"sellerId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Validate checks the product fields that must hold before persisting.
func (p *Product) Validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return ErrNameRequired
	}
	if len(name) > MaxProductNameLength {
		return ErrNameTooLong
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// LowOnStock reports whether the product is at or below its minimum stock level
// while still having some stock.
func (p *Product) LowOnStock() bool {
	return p.StockQuantity > 0 && p.StockQuantity <= p.MinStockLevel
}

type ProductRepository interface {
	List(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, category string) ([]*Product, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	UpdateStock(ctx context.Context, id string, inStock bool, stockQuantity int) error
	Delete(ctx context.Context, id string) error
	CountLowStock(ctx context.Context) (int, error)
}
