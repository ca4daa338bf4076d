package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one line in a user's cart. LineID is the addressable key; for a
// product with a selected variant it is the LineID composite, otherwise the
// base product id.
type CartItem struct {
	UserID      uuid.UUID       `json:"userId"`
	LineID      string          `json:"lineId"`
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	IsOrganic   bool            `json:"isOrganic"`
	InStock     bool            `json:"inStock"`
	Quantity    int             `json:"quantity"`
	Variant     *Variant        `json:"selectedVariant,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Subtotal returns price times quantity for the line.
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartItemRepository is the remote item store for the cart collection. Upsert
// must be atomic: a repeated add for the same (user, line) accumulates quantity
// in the existing row rather than creating a second one.
type CartItemRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*CartItem, error)
	Upsert(ctx context.Context, item *CartItem) error
	UpdateQuantity(ctx context.Context, userID uuid.UUID, lineID string, quantity int) error
	Delete(ctx context.Context, userID uuid.UUID, lineID string) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}
