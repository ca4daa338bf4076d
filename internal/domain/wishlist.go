package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WishlistItem is one line in a user's wishlist. Presence-only: there is no
// quantity, an item is either saved or not.
type WishlistItem struct {
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
	Variant     *Variant        `json:"selectedVariant,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// WishlistItemRepository is the remote item store for the wishlist collection.
// Insert ignores a duplicate (user, line) pair: saving an already-saved item is
// a no-op success.
type WishlistItemRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*WishlistItem, error)
	Insert(ctx context.Context, item *WishlistItem) error
	Delete(ctx context.Context, userID uuid.UUID, lineID string) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}
