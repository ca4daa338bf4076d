package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nareshwadi/market/market-backend/internal/domain"
)

const (
	listWishlistItemsSQL = `SELECT user_id, line_id, product_id, name, price, image, category, description,
			is_organic, in_stock, variant_name, variant_price, created_at
		FROM wishlist_items WHERE user_id = $1 ORDER BY created_at`

	insertWishlistItemSQL = `INSERT INTO wishlist_items (user_id, line_id, product_id, name, price, image,
			category, description, is_organic, in_stock, variant_name, variant_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id, line_id) DO NOTHING`

	deleteWishlistItemSQL = `DELETE FROM wishlist_items WHERE user_id = $1 AND line_id = $2`

	clearWishlistSQL = `DELETE FROM wishlist_items WHERE user_id = $1`
)

var _ domain.WishlistItemRepository = (*WishlistItemRepository)(nil)

// WishlistItemRepository implements domain.WishlistItemRepository using
// PostgreSQL. Saving an already-saved line is a no-op (ON CONFLICT DO NOTHING).
type WishlistItemRepository struct {
	pool *pgxpool.Pool
}

// NewWishlistItemRepository creates a new WishlistItemRepository.
func NewWishlistItemRepository(pool *pgxpool.Pool) *WishlistItemRepository {
	return &WishlistItemRepository{pool: pool}
}

// ListByUser retrieves all wishlist lines for a user.
func (r *WishlistItemRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishlistItem, error) {
	rows, err := r.pool.Query(ctx, listWishlistItemsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("listing wishlist items: %w", err)
	}
	return pgx.CollectRows(rows, scanWishlistItem)
}

// Insert saves a wishlist line; duplicates are ignored.
func (r *WishlistItemRepository) Insert(ctx context.Context, item *domain.WishlistItem) error {
	variantName, variantPrice := variantColumns(item.Variant)
	_, err := r.pool.Exec(ctx, insertWishlistItemSQL,
		item.UserID, item.LineID, item.ProductID, item.Name, item.Price,
		item.Image, item.Category, item.Description, item.IsOrganic, item.InStock,
		variantName, variantPrice,
	)
	if err != nil {
		return fmt.Errorf("inserting wishlist item %q: %w", item.LineID, err)
	}
	return nil
}

// Delete removes a single wishlist line.
func (r *WishlistItemRepository) Delete(ctx context.Context, userID uuid.UUID, lineID string) error {
	if _, err := r.pool.Exec(ctx, deleteWishlistItemSQL, userID, lineID); err != nil {
		return fmt.Errorf("deleting wishlist item %q: %w", lineID, err)
	}
	return nil
}

// DeleteAllByUser removes every wishlist line belonging to the user.
func (r *WishlistItemRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, clearWishlistSQL, userID); err != nil {
		return fmt.Errorf("clearing wishlist: %w", err)
	}
	return nil
}

func scanWishlistItem(row pgx.CollectableRow) (*domain.WishlistItem, error) {
	var (
		item         domain.WishlistItem
		variantName  *string
		variantPrice *decimal.Decimal
	)
	err := row.Scan(
		&item.UserID, &item.LineID, &item.ProductID, &item.Name, &item.Price,
		&item.Image, &item.Category, &item.Description, &item.IsOrganic, &item.InStock,
		&variantName, &variantPrice, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Variant = variantFromColumns(variantName, variantPrice)
	return &item, nil
}
