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
	listCartItemsSQL = `SELECT user_id, line_id, product_id, name, price, image, category, description,
			is_organic, in_stock, quantity, variant_name, variant_price, created_at, updated_at
		FROM cart_items WHERE user_id = $1 ORDER BY created_at`

	upsertCartItemSQL = `INSERT INTO cart_items (user_id, line_id, product_id, name, price, image, category,
			description, is_organic, in_stock, quantity, variant_name, variant_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id, line_id) DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()`

	updateCartQuantitySQL = `UPDATE cart_items SET quantity = $3, updated_at = NOW()
		WHERE user_id = $1 AND line_id = $2`

	deleteCartItemSQL = `DELETE FROM cart_items WHERE user_id = $1 AND line_id = $2`

	clearCartSQL = `DELETE FROM cart_items WHERE user_id = $1`
)

var _ domain.CartItemRepository = (*CartItemRepository)(nil)

// CartItemRepository implements domain.CartItemRepository using PostgreSQL.
// The (user_id, line_id) primary key plus the ON CONFLICT upsert make repeated
// adds accumulate quantity atomically, without a check-then-act round trip.
type CartItemRepository struct {
	pool *pgxpool.Pool
}

// NewCartItemRepository creates a new CartItemRepository.
func NewCartItemRepository(pool *pgxpool.Pool) *CartItemRepository {
	return &CartItemRepository{pool: pool}
}

// ListByUser retrieves all cart lines for a user.
func (r *CartItemRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error) {
	rows, err := r.pool.Query(ctx, listCartItemsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("listing cart items: %w", err)
	}
	return pgx.CollectRows(rows, scanCartItem)
}

// Upsert inserts a new cart line or accumulates quantity on the existing one.
func (r *CartItemRepository) Upsert(ctx context.Context, item *domain.CartItem) error {
	variantName, variantPrice := variantColumns(item.Variant)
	_, err := r.pool.Exec(ctx, upsertCartItemSQL,
		item.UserID, item.LineID, item.ProductID, item.Name, item.Price,
		item.Image, item.Category, item.Description, item.IsOrganic, item.InStock,
		item.Quantity, variantName, variantPrice,
	)
	if err != nil {
		return fmt.Errorf("upserting cart item %q: %w", item.LineID, err)
	}
	return nil
}

// UpdateQuantity sets the quantity column verbatim for a cart line.
func (r *CartItemRepository) UpdateQuantity(ctx context.Context, userID uuid.UUID, lineID string, quantity int) error {
	tag, err := r.pool.Exec(ctx, updateCartQuantitySQL, userID, lineID, quantity)
	if err != nil {
		return fmt.Errorf("updating cart quantity for %q: %w", lineID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a single cart line.
func (r *CartItemRepository) Delete(ctx context.Context, userID uuid.UUID, lineID string) error {
	if _, err := r.pool.Exec(ctx, deleteCartItemSQL, userID, lineID); err != nil {
		return fmt.Errorf("deleting cart item %q: %w", lineID, err)
	}
	return nil
}

// DeleteAllByUser removes every cart line belonging to the user.
func (r *CartItemRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, clearCartSQL, userID); err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}
	return nil
}

func scanCartItem(row pgx.CollectableRow) (*domain.CartItem, error) {
	var (
		item         domain.CartItem
		variantName  *string
		variantPrice *decimal.Decimal
	)
	err := row.Scan(
		&item.UserID, &item.LineID, &item.ProductID, &item.Name, &item.Price,
		&item.Image, &item.Category, &item.Description, &item.IsOrganic, &item.InStock,
		&item.Quantity, &variantName, &variantPrice, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Variant = variantFromColumns(variantName, variantPrice)
	return &item, nil
}

// variantColumns splits an optional variant into its nullable column values.
func variantColumns(v *domain.Variant) (*string, *decimal.Decimal) {
	if v == nil {
		return nil, nil
	}
	name := v.Name
	price := v.Price
	return &name, &price
}

// variantFromColumns rebuilds the optional variant from its column values.
func variantFromColumns(name *string, price *decimal.Decimal) *domain.Variant {
	if name == nil {
		return nil
	}
	v := &domain.Variant{Name: *name}
	if price != nil {
		v.Price = *price
	}
	return v
}
