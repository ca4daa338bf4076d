package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nareshwadi/market/market-backend/internal/domain"
)

const (
	orderColumns = `id, user_id, total, status, shipping_name, shipping_address, shipping_city,
		shipping_pincode, shipping_phone, created_at, updated_at`

	createOrderSQL = `INSERT INTO orders (id, user_id, total, status, shipping_name, shipping_address,
			shipping_city, shipping_pincode, shipping_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	createOrderItemSQL = `INSERT INTO order_items (order_id, line_id, name, price, quantity, variant_name)
		VALUES ($1, $2, $3, $4, $5, $6)`

	getOrderByIDSQL = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	listOrdersByUserSQL = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	listOrdersSinceSQL = `SELECT ` + orderColumns + ` FROM orders WHERE created_at >= $1 ORDER BY created_at DESC`

	listOrderItemsSQL = `SELECT line_id, name, price, quantity, variant_name
		FROM order_items WHERE order_id = $1`

	updateOrderStatusSQL = `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`
)

var _ domain.OrderRepository = (*OrderRepository)(nil)

// OrderRepository implements domain.OrderRepository using PostgreSQL. Order
// creation writes the order row and its line snapshot in one transaction.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists an order and its items atomically.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning order transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, createOrderSQL,
		o.ID, o.UserID, o.Total, o.Status,
		o.Shipping.Name, o.Shipping.Address, o.Shipping.City, o.Shipping.Pincode, o.Shipping.Phone,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}

	for _, item := range o.Items {
		_, err = tx.Exec(ctx, createOrderItemSQL,
			o.ID, item.LineID, item.Name, item.Price, item.Quantity, item.VariantName,
		)
		if err != nil {
			return fmt.Errorf("creating order item %q: %w", item.LineID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing order %q: %w", o.ID, err)
	}
	return nil
}

// GetByID retrieves an order with its items.
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}
	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}

	if o.Items, err = r.listItems(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

// ListByUser retrieves a user's orders, newest first, with items.
func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, orders)
}

// ListSince retrieves all orders created at or after the cutoff. A zero cutoff
// means all orders.
func (r *OrderRepository) ListSince(ctx context.Context, since time.Time) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersSinceSQL, since)
	if err != nil {
		return nil, fmt.Errorf("listing orders since %s: %w", since, err)
	}
	return pgx.CollectRows(rows, scanOrder)
}

// UpdateStatus changes an order's lifecycle status.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	tag, err := r.pool.Exec(ctx, updateOrderStatusSQL, id, status)
	if err != nil {
		return fmt.Errorf("updating status for order %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) attachItems(ctx context.Context, orders []*domain.Order) ([]*domain.Order, error) {
	for _, o := range orders {
		items, err := r.listItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return orders, nil
}

func (r *OrderRepository) listItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	rows, err := r.pool.Query(ctx, listOrderItemsSQL, orderID)
	if err != nil {
		return nil, fmt.Errorf("listing items for order %q: %w", orderID, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OrderItem, error) {
		var item domain.OrderItem
		err := row.Scan(&item.LineID, &item.Name, &item.Price, &item.Quantity, &item.VariantName)
		return item, err
	})
}

func scanOrder(row pgx.CollectableRow) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.Total, &o.Status,
		&o.Shipping.Name, &o.Shipping.Address, &o.Shipping.City, &o.Shipping.Pincode, &o.Shipping.Phone,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
