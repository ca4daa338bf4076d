package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ShippingAddress is the delivery destination captured at checkout.
type ShippingAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone"`
}

// Order is a placed order with its line snapshot.
type Order struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	Shipping  ShippingAddress `json:"shipping"`
	Items     []OrderItem     `json:"items"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// OrderItem is a cart line frozen at checkout time.
type OrderItem struct {
	LineID      string          `json:"lineId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	VariantName *string         `json:"variantName,omitempty"`
}

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error)
	ListSince(ctx context.Context, since time.Time) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error
}
