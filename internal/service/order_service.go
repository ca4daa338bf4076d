package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nareshwadi/market/market-backend/internal/domain"
)

// OrderService handles checkout and order management. Placing an order
// snapshots the current cart into order lines, then clears the cart. There is
// deliberately no transaction spanning cart and inventory.
type OrderService struct {
	orderRepo domain.OrderRepository
	cartRepo  domain.CartItemRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo domain.OrderRepository, cartRepo domain.CartItemRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, cartRepo: cartRepo}
}

// PlaceOrderInput contains the checkout form fields.
type PlaceOrderInput struct {
	Name    string
	Address string
	City    string
	Pincode string
	Phone   string
}

func (in *PlaceOrderInput) validate() error {
	for _, field := range []string{in.Name, in.Address, in.City, in.Pincode, in.Phone} {
		if strings.TrimSpace(field) == "" {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// PlaceOrder creates an order from the user's current cart and clears the
// cart on success.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*domain.Order, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	cartItems, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, domain.ErrCartEmpty
	}

	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(cartItems))
	for _, line := range cartItems {
		total = total.Add(line.Subtotal())
		item := domain.OrderItem{
			LineID:   line.LineID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		}
		if line.Variant != nil {
			name := line.Variant.Name
			item.VariantName = &name
		}
		items = append(items, item)
	}

	order := &domain.Order{
		ID:     uuid.New(),
		UserID: userID,
		Total:  total,
		Status: domain.OrderStatusPending,
		Shipping: domain.ShippingAddress{
			Name:    strings.TrimSpace(input.Name),
			Address: strings.TrimSpace(input.Address),
			City:    strings.TrimSpace(input.City),
			Pincode: strings.TrimSpace(input.Pincode),
			Phone:   strings.TrimSpace(input.Phone),
		},
		Items: items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	// Cart cleanup is best effort; the order already exists.
	if err := s.cartRepo.DeleteAllByUser(ctx, userID); err != nil {
		return order, nil
	}
	return order, nil
}

// GetOrder retrieves one order, restricted to its owner.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// GetOrderAny retrieves one order without the owner restriction, for the
// farmer portal.
func (s *OrderService) GetOrderAny(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return s.orderRepo.GetByID(ctx, orderID)
}

// ListOrders retrieves the user's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// UpdateStatus moves an order to a new lifecycle status (farmer portal).
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	if !domain.ValidOrderStatus(status) {
		return domain.ErrInvalidStatus
	}
	return s.orderRepo.UpdateStatus(ctx, orderID, status)
}
