package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/nareshwadi/market/market-backend/internal/domain"
	"github.com/nareshwadi/market/market-backend/internal/report"
)

// CartService is the stateless item service for the cart collection. Public
// methods never return an error: failures are funneled through the injected
// reporter and surfaced as a false success value (or an empty list), which the
// caller turns into a user-facing message.
type CartService struct {
	repo     domain.CartItemRepository
	reporter report.Reporter
}

// NewCartService creates a new CartService.
func NewCartService(repo domain.CartItemRepository, reporter report.Reporter) *CartService {
	return &CartService{repo: repo, reporter: reporter}
}

// List fetches all cart lines for a user. A remote failure is reported and
// yields an empty list; callers treat "can't load" the same as "nothing to
// show".
func (s *CartService) List(ctx context.Context, userID uuid.UUID) []*domain.CartItem {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.reporter.Report(err, "CartService.List")
		return []*domain.CartItem{}
	}
	if items == nil {
		items = []*domain.CartItem{}
	}
	return items
}

// Add puts a product snapshot into the user's cart. The line id is composed
// here from the base product id and the selected variant, so two variants of
// one product occupy independent lines. Adding an existing line accumulates
// quantity in place.
func (s *CartService) Add(ctx context.Context, userID uuid.UUID, snap domain.ItemSnapshot, quantity int) bool {
	if quantity <= 0 {
		quantity = 1
	}

	item := &domain.CartItem{
		UserID:      userID,
		LineID:      domain.LineID(snap.ProductID, snap.Variant),
		ProductID:   snap.ProductID,
		Name:        snap.Name,
		Price:       snap.Price,
		Image:       snap.Image,
		Category:    snap.Category,
		Description: snap.Description,
		IsOrganic:   domain.NormalizeOrganic(snap.IsOrganic),
		InStock:     domain.NormalizeStock(snap.InStock, nil, snap.StockQuantity),
		Quantity:    quantity,
		Variant:     snap.Variant,
	}

	if err := s.repo.Upsert(ctx, item); err != nil {
		s.reporter.Report(err, "CartService.Add")
		return false
	}
	return true
}

// Remove deletes one cart line.
func (s *CartService) Remove(ctx context.Context, userID uuid.UUID, lineID string) bool {
	if err := s.repo.Delete(ctx, userID, lineID); err != nil {
		s.reporter.Report(err, "CartService.Remove")
		return false
	}
	return true
}

// SetQuantity writes the quantity verbatim. The quantity floor (remove at zero)
// is the presentation layer's policy, not enforced here.
func (s *CartService) SetQuantity(ctx context.Context, userID uuid.UUID, lineID string, quantity int) bool {
	if err := s.repo.UpdateQuantity(ctx, userID, lineID, quantity); err != nil {
		s.reporter.Report(err, "CartService.SetQuantity")
		return false
	}
	return true
}

// Clear deletes every cart line belonging to the user, and only that user.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) bool {
	if err := s.repo.DeleteAllByUser(ctx, userID); err != nil {
		s.reporter.Report(err, "CartService.Clear")
		return false
	}
	return true
}
