package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/nareshwadi/market/market-backend/internal/domain"
	"github.com/nareshwadi/market/market-backend/internal/report"
)

// WishlistService is the stateless item service for the wishlist collection.
// Structurally the cart service minus quantity: lines are presence-only.
type WishlistService struct {
	repo     domain.WishlistItemRepository
	reporter report.Reporter
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(repo domain.WishlistItemRepository, reporter report.Reporter) *WishlistService {
	return &WishlistService{repo: repo, reporter: reporter}
}

// List fetches all wishlist lines for a user. Remote failures are reported and
// yield an empty list.
func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) []*domain.WishlistItem {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.reporter.Report(err, "WishlistService.List")
		return []*domain.WishlistItem{}
	}
	if items == nil {
		items = []*domain.WishlistItem{}
	}
	return items
}

// Add saves a product snapshot to the user's wishlist. The line id is composed
// from the base product id and the selected variant; saving an already-saved
// line is a no-op success.
func (s *WishlistService) Add(ctx context.Context, userID uuid.UUID, snap domain.ItemSnapshot) bool {
	item := &domain.WishlistItem{
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
		Variant:     snap.Variant,
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		s.reporter.Report(err, "WishlistService.Add")
		return false
	}
	return true
}

// Remove deletes one wishlist line.
func (s *WishlistService) Remove(ctx context.Context, userID uuid.UUID, lineID string) bool {
	if err := s.repo.Delete(ctx, userID, lineID); err != nil {
		s.reporter.Report(err, "WishlistService.Remove")
		return false
	}
	return true
}

// Clear deletes every wishlist line belonging to the user.
func (s *WishlistService) Clear(ctx context.Context, userID uuid.UUID) bool {
	if err := s.repo.DeleteAllByUser(ctx, userID); err != nil {
		s.reporter.Report(err, "WishlistService.Clear")
		return false
	}
	return true
}
