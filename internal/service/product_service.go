package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/nareshwadi/market/market-backend/internal/domain"
)

// ProductService handles catalog business logic. Catalog list reads go through
// a singleflight group so a burst of identical requests hits the database once.
type ProductService struct {
	repo domain.ProductRepository
	sfg  singleflight.Group
}

// NewProductService creates a new ProductService.
func NewProductService(repo domain.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ListProducts returns the catalog, optionally filtered by category.
func (s *ProductService) ListProducts(ctx context.Context, category string) ([]*domain.Product, error) {
	key := "list:" + category
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		if category != "" {
			return s.repo.ListByCategory(ctx, category)
		}
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Product), nil
}

// ListSellerProducts returns one seller's products for the farmer portal.
func (s *ProductService) ListSellerProducts(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

// GetProduct returns a single product by id.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates and persists a new listing for a seller.
func (s *ProductService) CreateProduct(ctx context.Context, sellerID uuid.UUID, p *domain.Product) (*domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	p.SellerID = &sellerID
	p.InStock = p.StockQuantity > 0
	if p.MinStockLevel <= 0 {
		p.MinStockLevel = 10
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProduct validates and persists changes to an existing listing. Only the
// owning seller may update it.
func (s *ProductService) UpdateProduct(ctx context.Context, sellerID uuid.UUID, p *domain.Product) (*domain.Product, error) {
	existing, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if existing.SellerID == nil || *existing.SellerID != sellerID {
		return nil, domain.ErrForbidden
	}

	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateStock adjusts a product's stock level; the in-stock flag follows the
// quantity.
func (s *ProductService) UpdateStock(ctx context.Context, sellerID uuid.UUID, id string, stockQuantity int) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.SellerID == nil || *existing.SellerID != sellerID {
		return domain.ErrForbidden
	}
	if stockQuantity < 0 {
		return domain.ErrInvalidQuantity
	}
	return s.repo.UpdateStock(ctx, id, stockQuantity > 0, stockQuantity)
}

// DeleteProduct removes a listing. Only the owning seller may delete it.
func (s *ProductService) DeleteProduct(ctx context.Context, sellerID uuid.UUID, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.SellerID == nil || *existing.SellerID != sellerID {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
