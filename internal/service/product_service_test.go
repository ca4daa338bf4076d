package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nareshwadi/market/market-backend/internal/domain"
	"github.com/nareshwadi/market/market-backend/internal/testutil"
)

func seedProduct(repo *testutil.MockProductRepository, id, category string, sellerID *uuid.UUID) *domain.Product {
	p := &domain.Product{
		ID:            id,
		Name:          "Product " + id,
		Price:         decimal.NewFromInt(100),
		Category:      category,
		InStock:       true,
		StockQuantity: 20,
		MinStockLevel: 10,
		SellerID:      sellerID,
	}
	repo.Products[id] = p
	return p
}

func TestProductService_ListProducts(t *testing.T) {
	repo := testutil.NewMockProductRepository()
	seedProduct(repo, "p1", "Fruits", nil)
	seedProduct(repo, "p2", "Grains", nil)
	svc := NewProductService(repo)

	all, err := svc.ListProducts(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 products, got %d", len(all))
	}

	grains, err := svc.ListProducts(context.Background(), "Grains")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(grains) != 1 || grains[0].ID != "p2" {
		t.Errorf("expected only p2 in Grains, got %v", grains)
	}
}

func TestProductService_CreateProduct(t *testing.T) {
	repo := testutil.NewMockProductRepository()
	svc := NewProductService(repo)
	sellerID := uuid.New()

	p := &domain.Product{
		ID:            "p-new",
		Name:          "  Turmeric Powder  ",
		Price:         decimal.NewFromInt(80),
		StockQuantity: 5,
	}
	created, err := svc.CreateProduct(context.Background(), sellerID, p)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Name != "Turmeric Powder" {
		t.Errorf("expected trimmed name, got %q", created.Name)
	}
	if created.SellerID == nil || *created.SellerID != sellerID {
		t.Error("expected seller id attached")
	}
	if !created.InStock {
		t.Error("positive stock quantity should mark the product in stock")
	}
	if created.MinStockLevel != 10 {
		t.Errorf("expected default min stock level 10, got %d", created.MinStockLevel)
	}
}

func TestProductService_CreateProduct_Invalid(t *testing.T) {
	svc := NewProductService(testutil.NewMockProductRepository())
	sellerID := uuid.New()

	tests := []struct {
		name    string
		product *domain.Product
		wantErr error
	}{
		{
			name:    "missing id",
			product: &domain.Product{Name: "X", Price: decimal.NewFromInt(1)},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "blank name",
			product: &domain.Product{ID: "p1", Name: "   ", Price: decimal.NewFromInt(1)},
			wantErr: domain.ErrNameRequired,
		},
		{
			name:    "negative price",
			product: &domain.Product{ID: "p1", Name: "X", Price: decimal.NewFromInt(-1)},
			wantErr: domain.ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), sellerID, tt.product)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestProductService_UpdateProduct_OwnershipEnforced(t *testing.T) {
	repo := testutil.NewMockProductRepository()
	owner := uuid.New()
	seedProduct(repo, "p1", "Fruits", &owner)
	svc := NewProductService(repo)

	update := &domain.Product{ID: "p1", Name: "Renamed", Price: decimal.NewFromInt(90)}

	if _, err := svc.UpdateProduct(context.Background(), uuid.New(), update); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("stranger update should be forbidden, got %v", err)
	}

	if _, err := svc.UpdateProduct(context.Background(), owner, update); err != nil {
		t.Errorf("owner update should succeed, got %v", err)
	}
}

func TestProductService_UpdateStock(t *testing.T) {
	repo := testutil.NewMockProductRepository()
	owner := uuid.New()
	seedProduct(repo, "p1", "Fruits", &owner)
	svc := NewProductService(repo)
	ctx := context.Background()

	if err := svc.UpdateStock(ctx, owner, "p1", 0); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	p := repo.Products["p1"]
	if p.InStock || p.StockQuantity != 0 {
		t.Errorf("expected out of stock with quantity 0, got inStock=%v qty=%d", p.InStock, p.StockQuantity)
	}

	if err := svc.UpdateStock(ctx, owner, "p1", -1); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}

	if err := svc.UpdateStock(ctx, uuid.New(), "p1", 5); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for stranger, got %v", err)
	}
}

func TestProductService_DeleteProduct(t *testing.T) {
	repo := testutil.NewMockProductRepository()
	owner := uuid.New()
	seedProduct(repo, "p1", "Fruits", &owner)
	svc := NewProductService(repo)
	ctx := context.Background()

	if err := svc.DeleteProduct(ctx, uuid.New(), "p1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for stranger, got %v", err)
	}

	if err := svc.DeleteProduct(ctx, owner, "p1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.GetProduct(ctx, "p1"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound after delete, got %v", err)
	}
}
