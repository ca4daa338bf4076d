package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nareshwadi/market/market-backend/internal/domain"
)

const (
	productColumns = `id, name, description, price, image, category, is_organic, in_stock,
		stock_quantity, min_stock_level, seller_id, created_at, updated_at`

	listProductsSQL = `SELECT ` + productColumns + ` FROM products ORDER BY name`

	listProductsByCategorySQL = `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY name`

	listProductsBySellerSQL = `SELECT ` + productColumns + ` FROM products WHERE seller_id = $1 ORDER BY name`

	getProductByIDSQL = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	createProductSQL = `INSERT INTO products (id, name, description, price, image, category, is_organic,
			in_stock, stock_quantity, min_stock_level, seller_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	updateProductSQL = `UPDATE products SET name = $2, description = $3, price = $4, image = $5,
			category = $6, is_organic = $7, in_stock = $8, stock_quantity = $9,
			min_stock_level = $10, updated_at = NOW()
		WHERE id = $1`

	updateProductStockSQL = `UPDATE products SET in_stock = $2, stock_quantity = $3, updated_at = NOW()
		WHERE id = $1`

	deleteProductSQL = `DELETE FROM products WHERE id = $1`

	countLowStockSQL = `SELECT COUNT(*) FROM products
		WHERE stock_quantity > 0 AND stock_quantity <= min_stock_level`
)

var _ domain.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implements domain.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List retrieves the full catalog ordered by name.
func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// ListByCategory retrieves products in one category.
func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsByCategorySQL, category)
	if err != nil {
		return nil, fmt.Errorf("listing products by category: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// ListBySeller retrieves a seller's products for the farmer portal.
func (r *ProductRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsBySellerSQL, sellerID)
	if err != nil {
		return nil, fmt.Errorf("listing products by seller: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// GetByID retrieves a single product.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	rows, err := r.pool.Query(ctx, getProductByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}
	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}
	return p, nil
}

// Create persists a new product.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	_, err := r.pool.Exec(ctx, createProductSQL,
		p.ID, p.Name, p.Description, p.Price, p.Image, p.Category,
		p.IsOrganic, p.InStock, p.StockQuantity, p.MinStockLevel, p.SellerID,
	)
	if err != nil {
		return fmt.Errorf("creating product %q: %w", p.ID, err)
	}
	return nil
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	tag, err := r.pool.Exec(ctx, updateProductSQL,
		p.ID, p.Name, p.Description, p.Price, p.Image, p.Category,
		p.IsOrganic, p.InStock, p.StockQuantity, p.MinStockLevel,
	)
	if err != nil {
		return fmt.Errorf("updating product %q: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// UpdateStock updates only the stock flag and quantity.
func (r *ProductRepository) UpdateStock(ctx context.Context, id string, inStock bool, stockQuantity int) error {
	tag, err := r.pool.Exec(ctx, updateProductStockSQL, id, inStock, stockQuantity)
	if err != nil {
		return fmt.Errorf("updating stock for %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete removes a product from the catalog.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, deleteProductSQL, id)
	if err != nil {
		return fmt.Errorf("deleting product %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// CountLowStock counts products at or below their minimum stock level.
func (r *ProductRepository) CountLowStock(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, countLowStockSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting low stock products: %w", err)
	}
	return count, nil
}

func scanProduct(row pgx.CollectableRow) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.Category,
		&p.IsOrganic, &p.InStock, &p.StockQuantity, &p.MinStockLevel,
		&p.SellerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
