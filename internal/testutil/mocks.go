// Package testutil provides map-backed repository mocks and a recording error
// reporter for service and store tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nareshwadi/market/market-backend/internal/domain"
)

// cartKey addresses one cart row the way the table's primary key does.
type cartKey struct {
	UserID uuid.UUID
	LineID string
}

// MockCartItemRepository is a mock implementation of domain.CartItemRepository
type MockCartItemRepository struct {
	Items map[cartKey]*domain.CartItem

	ListErr   error
	UpsertErr error
	UpdateErr error
	DeleteErr error
	ClearErr  error

	ListCalls   int
	UpsertCalls int
}

// NewMockCartItemRepository creates a new MockCartItemRepository
func NewMockCartItemRepository() *MockCartItemRepository {
	return &MockCartItemRepository{Items: make(map[cartKey]*domain.CartItem)}
}

// ListByUser returns all lines for the user
func (m *MockCartItemRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error) {
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	items := make([]*domain.CartItem, 0)
	for k, item := range m.Items {
		if k.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

// Upsert inserts a line or accumulates quantity into an existing one
func (m *MockCartItemRepository) Upsert(ctx context.Context, item *domain.CartItem) error {
	m.UpsertCalls++
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	key := cartKey{UserID: item.UserID, LineID: item.LineID}
	if existing, ok := m.Items[key]; ok {
		existing.Quantity += item.Quantity
		existing.UpdatedAt = time.Now()
		return nil
	}
	copied := *item
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	m.Items[key] = &copied
	return nil
}

// UpdateQuantity overwrites the quantity of an existing line
func (m *MockCartItemRepository) UpdateQuantity(ctx context.Context, userID uuid.UUID, lineID string, quantity int) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	item, ok := m.Items[cartKey{UserID: userID, LineID: lineID}]
	if !ok {
		return domain.ErrNotFound
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	return nil
}

// Delete removes one line
func (m *MockCartItemRepository) Delete(ctx context.Context, userID uuid.UUID, lineID string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Items, cartKey{UserID: userID, LineID: lineID})
	return nil
}

// DeleteAllByUser removes every line belonging to the user
func (m *MockCartItemRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	for k := range m.Items {
		if k.UserID == userID {
			delete(m.Items, k)
		}
	}
	return nil
}

// MockWishlistItemRepository is a mock implementation of domain.WishlistItemRepository
type MockWishlistItemRepository struct {
	Items map[cartKey]*domain.WishlistItem

	ListErr   error
	InsertErr error
	DeleteErr error
	ClearErr  error

	ListCalls   int
	InsertCalls int
}

// NewMockWishlistItemRepository creates a new MockWishlistItemRepository
func NewMockWishlistItemRepository() *MockWishlistItemRepository {
	return &MockWishlistItemRepository{Items: make(map[cartKey]*domain.WishlistItem)}
}

// ListByUser returns all lines for the user
func (m *MockWishlistItemRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishlistItem, error) {
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	items := make([]*domain.WishlistItem, 0)
	for k, item := range m.Items {
		if k.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

// Insert saves a line; saving a duplicate is a no-op
func (m *MockWishlistItemRepository) Insert(ctx context.Context, item *domain.WishlistItem) error {
	m.InsertCalls++
	if m.InsertErr != nil {
		return m.InsertErr
	}
	key := cartKey{UserID: item.UserID, LineID: item.LineID}
	if _, ok := m.Items[key]; ok {
		return nil
	}
	copied := *item
	copied.CreatedAt = time.Now()
	m.Items[key] = &copied
	return nil
}

// Delete removes one line
func (m *MockWishlistItemRepository) Delete(ctx context.Context, userID uuid.UUID, lineID string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Items, cartKey{UserID: userID, LineID: lineID})
	return nil
}

// DeleteAllByUser removes every line belonging to the user
func (m *MockWishlistItemRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	for k := range m.Items {
		if k.UserID == userID {
			delete(m.Items, k)
		}
	}
	return nil
}

// MockProductRepository is a mock implementation of domain.ProductRepository
type MockProductRepository struct {
	Products map[string]*domain.Product

	ListErr   error
	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error

	ListCalls int
}

// NewMockProductRepository creates a new MockProductRepository
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{Products: make(map[string]*domain.Product)}
}

// List returns all products
func (m *MockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	products := make([]*domain.Product, 0, len(m.Products))
	for _, p := range m.Products {
		products = append(products, p)
	}
	return products, nil
}

// ListByCategory returns products in the given category
func (m *MockProductRepository) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	products := make([]*domain.Product, 0)
	for _, p := range m.Products {
		if p.Category == category {
			products = append(products, p)
		}
	}
	return products, nil
}

// ListBySeller returns products owned by the given seller
func (m *MockProductRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	products := make([]*domain.Product, 0)
	for _, p := range m.Products {
		if p.SellerID != nil && *p.SellerID == sellerID {
			products = append(products, p)
		}
	}
	return products, nil
}

// GetByID retrieves a product by ID
func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if p, ok := m.Products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

// Create stores a new product
func (m *MockProductRepository) Create(ctx context.Context, p *domain.Product) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.Products[p.ID] = p
	return nil
}

// Update overwrites an existing product
func (m *MockProductRepository) Update(ctx context.Context, p *domain.Product) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if _, ok := m.Products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	p.UpdatedAt = time.Now()
	m.Products[p.ID] = p
	return nil
}

// UpdateStock updates stock fields of an existing product
func (m *MockProductRepository) UpdateStock(ctx context.Context, id string, inStock bool, stockQuantity int) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	p, ok := m.Products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.InStock = inStock
	p.StockQuantity = stockQuantity
	p.UpdatedAt = time.Now()
	return nil
}

// Delete removes a product
func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.Products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(m.Products, id)
	return nil
}

// CountLowStock counts products at or below their minimum stock level
func (m *MockProductRepository) CountLowStock(ctx context.Context) (int, error) {
	if m.ListErr != nil {
		return 0, m.ListErr
	}
	count := 0
	for _, p := range m.Products {
		if p.LowOnStock() {
			count++
		}
	}
	return count, nil
}

// MockOrderRepository is a mock implementation of domain.OrderRepository
type MockOrderRepository struct {
	Orders map[uuid.UUID]*domain.Order

	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
}

// NewMockOrderRepository creates a new MockOrderRepository
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{Orders: make(map[uuid.UUID]*domain.Order)}
}

// Create stores a new order
func (m *MockOrderRepository) Create(ctx context.Context, o *domain.Order) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	m.Orders[o.ID] = o
	return nil
}

// GetByID retrieves an order by ID
func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if o, ok := m.Orders[id]; ok {
		return o, nil
	}
	return nil, domain.ErrOrderNotFound
}

// ListByUser returns the user's orders
func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	orders := make([]*domain.Order, 0)
	for _, o := range m.Orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// ListSince returns orders created at or after the cutoff
func (m *MockOrderRepository) ListSince(ctx context.Context, since time.Time) ([]*domain.Order, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	orders := make([]*domain.Order, 0)
	for _, o := range m.Orders {
		if !o.CreatedAt.Before(since) {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// UpdateStatus changes the status of an existing order
func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	o, ok := m.Orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

// RecordingReporter captures reported errors for assertions. Safe for
// concurrent use.
type RecordingReporter struct {
	mu      sync.Mutex
	reports []ReportedError
}

// ReportedError is one captured report.
type ReportedError struct {
	Err     error
	Context string
}

// NewRecordingReporter creates a new RecordingReporter
func NewRecordingReporter() *RecordingReporter {
	return &RecordingReporter{}
}

// Report captures the error and its context string
func (r *RecordingReporter) Report(err error, context string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, ReportedError{Err: err, Context: context})
}

// Reports returns a copy of everything reported so far
func (r *RecordingReporter) Reports() []ReportedError {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]ReportedError, len(r.reports))
	copy(copied, r.reports)
	return copied
}

// Count returns the number of reports captured
func (r *RecordingReporter) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}
