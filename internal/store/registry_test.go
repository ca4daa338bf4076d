package store

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/nareshwadi/market/market-backend/internal/identity"
	"github.com/nareshwadi/market/market-backend/internal/service"
	"github.com/nareshwadi/market/market-backend/internal/testutil"
)

func newRegistry() (*Registry, *testutil.MockCartItemRepository) {
	cartRepo := testutil.NewMockCartItemRepository()
	wishlistRepo := testutil.NewMockWishlistItemRepository()
	reporter := testutil.NewRecordingReporter()
	cartSvc := service.NewCartService(cartRepo, reporter)
	wishlistSvc := service.NewWishlistService(wishlistRepo, reporter)
	return NewRegistry(cartSvc, wishlistSvc, reporter), cartRepo
}

func TestRegistry_AcquireSharesStoresPerUser(t *testing.T) {
	reg, _ := newRegistry()
	p := identity.Principal{ID: uuid.New(), Email: "asha@example.com"}

	first := reg.Acquire(p)
	second := reg.Acquire(p)

	if first != second {
		t.Error("expected the same Stores pair for repeated Acquire of one user")
	}
	if reg.Active() != 1 {
		t.Errorf("expected 1 active principal, got %d", reg.Active())
	}
}

func TestRegistry_ReleaseDropsOnLastReference(t *testing.T) {
	reg, _ := newRegistry()
	p := identity.Principal{ID: uuid.New(), Email: "asha@example.com"}

	stores := reg.Acquire(p)
	reg.Acquire(p)

	reg.Release(p.ID)
	if reg.Active() != 1 {
		t.Error("first release must keep the pair alive")
	}

	reg.Release(p.ID)
	if reg.Active() != 0 {
		t.Error("last release must drop the pair")
	}

	// The session was cleared, so the containers reset to empty.
	if len(stores.Cart.State().Items) != 0 {
		t.Error("expected cart state reset after last release")
	}
}

func TestRegistry_AcquireLoadsImmediately(t *testing.T) {
	reg, cartRepo := newRegistry()
	p := identity.Principal{ID: uuid.New(), Email: "asha@example.com"}

	stores := reg.Acquire(p)
	defer reg.Release(p.ID)

	if cartRepo.ListCalls == 0 {
		t.Error("expected the cart container to load on acquire")
	}
	if stores.Session.Current() == nil {
		t.Error("expected the session to hold the principal")
	}

	if ok := stores.Cart.AddToCart(context.Background(), guavaSnapshot()); !ok {
		t.Error("expected a mutation through the acquired store to succeed")
	}
}

func TestRegistry_ReleaseUnknownUserIsNoOp(t *testing.T) {
	reg, _ := newRegistry()
	p := identity.Principal{ID: uuid.New()}

	// Must not panic
	reg.Release(p.ID)
	if reg.Active() != 0 {
		t.Errorf("expected no active principals, got %d", reg.Active())
	}
}
