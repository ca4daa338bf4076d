package store

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nareshwadi/market/market-backend/internal/domain"
	"github.com/nareshwadi/market/market-backend/internal/identity"
	"github.com/nareshwadi/market/market-backend/internal/service"
	"github.com/nareshwadi/market/market-backend/internal/testutil"
)

func newWishlistFixture() (*testutil.MockWishlistItemRepository, *testutil.RecordingReporter, *identity.Session, *WishlistStore) {
	repo := testutil.NewMockWishlistItemRepository()
	reporter := testutil.NewRecordingReporter()
	session := identity.NewSession()
	svc := service.NewWishlistService(repo, reporter)
	store := NewWishlistStore(svc, session, reporter)
	return repo, reporter, session, store
}

func TestWishlistStore_UnauthenticatedMutationFailsWithoutServiceCall(t *testing.T) {
	repo, reporter, _, store := newWishlistFixture()
	defer store.Close()

	if ok := store.AddToWishlist(context.Background(), guavaSnapshot()); ok {
		t.Error("expected AddToWishlist to fail when logged out")
	}
	if repo.InsertCalls != 0 {
		t.Errorf("expected no repository calls, got %d inserts", repo.InsertCalls)
	}
	if reporter.Count() != 1 || !errors.Is(reporter.Reports()[0].Err, domain.ErrUnauthorized) {
		t.Errorf("expected a single ErrUnauthorized report, got %v", reporter.Reports())
	}
}

func TestWishlistStore_AddAndContains(t *testing.T) {
	_, _, session, store := newWishlistFixture()
	defer store.Close()
	login(session)

	snap := guavaSnapshot()
	snap.Variant = &domain.Variant{Name: "Ripe", Price: decimal.NewFromInt(95)}

	if ok := store.AddToWishlist(context.Background(), snap); !ok {
		t.Fatal("expected AddToWishlist to succeed")
	}

	if !store.Contains("prod-guava-Ripe") {
		t.Error("expected the variant line to be present")
	}
	if store.Contains("prod-guava") {
		t.Error("the base line must not be present when a variant was saved")
	}
}

func TestWishlistStore_DuplicateAddKeepsSingleLine(t *testing.T) {
	_, _, session, store := newWishlistFixture()
	defer store.Close()
	login(session)

	ctx := context.Background()
	store.AddToWishlist(ctx, guavaSnapshot())
	if ok := store.AddToWishlist(ctx, guavaSnapshot()); !ok {
		t.Fatal("duplicate save should succeed")
	}
	if len(store.State().Items) != 1 {
		t.Errorf("expected 1 line, got %d", len(store.State().Items))
	}
}

func TestWishlistStore_LogoutResetsWithoutServiceCalls(t *testing.T) {
	repo, _, session, store := newWishlistFixture()
	defer store.Close()
	login(session)
	store.AddToWishlist(context.Background(), guavaSnapshot())

	callsBeforeLogout := repo.ListCalls
	session.Clear()

	if len(store.State().Items) != 0 {
		t.Error("expected empty state after logout")
	}
	if repo.ListCalls != callsBeforeLogout {
		t.Error("logout must reset state without any remote call")
	}
	if len(repo.Items) != 1 {
		t.Error("stored rows must survive logout")
	}
}

func TestWishlistStore_ClearBypassesReload(t *testing.T) {
	repo, _, session, store := newWishlistFixture()
	defer store.Close()
	login(session)
	store.AddToWishlist(context.Background(), guavaSnapshot())

	callsBeforeClear := repo.ListCalls

	if ok := store.ClearWishlist(context.Background()); !ok {
		t.Fatal("expected ClearWishlist to succeed")
	}
	if repo.ListCalls != callsBeforeClear {
		t.Error("Clear must set state directly without a reload")
	}
	if len(store.State().Items) != 0 {
		t.Error("expected empty state after clear")
	}
}

func TestWishlistStore_RemoveFromWishlist(t *testing.T) {
	_, _, session, store := newWishlistFixture()
	defer store.Close()
	login(session)
	store.AddToWishlist(context.Background(), guavaSnapshot())

	if ok := store.RemoveFromWishlist(context.Background(), "prod-guava"); !ok {
		t.Fatal("expected RemoveFromWishlist to succeed")
	}
	if store.Contains("prod-guava") {
		t.Error("expected the line gone after remove")
	}
}
