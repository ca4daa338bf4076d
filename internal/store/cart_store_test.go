package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nareshwadi/market/market-backend/internal/domain"
	"github.com/nareshwadi/market/market-backend/internal/identity"
	"github.com/nareshwadi/market/market-backend/internal/service"
	"github.com/nareshwadi/market/market-backend/internal/testutil"
)

func newCartFixture() (*testutil.MockCartItemRepository, *testutil.RecordingReporter, *identity.Session, *CartStore) {
	repo := testutil.NewMockCartItemRepository()
	reporter := testutil.NewRecordingReporter()
	session := identity.NewSession()
	svc := service.NewCartService(repo, reporter)
	store := NewCartStore(svc, session, reporter)
	return repo, reporter, session, store
}

func login(session *identity.Session) *identity.Principal {
	p := &identity.Principal{ID: uuid.New(), Email: "asha@example.com"}
	session.Set(p)
	return p
}

func guavaSnapshot() domain.ItemSnapshot {
	return domain.ItemSnapshot{
		ProductID: "prod-guava",
		Name:      "Guava",
		Price:     decimal.NewFromInt(90),
		Category:  "Fruits",
	}
}

func TestCartStore_UnauthenticatedMutationFailsWithoutServiceCall(t *testing.T) {
	repo, reporter, _, store := newCartFixture()
	defer store.Close()

	if ok := store.AddToCart(context.Background(), guavaSnapshot()); ok {
		t.Error("expected AddToCart to fail when logged out")
	}
	if repo.UpsertCalls != 0 {
		t.Errorf("expected no repository calls, got %d upserts", repo.UpsertCalls)
	}
	if reporter.Count() != 1 {
		t.Fatalf("expected the auth failure reported once, got %d", reporter.Count())
	}
	if !errors.Is(reporter.Reports()[0].Err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", reporter.Reports()[0].Err)
	}
}

func TestCartStore_LoginTriggersReload(t *testing.T) {
	repo, _, session, store := newCartFixture()
	defer store.Close()

	if repo.ListCalls != 0 {
		t.Fatalf("expected no reload before login, got %d list calls", repo.ListCalls)
	}

	login(session)

	if repo.ListCalls != 1 {
		t.Errorf("expected one reload on login, got %d list calls", repo.ListCalls)
	}
}

func TestCartStore_MutationReloadsAndPublishes(t *testing.T) {
	_, _, session, store := newCartFixture()
	defer store.Close()
	login(session)

	var published []CartState
	unsubscribe := store.Subscribe(func(s CartState) { published = append(published, s) })
	defer unsubscribe()

	if ok := store.AddToCart(context.Background(), guavaSnapshot()); !ok {
		t.Fatal("expected AddToCart to succeed")
	}

	state := store.State()
	if len(state.Items) != 1 {
		t.Fatalf("expected 1 item in state, got %d", len(state.Items))
	}
	if state.Items[0].LineID != "prod-guava" {
		t.Errorf("expected line 'prod-guava', got %q", state.Items[0].LineID)
	}
	if state.Loading {
		t.Error("expected loading false after reload completes")
	}
	if len(published) == 0 {
		t.Error("expected the new state to be published to subscribers")
	}
}

func TestCartStore_FailedMutationDoesNotReload(t *testing.T) {
	repo, _, session, store := newCartFixture()
	defer store.Close()
	login(session)
	listCallsAfterLogin := repo.ListCalls

	repo.UpsertErr = errors.New("connection refused")

	if ok := store.AddToCart(context.Background(), guavaSnapshot()); ok {
		t.Error("expected AddToCart to fail")
	}
	if repo.ListCalls != listCallsAfterLogin {
		t.Errorf("expected no reload after a failed mutation, got %d extra list calls",
			repo.ListCalls-listCallsAfterLogin)
	}
	if store.State().Loading {
		t.Error("expected loading reset to false after failure")
	}
}

func TestCartStore_LogoutResetsWithoutServiceCalls(t *testing.T) {
	repo, _, session, store := newCartFixture()
	defer store.Close()
	login(session)
	store.AddToCart(context.Background(), guavaSnapshot())

	callsBeforeLogout := repo.ListCalls
	session.Clear()

	state := store.State()
	if len(state.Items) != 0 {
		t.Errorf("expected empty state after logout, got %d items", len(state.Items))
	}
	if repo.ListCalls != callsBeforeLogout {
		t.Error("logout must reset state without any remote call")
	}

	// The rows themselves survive logout; only the in-memory view resets.
	if len(repo.Items) != 1 {
		t.Errorf("expected the stored row to survive logout, got %d rows", len(repo.Items))
	}
}

func TestCartStore_ClearBypassesReload(t *testing.T) {
	repo, _, session, store := newCartFixture()
	defer store.Close()
	login(session)
	store.AddToCart(context.Background(), guavaSnapshot())

	callsBeforeClear := repo.ListCalls

	if ok := store.ClearCart(context.Background()); !ok {
		t.Fatal("expected ClearCart to succeed")
	}
	if repo.ListCalls != callsBeforeClear {
		t.Error("Clear must set state directly without a reload")
	}
	if len(store.State().Items) != 0 {
		t.Errorf("expected empty state after clear, got %d items", len(store.State().Items))
	}
}

func TestCartStore_UpdateQuantityVerbatim(t *testing.T) {
	_, _, session, store := newCartFixture()
	defer store.Close()
	login(session)
	store.AddToCart(context.Background(), guavaSnapshot())

	if ok := store.UpdateQuantity(context.Background(), "prod-guava", 5); !ok {
		t.Fatal("expected UpdateQuantity to succeed")
	}
	if got := store.State().Items[0].Quantity; got != 5 {
		t.Errorf("expected quantity 5, got %d", got)
	}
}

func TestCartStore_RemoveFromCart(t *testing.T) {
	_, _, session, store := newCartFixture()
	defer store.Close()
	login(session)
	store.AddToCart(context.Background(), guavaSnapshot())

	if ok := store.RemoveFromCart(context.Background(), "prod-guava"); !ok {
		t.Fatal("expected RemoveFromCart to succeed")
	}
	if len(store.State().Items) != 0 {
		t.Errorf("expected empty state after remove, got %d items", len(store.State().Items))
	}
}

func TestCartStore_SubscribeUnsubscribe(t *testing.T) {
	_, _, session, store := newCartFixture()
	defer store.Close()
	login(session)

	calls := 0
	unsubscribe := store.Subscribe(func(CartState) { calls++ })

	store.AddToCart(context.Background(), guavaSnapshot())
	if calls == 0 {
		t.Fatal("expected subscriber to be notified")
	}

	callsBefore := calls
	unsubscribe()
	store.ClearCart(context.Background())
	if calls != callsBefore {
		t.Error("expected no notifications after unsubscribe")
	}
}
