package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/nareshwadi/market/market-backend/internal/domain"
	"github.com/nareshwadi/market/market-backend/internal/identity"
	"github.com/nareshwadi/market/market-backend/internal/report"
)

// WishlistState is the observable container state.
type WishlistState struct {
	Items   []*domain.WishlistItem
	Loading bool
}

// WishlistStore is the collection state container for the wishlist. Same
// lifecycle as CartStore: full reload after each successful mutation,
// identity-driven reset on logout.
type WishlistStore struct {
	service     WishlistService
	ident       identity.Provider
	reporter    report.Reporter
	unsubscribe func()

	mu          sync.Mutex
	state       WishlistState
	nextSub     int
	subscribers map[int]func(WishlistState)
}

// WishlistService is the item-service surface the container depends on.
type WishlistService interface {
	List(ctx context.Context, userID uuid.UUID) []*domain.WishlistItem
	Add(ctx context.Context, userID uuid.UUID, snap domain.ItemSnapshot) bool
	Remove(ctx context.Context, userID uuid.UUID, lineID string) bool
	Clear(ctx context.Context, userID uuid.UUID) bool
}

// NewWishlistStore creates a container bound to an identity provider.
func NewWishlistStore(service WishlistService, ident identity.Provider, reporter report.Reporter) *WishlistStore {
	s := &WishlistStore{
		service:     service,
		ident:       ident,
		reporter:    reporter,
		state:       WishlistState{Items: []*domain.WishlistItem{}},
		subscribers: make(map[int]func(WishlistState)),
	}
	s.unsubscribe = ident.OnChange(s.onIdentityChange)
	if p := ident.Current(); p != nil {
		s.Reload(context.Background())
	}
	return s
}

// Close stops tracking identity changes.
func (s *WishlistStore) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// State returns a copy of the current container state.
func (s *WishlistStore) State() WishlistState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to receive every published state. The returned
// function unsubscribes.
func (s *WishlistStore) Subscribe(fn func(WishlistState)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *WishlistStore) onIdentityChange(p *identity.Principal) {
	if p == nil {
		s.publish(WishlistState{Items: []*domain.WishlistItem{}})
		return
	}
	s.Reload(context.Background())
}

// Reload fetches the full collection and publishes it.
func (s *WishlistStore) Reload(ctx context.Context) {
	p := s.ident.Current()
	if p == nil {
		return
	}

	s.setLoading(true)
	items := s.service.List(ctx, p.ID)
	s.publish(WishlistState{Items: items})
}

// AddToWishlist saves a product snapshot, then reloads. Saving a line that is
// already present succeeds without duplicating it.
func (s *WishlistStore) AddToWishlist(ctx context.Context, snap domain.ItemSnapshot) bool {
	p := s.ident.Current()
	if p == nil {
		s.reporter.Report(domain.ErrUnauthorized, "WishlistStore.AddToWishlist")
		return false
	}

	s.setLoading(true)
	ok := s.service.Add(ctx, p.ID, snap)
	if ok {
		items := s.service.List(ctx, p.ID)
		s.publish(WishlistState{Items: items})
	} else {
		s.setLoading(false)
	}
	return ok
}

// RemoveFromWishlist removes one line, then reloads.
func (s *WishlistStore) RemoveFromWishlist(ctx context.Context, lineID string) bool {
	p := s.ident.Current()
	if p == nil {
		s.reporter.Report(domain.ErrUnauthorized, "WishlistStore.RemoveFromWishlist")
		return false
	}

	s.setLoading(true)
	ok := s.service.Remove(ctx, p.ID, lineID)
	if ok {
		items := s.service.List(ctx, p.ID)
		s.publish(WishlistState{Items: items})
	} else {
		s.setLoading(false)
	}
	return ok
}

// Contains reports whether a line is currently in the wishlist. It reads the
// in-memory state only.
func (s *WishlistStore) Contains(lineID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.state.Items {
		if item.LineID == lineID {
			return true
		}
	}
	return false
}

// ClearWishlist empties the wishlist, setting state directly without a reload.
func (s *WishlistStore) ClearWishlist(ctx context.Context) bool {
	p := s.ident.Current()
	if p == nil {
		s.reporter.Report(domain.ErrUnauthorized, "WishlistStore.ClearWishlist")
		return false
	}

	s.setLoading(true)
	ok := s.service.Clear(ctx, p.ID)
	if ok {
		s.publish(WishlistState{Items: []*domain.WishlistItem{}})
	} else {
		s.setLoading(false)
	}
	return ok
}

func (s *WishlistStore) setLoading(loading bool) {
	s.mu.Lock()
	s.state.Loading = loading
	s.mu.Unlock()
}

func (s *WishlistStore) publish(state WishlistState) {
	if state.Items == nil {
		state.Items = []*domain.WishlistItem{}
	}

	s.mu.Lock()
	s.state = state
	fns := make([]func(WishlistState), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
