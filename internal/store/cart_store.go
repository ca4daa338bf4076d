// Package store holds the per-principal collection state containers. Each
// container owns the single source of truth for "what is in this principal's
// collection right now": it reloads fully from the item service after every
// successful mutation and publishes the new state to subscribers. State is
// never patched locally.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/nareshwadi/market/market-backend/internal/domain"
	"github.com/nareshwadi/market/market-backend/internal/identity"
	"github.com/nareshwadi/market/market-backend/internal/report"
)

// CartState is the observable container state.
type CartState struct {
	Items   []*domain.CartItem
	Loading bool
}

// CartStore is the collection state container for the cart. It subscribes to
// identity changes: a principal becoming present triggers a full reload, a
// principal becoming absent resets the state to empty without any remote call.
//
// Mutations are not queued. Two mutations in flight at once each trigger their
// own reload, and the last reload to complete wins the published state.
type CartStore struct {
	service     CartService
	ident       identity.Provider
	reporter    report.Reporter
	unsubscribe func()

	mu          sync.Mutex
	state       CartState
	nextSub     int
	subscribers map[int]func(CartState)
}

// CartService is the item-service surface the container depends on.
type CartService interface {
	List(ctx context.Context, userID uuid.UUID) []*domain.CartItem
	Add(ctx context.Context, userID uuid.UUID, snap domain.ItemSnapshot, quantity int) bool
	Remove(ctx context.Context, userID uuid.UUID, lineID string) bool
	SetQuantity(ctx context.Context, userID uuid.UUID, lineID string, quantity int) bool
	Clear(ctx context.Context, userID uuid.UUID) bool
}

// NewCartStore creates a container bound to an identity provider and starts
// tracking login/logout transitions.
func NewCartStore(service CartService, ident identity.Provider, reporter report.Reporter) *CartStore {
	s := &CartStore{
		service:     service,
		ident:       ident,
		reporter:    reporter,
		state:       CartState{Items: []*domain.CartItem{}},
		subscribers: make(map[int]func(CartState)),
	}
	s.unsubscribe = ident.OnChange(s.onIdentityChange)
	if p := ident.Current(); p != nil {
		s.Reload(context.Background())
	}
	return s
}

// Close stops tracking identity changes.
func (s *CartStore) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// State returns a copy of the current container state.
func (s *CartStore) State() CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to receive every published state. The returned
// function unsubscribes.
func (s *CartStore) Subscribe(fn func(CartState)) func() {
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

func (s *CartStore) onIdentityChange(p *identity.Principal) {
	if p == nil {
		// Logout: reset synchronously, no remote call. An absent identity
		// means the collection is inaccessible, not that it must be cleared.
		s.publish(CartState{Items: []*domain.CartItem{}})
		return
	}
	s.Reload(context.Background())
}

// Reload fetches the full collection and publishes it. A fetch failure leaves
// an empty list (the service's list contract) rather than an error state.
func (s *CartStore) Reload(ctx context.Context) {
	p := s.ident.Current()
	if p == nil {
		return
	}

	s.setLoading(true)
	items := s.service.List(ctx, p.ID)
	s.publish(CartState{Items: items})
}

// AddToCart adds a product snapshot to the cart, then reloads.
func (s *CartStore) AddToCart(ctx context.Context, snap domain.ItemSnapshot) bool {
	p := s.ident.Current()
	if p == nil {
		s.reporter.Report(domain.ErrUnauthorized, "CartStore.AddToCart")
		return false
	}

	s.setLoading(true)
	ok := s.service.Add(ctx, p.ID, snap, 1)
	if ok {
		items := s.service.List(ctx, p.ID)
		s.publish(CartState{Items: items})
	} else {
		s.setLoading(false)
	}
	return ok
}

// RemoveFromCart removes one line, then reloads.
func (s *CartStore) RemoveFromCart(ctx context.Context, lineID string) bool {
	p := s.ident.Current()
	if p == nil {
		s.reporter.Report(domain.ErrUnauthorized, "CartStore.RemoveFromCart")
		return false
	}

	s.setLoading(true)
	ok := s.service.Remove(ctx, p.ID, lineID)
	if ok {
		items := s.service.List(ctx, p.ID)
		s.publish(CartState{Items: items})
	} else {
		s.setLoading(false)
	}
	return ok
}

// UpdateQuantity writes the caller-supplied quantity verbatim, then reloads.
// The quantity floor (translate zero into a remove) is the caller's policy.
func (s *CartStore) UpdateQuantity(ctx context.Context, lineID string, quantity int) bool {
	p := s.ident.Current()
	if p == nil {
		s.reporter.Report(domain.ErrUnauthorized, "CartStore.UpdateQuantity")
		return false
	}

	s.setLoading(true)
	ok := s.service.SetQuantity(ctx, p.ID, lineID, quantity)
	if ok {
		items := s.service.List(ctx, p.ID)
		s.publish(CartState{Items: items})
	} else {
		s.setLoading(false)
	}
	return ok
}

// ClearCart empties the cart. The post-state is known, so the reload is
// skipped and the state set to empty directly.
func (s *CartStore) ClearCart(ctx context.Context) bool {
	p := s.ident.Current()
	if p == nil {
		s.reporter.Report(domain.ErrUnauthorized, "CartStore.ClearCart")
		return false
	}

	s.setLoading(true)
	ok := s.service.Clear(ctx, p.ID)
	if ok {
		s.publish(CartState{Items: []*domain.CartItem{}})
	} else {
		s.setLoading(false)
	}
	return ok
}

func (s *CartStore) setLoading(loading bool) {
	s.mu.Lock()
	s.state.Loading = loading
	s.mu.Unlock()
}

func (s *CartStore) publish(state CartState) {
	if state.Items == nil {
		state.Items = []*domain.CartItem{}
	}

	s.mu.Lock()
	s.state = state
	fns := make([]func(CartState), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
