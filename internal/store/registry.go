package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/nareshwadi/market/market-backend/internal/identity"
	"github.com/nareshwadi/market/market-backend/internal/report"
)

// Stores is the per-principal container pair handed to a session.
type Stores struct {
	Session  *identity.Session
	Cart     *CartStore
	Wishlist *WishlistStore
}

// Registry creates and reference-counts one Stores pair per principal. All
// sessions of one user share the same containers, so a mutation made on one
// connection is published to every subscriber of that user.
type Registry struct {
	cartService     CartService
	wishlistService WishlistService
	reporter        report.Reporter

	mu      sync.Mutex
	entries map[uuid.UUID]*registryEntry
}

type registryEntry struct {
	stores *Stores
	refs   int
}

// NewRegistry creates an empty registry over the two item services.
func NewRegistry(cart CartService, wishlist WishlistService, reporter report.Reporter) *Registry {
	return &Registry{
		cartService:     cart,
		wishlistService: wishlist,
		reporter:        reporter,
		entries:         make(map[uuid.UUID]*registryEntry),
	}
}

// Acquire returns the Stores pair for a principal, creating it on first use.
// The containers load their collections immediately because the session is set
// before they attach.
func (r *Registry) Acquire(p identity.Principal) *Stores {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[p.ID]; ok {
		e.refs++
		return e.stores
	}

	session := identity.NewSession()
	session.Set(&p)

	stores := &Stores{
		Session:  session,
		Cart:     NewCartStore(r.cartService, session, r.reporter),
		Wishlist: NewWishlistStore(r.wishlistService, session, r.reporter),
	}
	r.entries[p.ID] = &registryEntry{stores: stores, refs: 1}
	return stores
}

// Release drops one reference. When the last reference goes the session is
// cleared (resetting both containers) and the pair is discarded.
func (r *Registry) Release(userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[userID]
	if !ok {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}

	e.stores.Session.Clear()
	e.stores.Cart.Close()
	e.stores.Wishlist.Close()
	delete(r.entries, userID)
}

// Active returns the number of principals with live containers.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
