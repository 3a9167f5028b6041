// Package client is the storefront's application state container: the
// current user, the seller-auth flag, the product cache and the cart, plus
// the synchronisation contract that pushes cart changes back to the server.
//
// The server owns the durable records; the store holds an ephemeral local
// copy for the session and reconciles by full overwrite. Cart mutations are
// applied to a fresh copy of the map, never in place, and every mutation
// emits one event to a single background synchroniser goroutine, which
// coalesces bursts into one authoritative overwrite per batch.
package client

import (
	"context"
	"math"
	"sync"

	"github.com/siddharthaBojanki/greenCart/app/models"
	"github.com/siddharthaBojanki/greenCart/pkg/httpclient"
	"github.com/siddharthaBojanki/greenCart/pkg/logger"
)

// Store holds storefront session state. All exported methods are safe for
// concurrent use.
type Store struct {
	mu          sync.RWMutex
	user        *models.User
	isSeller    bool
	products    []models.Product
	cartItems   map[string]int
	searchQuery string
	currency    string

	api *httpclient.Client

	syncCh chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup

	// cart changed while no user was present; flushed on SetUser
	dirty bool
}

// New creates a store talking to the API at baseURL and starts its
// background cart synchroniser. Call Close to flush and stop it.
func New(baseURL, currency string) *Store {
	s := &Store{
		cartItems: map[string]int{},
		currency:  currency,
		api:       httpclient.New(baseURL),
		syncCh:    make(chan struct{}, 1),
		done:      make(chan struct{}),
	}

	s.wg.Add(1)
	go s.syncLoop()
	return s
}

// API exposes the underlying HTTP client so tests can install a mock
// transport.
func (s *Store) API() *httpclient.Client { return s.api }

// Currency returns the display currency symbol.
func (s *Store) Currency() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currency
}

// SearchQuery returns the current catalogue filter text.
func (s *Store) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

// SetSearchQuery updates the catalogue filter text.
func (s *Store) SetSearchQuery(q string) {
	s.mu.Lock()
	s.searchQuery = q
	s.mu.Unlock()
}

// User returns the signed-in user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsSeller reports whether the seller session check succeeded.
func (s *Store) IsSeller() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isSeller
}

// Products returns the cached catalogue.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// CartItems returns a copy of the current cart.
func (s *Store) CartItems() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCart(s.cartItems)
}

// SetUser installs a signed-in user and hydrates the cart from its persisted
// copy — unless the local cart was already mutated this session, in which
// case the local cart wins and is flushed to the server immediately. That
// flush closes the gap where items added before login would not sync until
// the next mutation.
func (s *Store) SetUser(u *models.User) {
	s.mu.Lock()
	s.user = u
	flush := false
	if u != nil {
		if s.dirty {
			flush = true
		} else if u.CartItems != nil {
			s.cartItems = copyCart(u.CartItems)
		}
	}
	s.mu.Unlock()

	if flush {
		s.requestSync()
	}
}

// Logout drops the user session and cart. Server-side cookie clearing is the
// caller's concern.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.cartItems = map[string]int{}
	s.dirty = false
	s.mu.Unlock()
}

// AddToCart increments the quantity for id, creating the entry at 1.
func (s *Store) AddToCart(id string) {
	s.mutateCart(func(cart map[string]int) {
		cart[id]++
	})
}

// UpdateCartItem sets the quantity for id directly, with no validation at
// this layer; the server rejects negative values on sync. Zero is stored as
// a zero entry, not deleted; only the decrement path removes keys.
func (s *Store) UpdateCartItem(id string, qty int) {
	s.mutateCart(func(cart map[string]int) {
		cart[id] = qty
	})
}

// RemoveFromCart decrements the quantity for id, deleting the key when it
// reaches exactly zero. Absent keys are left alone, so the quantity can
// never go negative through this path.
func (s *Store) RemoveFromCart(id string) {
	s.mutateCart(func(cart map[string]int) {
		qty, ok := cart[id]
		if !ok {
			return
		}
		qty--
		if qty == 0 {
			delete(cart, id)
			return
		}
		if qty > 0 {
			cart[id] = qty
		}
	})
}

// CartCount returns the sum of all quantities.
func (s *Store) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, qty := range s.cartItems {
		total += qty
	}
	return total
}

// CartAmount returns the cart total as offerPrice × quantity over entries
// with quantity > 0, truncated (not rounded) to two decimals. Entries whose
// product is missing from the catalogue cache are skipped.
func (s *Store) CartAmount() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[string]models.Product, len(s.products))
	for _, p := range s.products {
		byID[p.ID.Hex()] = p
	}

	total := 0.0
	for id, qty := range s.cartItems {
		if qty <= 0 {
			continue
		}
		product, ok := byID[id]
		if !ok {
			continue
		}
		total += product.OfferPrice * float64(qty)
	}
	return math.Floor(total*100) / 100
}

// mutateCart applies fn to a copy of the cart and swaps it in, then notifies
// the synchroniser. The old map is never written in place.
func (s *Store) mutateCart(fn func(cart map[string]int)) {
	s.mu.Lock()
	next := copyCart(s.cartItems)
	fn(next)
	s.cartItems = next
	if s.user == nil {
		s.dirty = true
	}
	s.mu.Unlock()

	s.requestSync()
}

// requestSync nudges the synchroniser; a pending nudge absorbs later ones,
// which is what coalesces rapid mutations into one overwrite.
func (s *Store) requestSync() {
	select {
	case s.syncCh <- struct{}{}:
	default:
	}
}

// syncLoop is the single background synchroniser. Draining one event, it
// snapshots the cart and pushes the whole map. One overwrite per logical
// batch; last local state always wins.
func (s *Store) syncLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case <-s.syncCh:
			s.pushCart()
		}
	}
}

func (s *Store) pushCart() {
	s.mu.RLock()
	hasUser := s.user != nil
	snapshot := copyCart(s.cartItems)
	s.mu.RUnlock()

	if !hasUser {
		return
	}

	var env struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	resp, err := s.api.Post("/api/cart/update").
		Body(map[string]interface{}{"cartItems": snapshot}).
		Send()
	if err != nil {
		logger.Warn("store: cart sync failed", "error", err)
		return
	}
	if err := resp.JSON(&env); err != nil || !env.Success {
		logger.Warn("store: cart sync rejected", "message", env.Message)
		return
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}

// Close flushes a pending cart push and stops the synchroniser.
func (s *Store) Close(ctx context.Context) error {
	// one final push if anything is queued
	select {
	case <-s.syncCh:
		s.pushCart()
	default:
	}

	close(s.done)

	closed := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(closed)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-closed:
		return nil
	}
}

func copyCart(cart map[string]int) map[string]int {
	next := make(map[string]int, len(cart))
	for id, qty := range cart {
		next[id] = qty
	}
	return next
}
