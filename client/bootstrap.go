package client

import (
	"sync"

	"github.com/siddharthaBojanki/greenCart/app/models"
	"github.com/siddharthaBojanki/greenCart/pkg/logger"
)

// Bootstrap hydrates the store on startup: seller-auth check, user-auth plus
// persisted cart, and the product catalogue, fetched concurrently with no
// ordering between them. Every failure degrades its piece of state to the
// empty default; an unauthenticated session is normal, not an error.
func (s *Store) Bootstrap() {
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		s.fetchSeller()
	}()
	go func() {
		defer wg.Done()
		s.fetchUser()
	}()
	go func() {
		defer wg.Done()
		s.FetchProducts()
	}()

	wg.Wait()
}

func (s *Store) fetchSeller() {
	var env struct {
		Success bool `json:"success"`
	}

	resp, err := s.api.Get("/api/seller/is-auth").Send()
	if err != nil || resp.JSON(&env) != nil {
		s.setSeller(false)
		return
	}
	s.setSeller(env.Success)
}

func (s *Store) setSeller(ok bool) {
	s.mu.Lock()
	s.isSeller = ok
	s.mu.Unlock()
}

func (s *Store) fetchUser() {
	var env struct {
		Success bool        `json:"success"`
		User    models.User `json:"user"`
	}

	resp, err := s.api.Get("/api/user/is-auth").Send()
	if err != nil || resp.JSON(&env) != nil || !env.Success {
		// not signed in
		s.SetUser(nil)
		return
	}
	s.SetUser(&env.User)
}

// FetchProducts refreshes the catalogue cache. On failure the previous cache
// is kept (empty on first load).
func (s *Store) FetchProducts() {
	var env struct {
		Success  bool             `json:"success"`
		Message  string           `json:"message"`
		Products []models.Product `json:"products"`
	}

	resp, err := s.api.Get("/api/product/list").Send()
	if err != nil {
		logger.Warn("store: product fetch failed", "error", err)
		return
	}
	if err := resp.JSON(&env); err != nil || !env.Success {
		logger.Warn("store: product fetch rejected", "message", env.Message)
		return
	}

	s.mu.Lock()
	s.products = env.Products
	s.mu.Unlock()
}
