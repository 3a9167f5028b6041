package client

import (
	"strings"

	"github.com/siddharthaBojanki/greenCart/app/models"
	"github.com/siddharthaBojanki/greenCart/pkg/collection"
)

// BestSellers returns the first n in-stock products from the catalogue
// cache, in cache order.
func (s *Store) BestSellers(n int) []models.Product {
	s.mu.RLock()
	products := s.products
	s.mu.RUnlock()

	inStock := collection.Filter(products, func(p models.Product) bool {
		return p.InStock
	})
	return collection.Take(inStock, n)
}

// SearchResults returns the products whose name contains the current search
// query, case-insensitively. An empty query returns the whole catalogue.
func (s *Store) SearchResults() []models.Product {
	s.mu.RLock()
	products := s.products
	query := strings.ToLower(strings.TrimSpace(s.searchQuery))
	s.mu.RUnlock()

	if query == "" {
		return products
	}
	return collection.Filter(products, func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), query)
	})
}
