package services

import (
	"context"
	"fmt"

	"github.com/siddharthaBojanki/greenCart/app/repositories"
	"github.com/siddharthaBojanki/greenCart/pkg/metrics"
)

// CartService persists a user's cart server-side. The stored document is
// always replaced with the submitted map, so the client owns the state and
// the last writer wins.
type CartService struct {
	users *repositories.UserRepository
}

func NewCartService() *CartService {
	return &CartService{users: repositories.NewUserRepository()}
}

// Update validates and stores the submitted cart for userID. Quantities must
// be non-negative; zero-quantity entries are stored as sent.
func (s *CartService) Update(ctx context.Context, userID string, items map[string]int) error {
	for id, qty := range items {
		if qty < 0 {
			metrics.CartSyncTotal.WithLabelValues("rejected").Inc()
			return fmt.Errorf("cart: negative quantity %d for item %s", qty, id)
		}
	}

	if err := s.users.UpdateCart(ctx, userID, items); err != nil {
		metrics.CartSyncTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.CartSyncTotal.WithLabelValues("ok").Inc()
	return nil
}
