package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/siddharthaBojanki/greenCart/app/services"
)

func TestCartUpdateRejectsNegativeQuantity(t *testing.T) {
	s := services.NewCartService()

	err := s.Update(context.Background(), "64f000000000000000000000",
		map[string]int{"prod-1": 2, "prod-2": -1})
	if err == nil {
		t.Fatal("expected error for negative quantity")
	}
	if !strings.Contains(err.Error(), "prod-2") {
		t.Errorf("error should name the offending item, got %q", err)
	}
}
