package client_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/siddharthaBojanki/greenCart/app/models"
	"github.com/siddharthaBojanki/greenCart/pkg/testkit"
)

func seedProducts(t *testing.T, names []string, inStock []bool) *testkit.MockTransport {
	t.Helper()
	products := make([]models.Product, len(names))
	for i, name := range names {
		products[i] = models.Product{
			ID:      primitive.NewObjectID(),
			Name:    name,
			InStock: inStock[i],
		}
	}
	mt := testkit.NewMockTransport()
	mt.On("GET", "/api/product/list", testkit.JSON(200, productListBody(products...)))
	return mt
}

func TestBestSellersFiltersOutOfStock(t *testing.T) {
	mt := seedProducts(t,
		[]string{"Apple", "Banana", "Carrot", "Date", "Egg", "Fig", "Grape"},
		[]bool{true, false, true, true, false, true, true},
	)
	s := newTestStore(t, mt)
	s.FetchProducts()

	best := s.BestSellers(5)
	if len(best) != 5 {
		t.Fatalf("got %d best sellers, want 5", len(best))
	}
	want := []string{"Apple", "Carrot", "Date", "Fig", "Grape"}
	for i, p := range best {
		if !p.InStock {
			t.Errorf("best seller %q is out of stock", p.Name)
		}
		if p.Name != want[i] {
			t.Errorf("best[%d] = %q, want %q (catalogue order preserved)", i, p.Name, want[i])
		}
	}
}

func TestBestSellersShortCatalogue(t *testing.T) {
	mt := seedProducts(t, []string{"Apple", "Banana"}, []bool{true, true})
	s := newTestStore(t, mt)
	s.FetchProducts()

	if got := len(s.BestSellers(5)); got != 2 {
		t.Errorf("got %d best sellers, want 2", got)
	}
}

func TestSearchResults(t *testing.T) {
	mt := seedProducts(t,
		[]string{"Green Apple", "Banana", "Apple Juice"},
		[]bool{true, true, true},
	)
	s := newTestStore(t, mt)
	s.FetchProducts()

	s.SetSearchQuery("apple")
	results := s.SearchResults()
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	s.SetSearchQuery("")
	if got := len(s.SearchResults()); got != 3 {
		t.Errorf("empty query should return the whole catalogue, got %d", got)
	}
}
