package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/siddharthaBojanki/greenCart/app/models"
	"github.com/siddharthaBojanki/greenCart/client"
	"github.com/siddharthaBojanki/greenCart/pkg/testkit"
)

func newTestStore(t *testing.T, mt *testkit.MockTransport) *client.Store {
	t.Helper()
	s := client.New("http://storefront.test", "$")
	s.API().SetTransport(mt)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Close(ctx) //nolint:errcheck
	})
	return s
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within 2s")
}

func TestAddRemoveClampsAtZero(t *testing.T) {
	s := newTestStore(t, testkit.NewMockTransport())

	// 3 adds, 5 removes: quantity clamps at 0 and the key disappears.
	for i := 0; i < 3; i++ {
		s.AddToCart("apple")
	}
	for i := 0; i < 5; i++ {
		s.RemoveFromCart("apple")
	}

	cart := s.CartItems()
	if _, ok := cart["apple"]; ok {
		t.Errorf("expected key removed at zero, got %v", cart)
	}

	// 4 adds, 2 removes: quantity is the difference.
	for i := 0; i < 4; i++ {
		s.AddToCart("banana")
	}
	for i := 0; i < 2; i++ {
		s.RemoveFromCart("banana")
	}
	if got := s.CartItems()["banana"]; got != 2 {
		t.Errorf("banana quantity = %d, want 2", got)
	}
}

func TestRemoveFromCartAbsentKeyIsNoop(t *testing.T) {
	s := newTestStore(t, testkit.NewMockTransport())

	s.RemoveFromCart("ghost")
	if cart := s.CartItems(); len(cart) != 0 {
		t.Errorf("expected empty cart, got %v", cart)
	}
}

func TestUpdateCartItemZeroKeepsKey(t *testing.T) {
	s := newTestStore(t, testkit.NewMockTransport())

	s.AddToCart("apple")
	s.UpdateCartItem("apple", 0)

	cart := s.CartItems()
	qty, ok := cart["apple"]
	if !ok {
		t.Fatal("direct zero set must keep the entry; only the decrement path deletes")
	}
	if qty != 0 {
		t.Errorf("quantity = %d, want 0", qty)
	}
}

func TestUpdateCartItemSetsDirectlyWithoutValidation(t *testing.T) {
	s := newTestStore(t, testkit.NewMockTransport())

	s.AddToCart("apple")
	s.UpdateCartItem("apple", -3)
	if got := s.CartItems()["apple"]; got != -3 {
		t.Errorf("quantity = %d, want the raw -3; callers own the invariant", got)
	}
}

func TestCartCount(t *testing.T) {
	s := newTestStore(t, testkit.NewMockTransport())

	s.UpdateCartItem("a", 2)
	s.UpdateCartItem("b", 3)
	if got := s.CartCount(); got != 5 {
		t.Errorf("CartCount() = %d, want 5", got)
	}
}

func productListBody(products ...models.Product) string {
	raw, _ := json.Marshal(map[string]interface{}{
		"success":  true,
		"products": products,
	})
	return string(raw)
}

func TestCartAmountTruncatesToTwoDecimals(t *testing.T) {
	oid := primitive.NewObjectID()
	mt := testkit.NewMockTransport()
	mt.On("GET", "/api/product/list", testkit.JSON(200, productListBody(
		models.Product{ID: oid, Name: "Apple", OfferPrice: 10.555, InStock: true},
	)))

	s := newTestStore(t, mt)
	s.FetchProducts()

	s.UpdateCartItem(oid.Hex(), 3)

	// 10.555 × 3 = 31.665 → floor, not round
	if got := s.CartAmount(); got != 31.66 {
		t.Errorf("CartAmount() = %v, want 31.66", got)
	}
}

func TestCartAmountSkipsOrphanedEntries(t *testing.T) {
	known := primitive.NewObjectID()
	mt := testkit.NewMockTransport()
	mt.On("GET", "/api/product/list", testkit.JSON(200, productListBody(
		models.Product{ID: known, Name: "Apple", OfferPrice: 10, InStock: true},
	)))

	s := newTestStore(t, mt)
	s.FetchProducts()

	s.UpdateCartItem(known.Hex(), 2)
	s.UpdateCartItem("gone-from-catalogue", 7)

	if got := s.CartAmount(); got != 20 {
		t.Errorf("CartAmount() = %v, want 20 (orphan skipped)", got)
	}
}

func TestCartAmountIgnoresZeroQuantities(t *testing.T) {
	oid := primitive.NewObjectID()
	mt := testkit.NewMockTransport()
	mt.On("GET", "/api/product/list", testkit.JSON(200, productListBody(
		models.Product{ID: oid, Name: "Apple", OfferPrice: 10, InStock: true},
	)))

	s := newTestStore(t, mt)
	s.FetchProducts()

	s.UpdateCartItem(oid.Hex(), 0)
	if got := s.CartAmount(); got != 0 {
		t.Errorf("CartAmount() = %v, want 0", got)
	}
}

func TestBootstrapDegradesOnFailure(t *testing.T) {
	// No mocks registered: every fetch gets a 404 envelope.
	s := newTestStore(t, testkit.NewMockTransport())

	s.Bootstrap()

	if got := s.Products(); len(got) != 0 {
		t.Errorf("products should stay empty on failed fetch, got %d", len(got))
	}
	if s.User() != nil {
		t.Error("user should stay nil on failed fetch")
	}
	if s.IsSeller() {
		t.Error("seller flag should stay false on failed fetch")
	}
}

func TestBootstrapHydratesAllState(t *testing.T) {
	oid := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	mt := testkit.NewMockTransport()
	mt.On("GET", "/api/seller/is-auth", testkit.JSON(200, `{"success":true}`))
	mt.On("GET", "/api/user/is-auth", testkit.JSON(200, fmt.Sprintf(
		`{"success":true,"user":{"_id":%q,"name":"Jane","email":"jane@example.com","cartItems":{%q:2}}}`,
		userID.Hex(), oid.Hex(),
	)))
	mt.On("GET", "/api/product/list", testkit.JSON(200, productListBody(
		models.Product{ID: oid, Name: "Apple", OfferPrice: 10, InStock: true},
	)))

	s := newTestStore(t, mt)
	s.Bootstrap()

	if !s.IsSeller() {
		t.Error("seller flag not set")
	}
	if s.User() == nil || s.User().Name != "Jane" {
		t.Errorf("user not hydrated: %+v", s.User())
	}
	if got := s.CartItems()[oid.Hex()]; got != 2 {
		t.Errorf("cart not hydrated from user document, got %v", s.CartItems())
	}
	if len(s.Products()) != 1 {
		t.Errorf("products not hydrated, got %d", len(s.Products()))
	}
	testkit.AssertAllMocksCalled(t, mt)
}

// cartRecorder captures every cart overwrite the store pushes.
type cartRecorder struct {
	mu    sync.Mutex
	carts []map[string]int
}

func (r *cartRecorder) responder() testkit.Responder {
	return func(req *http.Request) testkit.MockResponse {
		var body struct {
			CartItems map[string]int `json:"cartItems"`
		}
		raw, _ := io.ReadAll(req.Body)
		json.Unmarshal(raw, &body) //nolint:errcheck

		r.mu.Lock()
		r.carts = append(r.carts, body.CartItems)
		r.mu.Unlock()
		return testkit.JSON(200, `{"success":true,"message":"Cart Updated"}`)
	}
}

func (r *cartRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}

func (r *cartRecorder) last() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.carts) == 0 {
		return nil
	}
	return r.carts[len(r.carts)-1]
}

func TestCartSyncPushesWholeCart(t *testing.T) {
	rec := &cartRecorder{}
	mt := testkit.NewMockTransport()
	mt.OnFunc("POST", "/api/cart/update", rec.responder())

	s := newTestStore(t, mt)
	s.SetUser(&models.User{ID: primitive.NewObjectID(), Name: "Jane"})

	s.UpdateCartItem("a", 2)
	s.UpdateCartItem("b", 3)

	waitFor(t, func() bool {
		last := rec.last()
		return last != nil && last["a"] == 2 && last["b"] == 3
	})
}

func TestCartSyncCoalescesBursts(t *testing.T) {
	rec := &cartRecorder{}
	gate := make(chan struct{})
	mt := testkit.NewMockTransport()
	mt.OnFunc("POST", "/api/cart/update", func(req *http.Request) testkit.MockResponse {
		// Park in-flight syncs so the burst below lands while one is
		// already on the wire.
		<-gate
		return rec.responder()(req)
	})

	s := newTestStore(t, mt)
	s.SetUser(&models.User{ID: primitive.NewObjectID(), Name: "Jane"})

	const burst = 25
	for i := 0; i < burst; i++ {
		s.AddToCart("apple")
	}
	close(gate)

	waitFor(t, func() bool {
		last := rec.last()
		return last != nil && last["apple"] == burst
	})
	// One push may be in flight when the burst starts and one more drains
	// the coalesced signal; anything near the mutation count means the
	// synchroniser stopped batching.
	if got := rec.count(); got > 2 {
		t.Errorf("pushes = %d for %d mutations, want at most 2", got, burst)
	}
}

func TestCartBuiltBeforeLoginSyncsOnSetUser(t *testing.T) {
	rec := &cartRecorder{}
	mt := testkit.NewMockTransport()
	mt.OnFunc("POST", "/api/cart/update", rec.responder())

	s := newTestStore(t, mt)

	// Items added while signed out stay local and must not hit the wire.
	s.AddToCart("pre-login")
	time.Sleep(50 * time.Millisecond)
	if rec.count() != 0 {
		t.Fatalf("cart must not sync without a user, got %d pushes", rec.count())
	}

	// Signing in flushes the local cart instead of hydrating over it.
	s.SetUser(&models.User{
		ID:        primitive.NewObjectID(),
		Name:      "Jane",
		CartItems: map[string]int{"stale-server-item": 9},
	})

	waitFor(t, func() bool {
		last := rec.last()
		return last != nil && last["pre-login"] == 1
	})
	if _, ok := s.CartItems()["stale-server-item"]; ok {
		t.Error("local cart must win over the persisted copy when dirty")
	}
}

func TestSetUserHydratesCleanCart(t *testing.T) {
	s := newTestStore(t, testkit.NewMockTransport())

	s.SetUser(&models.User{
		ID:        primitive.NewObjectID(),
		CartItems: map[string]int{"persisted": 4},
	})

	if got := s.CartItems()["persisted"]; got != 4 {
		t.Errorf("clean cart must hydrate from the user document, got %v", s.CartItems())
	}
}

func TestLogoutClearsSession(t *testing.T) {
	s := newTestStore(t, testkit.NewMockTransport())

	s.SetUser(&models.User{ID: primitive.NewObjectID(), CartItems: map[string]int{"a": 1}})
	s.Logout()

	if s.User() != nil {
		t.Error("user should be nil after logout")
	}
	if len(s.CartItems()) != 0 {
		t.Error("cart should be empty after logout")
	}
}

func TestMutationsDoNotShareMaps(t *testing.T) {
	s := newTestStore(t, testkit.NewMockTransport())

	s.AddToCart("a")
	before := s.CartItems()
	s.AddToCart("a")

	if before["a"] != 1 {
		t.Errorf("earlier snapshot mutated in place: %v", before)
	}
}
