package httpclient_test

import (
	"testing"

	"github.com/siddharthaBojanki/greenCart/pkg/httpclient"
	"github.com/siddharthaBojanki/greenCart/pkg/testkit"
)

func TestGetJSON(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.On("GET", "/api/product/list", testkit.JSON(200, `{"success":true,"products":[]}`))

	c := httpclient.New("http://storefront.test")
	c.SetTransport(mt)

	resp, err := c.Get("/api/product/list").Send()
	if err != nil {
		t.Fatal(err)
	}
	if !resp.OK() {
		t.Errorf("status = %d", resp.StatusCode)
	}

	var env struct {
		Success bool `json:"success"`
	}
	if err := resp.JSON(&env); err != nil || !env.Success {
		t.Errorf("JSON() = %v, success = %v", err, env.Success)
	}
}

func TestPostBody(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.On("POST", "/api/cart/update", testkit.JSON(200, `{"success":true}`))

	c := httpclient.New("http://storefront.test")
	c.SetTransport(mt)

	resp, err := c.Post("/api/cart/update").
		Body(map[string]interface{}{"cartItems": map[string]int{"a": 1}}).
		Send()
	if err != nil {
		t.Fatal(err)
	}
	if !resp.OK() {
		t.Errorf("status = %d", resp.StatusCode)
	}
	testkit.AssertAllMocksCalled(t, mt)
}

func TestThrowOnNon2xx(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.On("GET", "/missing", testkit.JSON(404, `{"success":false,"message":"Not found"}`))

	c := httpclient.New("http://storefront.test")
	c.SetTransport(mt)

	resp, err := c.Get("/missing").Send()
	if err != nil {
		t.Fatalf("non-2xx is a response, not an error: %v", err)
	}
	if resp.OK() {
		t.Error("OK() should be false for 404")
	}
	if resp.Throw() == nil {
		t.Error("Throw() should return an error for 404")
	}
}
