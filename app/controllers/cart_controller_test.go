package controllers_test

import (
	"net/http"
	"testing"

	"github.com/siddharthaBojanki/greenCart/app/controllers"
)

func TestCartUpdateWithoutSessionIs401(t *testing.T) {
	c := controllers.NewCartController()

	rec := postJSON(c.Update, "/api/cart/update", `{"cartItems":{"a":1}}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestUserRegisterValidation(t *testing.T) {
	c := controllers.NewUserController()

	rec := postJSON(c.Register, "/api/user/register",
		`{"name":"J","email":"nope","password":"short"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}
