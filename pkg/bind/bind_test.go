package bind_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/siddharthaBojanki/greenCart/pkg/bind"
)

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestBindValid(t *testing.T) {
	req := httptest.NewRequest("POST", "/login",
		strings.NewReader(`{"email":"jane@example.com","password":"pw"}`))

	var in loginInput
	errs, err := bind.JSON(req, &in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if in.Email != "jane@example.com" {
		t.Errorf("email = %q", in.Email)
	}
}

func TestBindValidationFailure(t *testing.T) {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"email":"nope"}`))

	var in loginInput
	errs, err := bind.JSON(req, &in)
	if err != nil {
		t.Fatalf("validation failures must not be transport errors: %v", err)
	}
	if errs["email"] == "" || errs["password"] == "" {
		t.Errorf("expected field errors, got %v", errs)
	}
}

func TestBindMalformedBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{not json`))

	var in loginInput
	if _, err := bind.JSON(req, &in); err == nil {
		t.Error("malformed body must surface as an error")
	}
}
