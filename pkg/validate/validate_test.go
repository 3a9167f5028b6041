package validate_test

import (
	"testing"

	"github.com/siddharthaBojanki/greenCart/pkg/validate"
)

type registerInput struct {
	Name     string  `json:"name"     validate:"required,min=2,max=100"`
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Category string  `json:"category" validate:"nullable,in=Vegetables|Fruits|Dairy|Bakery"`
	Price    float64 `json:"price"    validate:"nullable,gte=0,lte=100000"`
	Website  string  `json:"website"  validate:"nullable,url"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret123",
		Category: "Fruits",
		Price:    99.5,
		Website:  "https://example.com",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected errors for empty input")
	}
	for _, field := range []string{"name", "email", "password"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("missing error for %q: %v", field, errs)
		}
	}
	// Nullable fields stay silent when empty.
	for _, field := range []string{"category", "price", "website"} {
		if _, ok := errs[field]; ok {
			t.Errorf("unexpected error for nullable %q: %v", field, errs)
		}
	}
}

func TestEmailRule(t *testing.T) {
	errs := validate.Struct(registerInput{
		Name:     "Jane",
		Email:    "not-an-email",
		Password: "secret123",
	})
	if errs["email"] == "" {
		t.Errorf("bad email passed: %v", errs)
	}
}

func TestMinRuleOnStrings(t *testing.T) {
	errs := validate.Struct(registerInput{
		Name:     "J",
		Email:    "jane@example.com",
		Password: "short",
	})
	if errs["name"] == "" {
		t.Error("one-character name passed min=2")
	}
	if errs["password"] == "" {
		t.Error("short password passed min=8")
	}
}

func TestInRule(t *testing.T) {
	errs := validate.Struct(registerInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "secret123",
		Category: "Gadgets",
	})
	if errs["category"] == "" {
		t.Errorf("unlisted category passed: %v", errs)
	}
}

func TestPointerToStruct(t *testing.T) {
	errs := validate.Struct(&registerInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "secret123",
	})
	if validate.HasErrors(errs) {
		t.Errorf("pointer input failed: %v", errs)
	}
}
