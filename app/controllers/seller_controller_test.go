package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/siddharthaBojanki/greenCart/app/controllers"
	"github.com/siddharthaBojanki/greenCart/pkg/auth"
	"github.com/siddharthaBojanki/greenCart/pkg/middleware"
	"github.com/siddharthaBojanki/greenCart/pkg/testkit"
)

func sellerEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SELLER_EMAIL", "seller@greencart.dev")
	t.Setenv("SELLER_PASSWORD", "supersecret")
	t.Setenv("JWT_SECRET", "test-signing-key")
	t.Setenv("APP_ENV", "local")
}

func postJSON(handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSellerLoginSuccess(t *testing.T) {
	sellerEnv(t)
	c := controllers.NewSellerController()

	rec := postJSON(c.Login, "/api/seller/login",
		`{"email":"seller@greencart.dev","password":"supersecret"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	testkit.AssertEnvelope(t, rec.Body.Bytes(), true, "Logged in")

	cookie := findCookie(rec, auth.SellerCookie)
	if cookie == nil {
		t.Fatal("sellerToken cookie not set")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HTTP-only")
	}
	if cookie.Value == "" {
		t.Error("session cookie is empty")
	}

	claims, err := auth.ValidateToken(cookie.Value)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Email != "seller@greencart.dev" {
		t.Errorf("token email claim = %q", claims.Email)
	}
}

func TestSellerLoginWrongPassword(t *testing.T) {
	sellerEnv(t)
	c := controllers.NewSellerController()

	rec := postJSON(c.Login, "/api/seller/login",
		`{"email":"seller@greencart.dev","password":"wrong"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (failure is an envelope, not a transport error)", rec.Code)
	}
	testkit.AssertEnvelope(t, rec.Body.Bytes(), false, "Invalid Credentials")

	if findCookie(rec, auth.SellerCookie) != nil {
		t.Error("no cookie may be set on failed login")
	}
}

func TestSellerLoginWrongEmail(t *testing.T) {
	sellerEnv(t)
	c := controllers.NewSellerController()

	rec := postJSON(c.Login, "/api/seller/login",
		`{"email":"intruder@greencart.dev","password":"supersecret"}`)

	testkit.AssertEnvelope(t, rec.Body.Bytes(), false, "Invalid Credentials")
	if findCookie(rec, auth.SellerCookie) != nil {
		t.Error("no cookie may be set on failed login")
	}
}

func TestSellerLoginValidation(t *testing.T) {
	sellerEnv(t)
	c := controllers.NewSellerController()

	rec := postJSON(c.Login, "/api/seller/login", `{"email":"not-an-email"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestSellerLogoutClearsCookie(t *testing.T) {
	sellerEnv(t)
	c := controllers.NewSellerController()

	login := postJSON(c.Login, "/api/seller/login",
		`{"email":"seller@greencart.dev","password":"supersecret"}`)
	set := findCookie(login, auth.SellerCookie)
	if set == nil {
		t.Fatal("login did not set a cookie")
	}

	logout := postJSON(c.Logout, "/api/seller/logout", "")
	testkit.AssertEnvelope(t, logout.Body.Bytes(), true, "Logged Out")

	cleared := findCookie(logout, auth.SellerCookie)
	if cleared == nil {
		t.Fatal("logout did not touch the cookie")
	}
	if cleared.MaxAge >= 0 {
		t.Errorf("logout cookie MaxAge = %d, want negative (delete)", cleared.MaxAge)
	}
	// Attribute mismatch between set and clear leaves the browser holding
	// the old cookie.
	if cleared.Path != set.Path || cleared.HttpOnly != set.HttpOnly ||
		cleared.Secure != set.Secure || cleared.SameSite != set.SameSite {
		t.Error("clear attributes must match set attributes")
	}
}

func TestSellerAuthMiddleware(t *testing.T) {
	sellerEnv(t)
	c := controllers.NewSellerController()
	guarded := middleware.SellerAuth(http.HandlerFunc(c.IsAuth))

	// No cookie: 401.
	req := httptest.NewRequest(http.MethodGet, "/api/seller/is-auth", nil)
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no cookie: status = %d, want 401", rec.Code)
	}

	// Valid cookie: success envelope.
	token, err := auth.GenerateSellerToken("seller@greencart.dev")
	if err != nil {
		t.Fatal(err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/seller/is-auth", nil)
	req.AddCookie(&http.Cookie{Name: auth.SellerCookie, Value: token})
	rec = httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid cookie: status = %d, want 200", rec.Code)
	}
	testkit.AssertEnvelope(t, rec.Body.Bytes(), true, "")

	// A user token in the seller cookie slot must not pass.
	userToken, err := auth.GenerateUserToken("abc123")
	if err != nil {
		t.Fatal(err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/seller/is-auth", nil)
	req.AddCookie(&http.Cookie{Name: auth.SellerCookie, Value: userToken})
	rec = httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("user token: status = %d, want 401", rec.Code)
	}
}
