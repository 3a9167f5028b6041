package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/siddharthaBojanki/greenCart/pkg/auth"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("hunter2!")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "hunter2!" {
		t.Fatal("password stored in plaintext")
	}
	if !auth.CheckPassword(hash, "hunter2!") {
		t.Error("correct password rejected")
	}
	if auth.CheckPassword(hash, "hunter3!") {
		t.Error("wrong password accepted")
	}
}

func TestUserTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-signing-key")

	token, err := auth.GenerateUserToken("64f0c2a9e1b2c3d4e5f60718")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "64f0c2a9e1b2c3d4e5f60718" {
		t.Errorf("UserID = %q", claims.UserID)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-signing-key")

	if _, err := auth.ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "key-one")
	token, err := auth.GenerateSellerToken("seller@greencart.dev")
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("JWT_SECRET", "key-two")
	if _, err := auth.ValidateToken(token); err == nil {
		t.Error("token signed with a different key accepted")
	}
}

func TestCheckSellerCredentialsPlaintext(t *testing.T) {
	if !auth.CheckSellerCredentials("s@x.dev", "pw", "s@x.dev", "pw") {
		t.Error("matching credentials rejected")
	}
	if auth.CheckSellerCredentials("s@x.dev", "pw", "s@x.dev", "nope") {
		t.Error("wrong password accepted")
	}
	if auth.CheckSellerCredentials("s@x.dev", "pw", "other@x.dev", "pw") {
		t.Error("wrong email accepted")
	}
	if auth.CheckSellerCredentials("", "", "", "") {
		t.Error("empty configuration must never authenticate")
	}
}

func TestCheckSellerCredentialsBcrypt(t *testing.T) {
	hash, err := auth.HashPassword("pw")
	if err != nil {
		t.Fatal(err)
	}
	if !auth.CheckSellerCredentials("s@x.dev", hash, "s@x.dev", "pw") {
		t.Error("hashed configuration value rejected the right password")
	}
	if auth.CheckSellerCredentials("s@x.dev", hash, "s@x.dev", hash) {
		t.Error("submitting the hash itself must not authenticate")
	}
}

func TestSessionCookieAttributes(t *testing.T) {
	t.Setenv("APP_ENV", "local")

	rec := httptest.NewRecorder()
	auth.SetSessionCookie(rec, auth.UserCookie, "tok")
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies", len(cookies))
	}
	c := cookies[0]
	if !c.HttpOnly {
		t.Error("cookie must be HTTP-only")
	}
	if c.Secure {
		t.Error("local cookie must not be Secure")
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Error("local cookie must be SameSite=Strict")
	}
}

func TestSessionCookieProductionAttributes(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	rec := httptest.NewRecorder()
	auth.SetSessionCookie(rec, auth.UserCookie, "tok")
	c := rec.Result().Cookies()[0]
	if !c.Secure {
		t.Error("production cookie must be Secure")
	}
	if c.SameSite != http.SameSiteNoneMode {
		t.Error("production cookie must be SameSite=None for the cross-site frontend")
	}
}

func TestClearMatchesSetAttributes(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	setRec := httptest.NewRecorder()
	auth.SetSessionCookie(setRec, auth.UserCookie, "tok")
	set := setRec.Result().Cookies()[0]

	clearRec := httptest.NewRecorder()
	auth.ClearSessionCookie(clearRec, auth.UserCookie)
	cleared := clearRec.Result().Cookies()[0]

	if cleared.MaxAge >= 0 {
		t.Errorf("MaxAge = %d, want negative", cleared.MaxAge)
	}
	if cleared.Path != set.Path || cleared.Secure != set.Secure ||
		cleared.HttpOnly != set.HttpOnly || cleared.SameSite != set.SameSite {
		t.Error("clear attributes must match set attributes or the browser keeps the cookie")
	}
}
