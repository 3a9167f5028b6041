package auth

import (
	"net/http"

	"github.com/siddharthaBojanki/greenCart/config"
)

// Cookie names for the two principals.
const (
	UserCookie   = "token"
	SellerCookie = "sellerToken"
)

// cookieAttributes returns the environment-driven attribute set. In
// production the frontend is served cross-site, so SameSite=None with
// Secure; elsewhere Strict keeps CSRF protection without requiring TLS.
func cookieAttributes() (secure bool, sameSite http.SameSite) {
	if config.IsProduction() {
		return true, http.SameSiteNoneMode
	}
	return false, http.SameSiteStrictMode
}

// SetSessionCookie writes an HTTP-only session cookie holding token.
func SetSessionCookie(w http.ResponseWriter, name, token string) {
	secure, sameSite := cookieAttributes()
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	})
}

// ClearSessionCookie expires the named session cookie. The attributes must
// match those used by SetSessionCookie, otherwise browsers silently keep
// the original cookie.
func ClearSessionCookie(w http.ResponseWriter, name string) {
	secure, sameSite := cookieAttributes()
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	})
}

// TokenFromCookie extracts the raw token from the named cookie, or "".
func TokenFromCookie(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
