package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/siddharthaBojanki/greenCart/config"
	"github.com/siddharthaBojanki/greenCart/pkg/auth"
	"github.com/siddharthaBojanki/greenCart/pkg/response"
)

type userIDKey struct{}
type sellerKey struct{}

// UserIDFromCtx returns the authenticated user's document ID.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// IsSellerCtx reports whether the request carries a valid seller token.
func IsSellerCtx(ctx context.Context) bool {
	ok, _ := ctx.Value(sellerKey{}).(bool)
	return ok
}

// UserAuth guards user routes. It reads the `token` cookie, validates the
// JWT and injects the user ID into the request context. A missing or
// invalid token ends the request with a 401 — the client treats that as
// plain "not logged in", not an error.
func UserAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromCookie(r, auth.UserCookie)
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil || claims.UserID == "" {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SellerAuth guards seller routes. The `sellerToken` cookie must hold a
// valid JWT whose email claim matches the configured seller principal.
func SellerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromCookie(r, auth.SellerCookie)
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil || claims.Email == "" {
			response.Unauthorized(w)
			return
		}

		if subtle.ConstantTimeCompare([]byte(claims.Email), []byte(config.SellerEmail())) != 1 {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), sellerKey{}, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
