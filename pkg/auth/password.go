package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// CheckSellerCredentials verifies the configured seller credential pair.
// SELLER_PASSWORD normally holds a bcrypt hash; a plaintext value (local dev)
// falls back to a constant-time comparison so a mismatch never leaks timing.
func CheckSellerCredentials(cfgEmail, cfgPassword, email, password string) bool {
	if cfgEmail == "" || cfgPassword == "" {
		return false
	}

	emailOK := subtle.ConstantTimeCompare([]byte(cfgEmail), []byte(email)) == 1

	var passOK bool
	if looksLikeBcrypt(cfgPassword) {
		passOK = CheckPassword(cfgPassword, password)
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(cfgPassword), []byte(password)) == 1
	}

	return emailOK && passOK
}

func looksLikeBcrypt(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
