package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	secret     []byte
	sessionTTL = 72 * time.Hour
)

// Call this once at startup with cfg.Security.JWTSecret
func SetSecret(s string) {
	secret = []byte(s)
}

// SetSessionTTL sets how long issued tokens stay valid.
func SetSessionTTL(d time.Duration) {
	if d > 0 {
		sessionTTL = d
	}
}

func SessionTTL() time.Duration { return sessionTTL }

// Hash & check
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// IsHashed reports whether a stored password is a bcrypt hash rather than
// a plaintext value carried over from the old database.
func IsHashed(stored string) bool {
	if len(stored) != 60 {
		return false
	}
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

// CheckPassword compares pw against a stored bcrypt hash or, for legacy
// rows, against the plaintext in constant time.
func CheckPassword(pw, stored string) bool {
	if IsHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(pw)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(pw), []byte(stored)) == 1
}

// JWT
func IssueToken(email string) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt secret not set")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": email,
		"exp": now.Add(sessionTTL).Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func ParseToken(tok string) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt secret not set")
	}
	parsed, err := jwt.Parse(tok,
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return "", errors.New("invalid token")
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("no sub")
	}
	return sub, nil
}
