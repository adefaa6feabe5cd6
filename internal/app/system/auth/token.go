// internal/app/system/auth/token.go
package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens issues and verifies HS256 bearer tokens carrying an Identity.
// Tokens are handed out at login for API callers that cannot use cookie
// sessions.
type Tokens struct {
	key []byte
	ttl time.Duration
}

// NewTokens builds a token issuer/verifier from the signing key.
func NewTokens(key string, ttl time.Duration) *Tokens {
	return &Tokens{key: []byte(key), ttl: ttl}
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Issue signs a token for the identity, expiring after the configured TTL.
func (t *Tokens) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := &tokenClaims{
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.MemberID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

// Parse verifies the token and returns the identity it carries.
func (t *Tokens) Parse(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.key, nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return Identity{}, errors.New("invalid token")
	}
	return Identity{MemberID: claims.Subject, Email: claims.Email}, nil
}

// Resolve implements Resolver for "Authorization: Bearer <token>".
func (t *Tokens) Resolve(r *http.Request) (Identity, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return Identity{}, false
	}
	id, err := t.Parse(strings.TrimPrefix(header, prefix))
	if err != nil {
		return Identity{}, false
	}
	return id, true
}
