package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/masteryhub/mastery-hub-be/internal/apperr"
)

// ErrInvalidCredentials is the single error returned for every token
// validation failure, so callers cannot tell which check rejected the token.
var ErrInvalidCredentials = apperr.New(apperr.Unauthenticated, "Invalid authentication credentials")

// TokenManager issues and validates signed bearer tokens. The secret and
// lifetime come from configuration at construction time.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a manager with the provided signing secret and
// token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Generate creates a signed token whose subject is the username. Expiry is
// computed in UTC; local time never enters the claim set.
func (t *TokenManager) Generate(username string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate parses a token string and returns its subject. Malformed tokens,
// bad signatures, expired tokens, and tokens without a subject all yield
// ErrInvalidCredentials.
func (t *TokenManager) Validate(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidCredentials
	}
	return claims.Subject, nil
}
