// Package auth authenticates connections: signed identity tokens and the
// directory deciding which peer identities exist.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mood-chat/domain"
	"mood-chat/errors"
)

const issuer = "mood-chat"

// IdentityClaims is the data stored inside an identity token.
type IdentityClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies identity tokens with a shared HMAC secret.
type Tokens struct {
	secret   []byte
	lifetime time.Duration
}

func NewTokens(secret []byte, lifetime time.Duration) *Tokens {
	return &Tokens{secret: secret, lifetime: lifetime}
}

// Generate creates a signed token for a user, expiring after the configured
// lifetime.
func (t *Tokens) Generate(user domain.UserID) (string, error) {
	if err := user.Validate(); err != nil {
		return "", err
	}

	claims := &IdentityClaims{
		UserID: string(user),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	// HS256, HMAC with SHA256.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify validates the signature and expiration of a token string and
// returns the identity it carries.
func (t *Tokens) Verify(tokenString string) (domain.UserID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer))
	if err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return "", errors.ErrInvalidToken
	}

	user := domain.UserID(claims.UserID)
	if err := user.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrInvalidToken, err)
	}
	return user, nil
}
