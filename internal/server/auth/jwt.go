// Package auth verifies bearer tokens issued by the identity provider and
// turns them into user ids.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/projectfiles/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// IdentityVerifier resolves an opaque bearer token into the id of the user
// who presented it.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// JWTVerifier checks HS256 tokens of the shape hosted identity services hand
// out: the user id travels in "sub", the audience in "aud".
type JWTVerifier struct {
	secret   []byte
	audience string
}

// NewJWTVerifier returns a verifier for tokens signed with secret. An empty
// audience disables the "aud" check.
func NewJWTVerifier(secret []byte, audience string) *JWTVerifier {
	return &JWTVerifier{secret: secret, audience: audience}
}

// Verify returns the "sub" claim of a valid token. The subject must be a UUID,
// since owner columns are typed that way. Expired tokens yield
// common.ErrTokenExpired, every other failure common.ErrInvalidToken.
func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}

// GenerateToken signs a token for userID that JWTVerifier accepts. Used by
// tests and local tooling; production tokens come from the identity provider.
func GenerateToken(userID string, secretKey []byte, audience string, validityDuration time.Duration) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
	}
	if audience != "" {
		claims.Audience = jwt.ClaimStrings{audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
