// Package token implements the session token codec: issuing and verifying
// the signed JWT that carries identity claims. It is pure computation and
// performs no I/O; freshness against the live user store is the concern of
// the auth service, not of this package.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// Claims is the canonical identity claim set embedded in every session
// token. All four identity fields are mandatory; a token missing any of
// them is rejected as malformed.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// complete reports whether every identity field is present.
func (c *Claims) complete() bool {
	return c.UserID != "" && c.Email != "" && c.Name != "" && c.Role != ""
}

// Codec signs and verifies session tokens with an HMAC-SHA256 secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a Codec. The secret is mandatory: running without one
// would let anyone mint valid sessions, so an empty secret is a hard error
// surfaced at startup rather than a silent default.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a new token for the given user, valid for the configured TTL.
// It returns the compact token string and its absolute expiry time.
func (c *Codec) Issue(user *domain.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(c.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token: sign: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a compact token string. Failures are mapped
// to the domain taxonomy:
//
//   - domain.ErrExpiredToken     — signature fine, lifetime elapsed
//   - domain.ErrInvalidSignature — signature does not match the secret
//   - domain.ErrMalformedToken   — not a JWT, wrong algorithm, or claims
//     missing a required identity field
//
// Expiry is checked before signature-independent structural issues so that
// a stale-but-genuine token is never misreported as forged.
func (c *Codec) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	switch {
	case err == nil && parsed.Valid:
		// fall through to the claim completeness check
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domain.ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, domain.ErrInvalidSignature
	default:
		return nil, domain.ErrMalformedToken
	}

	if !claims.complete() || !domain.ValidRole(claims.Role) {
		return nil, domain.ErrMalformedToken
	}
	return claims, nil
}
