// Package token issues and verifies the bearer credentials presented on protected requests.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"paquexpress-service/internal/apperr"
)

// Type is the token type tag returned to clients.
const Type = "bearer"

var signingMethod = jwt.SigningMethodHS256

// Token is a signed credential with its absolute expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Issuer signs and verifies HS256 tokens carrying the user's email as subject.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewIssuer creates an Issuer. A non-positive ttl falls back to one hour.
func NewIssuer(secret string, ttl time.Duration, opts ...Option) *Issuer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	i := &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// TTL returns the default validity window.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a token for subject valid for ttl, or for the default window when ttl <= 0.
func (i *Issuer) Issue(subject string, ttl time.Duration) (Token, error) {
	if strings.TrimSpace(subject) == "" {
		return Token{}, fmt.Errorf("issue token: %w", apperr.ErrInvalid)
	}
	if ttl <= 0 {
		ttl = i.ttl
	}
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(i.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{Value: signed, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Verify returns the subject of a valid token.
// Expiry is checked before the signature, so any token past its expiry yields apperr.ErrExpired.
func (i *Issuer) Verify(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperr.ErrInvalidToken
	}

	var unverified jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &unverified); err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrInvalidToken, err)
	}
	if unverified.ExpiresAt == nil {
		return "", fmt.Errorf("%w: missing exp", apperr.ErrInvalidToken)
	}
	if !i.now().Before(unverified.ExpiresAt.Time) {
		return "", apperr.ErrExpired
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperr.ErrExpired
		}
		return "", fmt.Errorf("%w: %v", apperr.ErrInvalidToken, err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", fmt.Errorf("%w: missing sub", apperr.ErrInvalidToken)
	}
	return claims.Subject, nil
}
