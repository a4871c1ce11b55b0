package auth

import (
	"context"
	"time"

	"paquexpress-service/internal/domain"
	"paquexpress-service/internal/security/token"
)

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type passwordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) (bool, error)
	NeedsRehash(digest string) bool
}

type tokenIssuer interface {
	Issue(subject string, ttl time.Duration) (token.Token, error)
	Verify(raw string) (string, error)
}
