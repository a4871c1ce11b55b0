// Package auth implements login and bearer-token authorization.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"paquexpress-service/internal/apperr"
	"paquexpress-service/internal/domain"
	"paquexpress-service/internal/logx"
	"paquexpress-service/internal/metrics"
	"paquexpress-service/internal/security/token"
)

// Service authenticates agents and resolves bearer tokens to users.
type Service struct {
	users            userStore
	hasher           passwordHasher
	tokens           tokenIssuer
	operationTimeout time.Duration
	logger           logx.Logger
	attempts         *prometheus.CounterVec
}

// NewService creates a new auth Service. attempts may be nil.
func NewService(
	users userStore,
	hasher passwordHasher,
	tokens tokenIssuer,
	timeout time.Duration,
	logger logx.Logger,
	attempts *prometheus.CounterVec,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		users:            users,
		hasher:           hasher,
		tokens:           tokens,
		operationTimeout: timeout,
		logger:           logger,
		attempts:         attempts,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Login checks the credentials and issues a token whose subject is the user's email.
// Unknown users and wrong passwords both return apperr.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.Session{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.count(metrics.LoginError)
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}
	if u == nil {
		s.reject(email, "user not found")
		return domain.Session{}, apperr.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		s.logger.Warn("password verification failed",
			logx.Int64("user_id", u.ID),
			logx.Err(err),
		)
	}
	if !ok {
		s.reject(email, "wrong password")
		return domain.Session{}, apperr.ErrInvalidCredentials
	}

	if s.hasher.NeedsRehash(u.PasswordHash) {
		s.logger.Warn("user has a legacy password hash", logx.Int64("user_id", u.ID))
	}

	tok, err := s.tokens.Issue(u.Email, 0)
	if err != nil {
		s.count(metrics.LoginError)
		return domain.Session{}, fmt.Errorf("issue token: %w", err)
	}

	s.count(metrics.LoginSuccess)
	s.logger.Info("user logged in",
		logx.String("event", "login"),
		logx.Int64("user_id", u.ID),
		logx.Time("expires_at", tok.ExpiresAt),
	)

	return domain.Session{
		User:      *u,
		Token:     tok.Value,
		TokenType: token.Type,
		ExpiresAt: tok.ExpiresAt,
	}, nil
}

// Authorize resolves a bearer token to an active user.
func (s *Service) Authorize(ctx context.Context, raw string) (*domain.User, error) {
	subject, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u, err := s.users.GetByEmail(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("authorize: %w", err)
	}
	if u == nil {
		return nil, apperr.ErrUserNotFound
	}
	if !u.Active {
		return nil, apperr.ErrUserInactive
	}
	return u, nil
}

// HashPassword returns a digest for plain.
func (s *Service) HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", apperr.ErrInvalid
	}
	h, err := s.hasher.Hash(plain)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return h, nil
}

func (s *Service) reject(email, reason string) {
	s.count(metrics.LoginRejected)
	s.logger.Info("login rejected",
		logx.String("email", email),
		logx.String("reason", reason),
	)
}

func (s *Service) count(result string) {
	if s.attempts != nil {
		s.attempts.WithLabelValues(result).Inc()
	}
}
