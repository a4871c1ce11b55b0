// Package packages lists the packages an agent still has to deliver.
package packages

import (
	"context"
	"fmt"
	"time"

	"paquexpress-service/internal/apperr"
	"paquexpress-service/internal/domain"
	"paquexpress-service/internal/logx"
)

type packageRepository interface {
	ListByAssignee(ctx context.Context, userID int64, state domain.PackageState) ([]domain.Package, error)
}

// Service serves assigned-package listings.
type Service struct {
	repo             packageRepository
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates a new packages Service.
func NewService(repo packageRepository, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{repo: repo, operationTimeout: timeout, logger: logger}
}

// ListAssigned returns the pending packages assigned to userID.
// Agents may only list their own packages; any other id, including
// non-positive ones, is apperr.ErrForbidden.
func (s *Service) ListAssigned(ctx context.Context, actor *domain.User, userID int64) ([]domain.Package, error) {
	if actor == nil || actor.ID != userID {
		return nil, apperr.ErrForbidden
	}

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	list, err := s.repo.ListByAssignee(ctx, userID, domain.StatePending)
	if err != nil {
		return nil, fmt.Errorf("list assigned packages: %w", err)
	}
	s.logger.Debug("assigned packages listed",
		logx.Int64("user_id", userID),
		logx.Int("count", len(list)),
	)
	return list, nil
}
