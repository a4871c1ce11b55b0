// Package assignments applies package assignment events to the store.
package assignments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"paquexpress-service/internal/apperr"
	"paquexpress-service/internal/domain"
	"paquexpress-service/internal/logx"
	"paquexpress-service/internal/metrics"
	"paquexpress-service/internal/ports/deliverytx"
)

// Processor applies assignment events.
type Processor struct {
	repo             TxRunner
	factory          *actionFactory
	operationTimeout time.Duration
	logger           logx.Logger
	events           *prometheus.CounterVec
	now              func() time.Time
}

// NewProcessor creates a new Processor. events may be nil.
func NewProcessor(repo TxRunner, timeout time.Duration, logger logx.Logger, events *prometheus.CounterVec) *Processor {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{
		repo:             repo,
		operationTimeout: timeout,
		logger:           logger,
		events:           events,
		now:              func() time.Time { return time.Now().UTC() },
	}
	p.factory = newActionFactory(p.onAssigned, p.onUnassigned)
	return p
}

// Handle applies a single Event. Unknown actions are ignored.
// Invalid events return apperr.ErrInvalid, unknown agents apperr.ErrNotFound.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Action)
	if !ok {
		p.count(metrics.EventSkipped)
		p.logger.Warn("unknown assignment action", logx.String("action", e.Action))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.operationTimeout)
	defer cancel()

	result, err := fn(ctx, e)
	switch {
	case err == nil:
		p.count(result)
	case errors.Is(err, apperr.ErrInvalid), errors.Is(err, apperr.ErrNotFound):
		p.count(metrics.EventSkipped)
	default:
		p.count(metrics.EventFailed)
	}
	return err
}

func (p *Processor) onAssigned(ctx context.Context, e Event) (string, error) {
	pkg, err := packageFromEvent(e)
	if err != nil {
		return "", err
	}
	assignedAt := e.AssignedAt
	if assignedAt.IsZero() {
		assignedAt = p.now()
	}

	var created bool
	err = p.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		exists, err := tx.UserExists(ctx, e.AgentID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("agent %d: %w", e.AgentID, apperr.ErrNotFound)
		}
		if err := tx.UpsertPackage(ctx, pkg); err != nil {
			return err
		}
		created, err = tx.InsertAssignment(ctx, &domain.Assignment{
			PackageID:  pkg.ID,
			UserID:     e.AgentID,
			AssignedAt: assignedAt,
		})
		return err
	})
	if err != nil {
		return "", err
	}

	if !created {
		return metrics.EventDuplicate, nil
	}
	p.logger.Info("package assigned",
		logx.String("event", "package_assigned"),
		logx.Int64("package_id", pkg.ID),
		logx.String("tracking_code", pkg.TrackingCode),
		logx.Int64("user_id", e.AgentID),
	)
	return metrics.EventApplied, nil
}

func (p *Processor) onUnassigned(ctx context.Context, e Event) (string, error) {
	code := strings.TrimSpace(e.TrackingCode)
	if code == "" || e.AgentID <= 0 {
		return "", apperr.ErrInvalid
	}

	var removed bool
	err := p.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		pkg, err := tx.GetPackageByTrackingCode(ctx, code)
		if err != nil || pkg == nil {
			return err
		}
		removed, err = tx.DeleteAssignment(ctx, pkg.ID, e.AgentID)
		return err
	})
	if err != nil {
		return "", err
	}
	if !removed {
		return metrics.EventDuplicate, nil
	}
	p.logger.Info("package unassigned",
		logx.String("event", "package_unassigned"),
		logx.String("tracking_code", code),
		logx.Int64("user_id", e.AgentID),
	)
	return metrics.EventApplied, nil
}

func packageFromEvent(e Event) (*domain.Package, error) {
	code := strings.TrimSpace(e.TrackingCode)
	address := strings.TrimSpace(e.Address)
	if code == "" || address == "" || e.AgentID <= 0 {
		return nil, apperr.ErrInvalid
	}
	if (e.Lat == nil) != (e.Lng == nil) {
		return nil, fmt.Errorf("destination needs both lat and lng: %w", apperr.ErrInvalid)
	}

	pkg := &domain.Package{TrackingCode: code, Address: address}
	if e.Lat != nil {
		c, err := domain.NewCoordinates(*e.Lat, *e.Lng)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
		}
		pkg.Destination = &c
	}
	return pkg, nil
}

func (p *Processor) count(result string) {
	if p.events != nil && result != "" {
		p.events.WithLabelValues(result).Inc()
	}
}
