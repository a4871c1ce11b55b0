// Package delivery registers delivery evidence and closes packages.
package delivery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"paquexpress-service/internal/apperr"
	"paquexpress-service/internal/domain"
	"paquexpress-service/internal/logx"
	"paquexpress-service/internal/ports/deliverytx"
)

// SuccessMessage is returned to the client after a delivery was registered.
const SuccessMessage = "Entrega registrada correctamente"

// Service - service for registering deliveries.
type Service struct {
	repo             deliveryRepository
	photos           PhotoStore
	names            NameFactory
	operationTimeout time.Duration
	logger           logx.Logger
	registered       prometheus.Counter
	now              func() time.Time
}

// NewDeliveryService - creates a new delivery Service. registered may be nil.
func NewDeliveryService(
	r deliveryRepository,
	store PhotoStore,
	names NameFactory,
	timeout time.Duration,
	logger logx.Logger,
	registered prometheus.Counter,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		photos:           store,
		names:            names,
		operationTimeout: timeout,
		logger:           logger,
		registered:       registered,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Register stores the photo, records the delivery and marks the package delivered.
// The package row is locked for the whole transaction, so a second submission for
// the same package gets apperr.ErrConflict.
func (s *Service) Register(ctx context.Context, actor *domain.User, in domain.DeliverySubmission) (domain.DeliveryResult, error) {
	if actor == nil || actor.ID != in.UserID {
		return domain.DeliveryResult{}, apperr.ErrForbidden
	}
	loc, notes, err := validate(in)
	if err != nil {
		return domain.DeliveryResult{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		result   domain.DeliveryResult
		photoRef string
	)

	err = s.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		pkg, err := tx.GetPackageForUpdate(ctx, in.PackageID)
		if err != nil {
			return err
		}
		if pkg == nil {
			return apperr.ErrNotFound
		}
		if pkg.State == domain.StateDelivered {
			return fmt.Errorf("package %d already delivered: %w", pkg.ID, apperr.ErrConflict)
		}

		now := s.now()
		ref, err := s.photos.Save(ctx, s.names.PhotoName(pkg.ID, now, in.Photo.Filename), in.Photo.Content)
		if err != nil {
			return fmt.Errorf("save photo: %w", err)
		}
		photoRef = ref

		d := &domain.Delivery{
			PackageID:   pkg.ID,
			UserID:      in.UserID,
			DeliveredAt: now,
			Location:    loc,
			PhotoURL:    ref,
			Notes:       notes,
		}
		if err := tx.InsertDelivery(ctx, d); err != nil {
			return err
		}
		if err := tx.UpdatePackageState(ctx, pkg.ID, domain.StateDelivered); err != nil {
			return err
		}

		result = domain.DeliveryResult{DeliveryID: d.ID, PhotoURL: ref}
		return nil
	})
	if err != nil {
		if photoRef != "" {
			if rmErr := s.photos.Remove(photoRef); rmErr != nil {
				s.logger.Error("failed to remove orphan photo",
					logx.String("photo", photoRef),
					logx.Err(rmErr),
				)
			}
		}
		return domain.DeliveryResult{}, err
	}

	if s.registered != nil {
		s.registered.Inc()
	}
	s.logger.Info("delivery registered",
		logx.String("event", "delivery_registered"),
		logx.Int64("delivery_id", result.DeliveryID),
		logx.Int64("package_id", in.PackageID),
		logx.Int64("user_id", in.UserID),
		logx.String("photo", result.PhotoURL),
	)

	return result, nil
}

func validate(in domain.DeliverySubmission) (domain.Coordinates, *string, error) {
	if in.PackageID <= 0 {
		return domain.Coordinates{}, nil, fmt.Errorf("package id: %w", apperr.ErrInvalid)
	}
	loc, err := domain.NewCoordinates(in.Lat, in.Lng)
	if err != nil {
		return domain.Coordinates{}, nil, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}
	if in.Photo.Content == nil || in.Photo.Size <= 0 {
		return domain.Coordinates{}, nil, fmt.Errorf("photo: %w", apperr.ErrInvalid)
	}

	var notes *string
	if n := strings.TrimSpace(in.Notes); n != "" {
		notes = &n
	}
	return loc, notes, nil
}
