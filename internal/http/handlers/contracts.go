package handlers

import (
	"context"

	"paquexpress-service/internal/domain"
	"paquexpress-service/internal/service/auth"
	"paquexpress-service/internal/service/delivery"
	"paquexpress-service/internal/service/packages"
)

type authUsecase interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	HashPassword(plain string) (string, error)
}

// NewAuthUsecase wires an auth Service into an authUsecase.
func NewAuthUsecase(svc *auth.Service) authUsecase {
	return svc
}

type packageUsecase interface {
	ListAssigned(ctx context.Context, actor *domain.User, userID int64) ([]domain.Package, error)
}

// NewPackageUsecase wires a packages Service into a packageUsecase.
func NewPackageUsecase(svc *packages.Service) packageUsecase {
	return svc
}

type deliveryUsecase interface {
	Register(ctx context.Context, actor *domain.User, in domain.DeliverySubmission) (domain.DeliveryResult, error)
}

// NewDeliveryUsecase wires a delivery Service into a deliveryUsecase.
func NewDeliveryUsecase(svc *delivery.Service) deliveryUsecase {
	return svc
}
