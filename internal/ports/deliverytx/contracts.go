package deliverytx

import (
	"context"

	"paquexpress-service/internal/domain"
)

// Repository is the set of operations available inside a delivery/assignment transaction.
type Repository interface {
	GetPackageForUpdate(ctx context.Context, id int64) (*domain.Package, error)
	UpdatePackageState(ctx context.Context, id int64, state domain.PackageState) error
	InsertDelivery(ctx context.Context, d *domain.Delivery) error
	UserExists(ctx context.Context, id int64) (bool, error)
	UpsertPackage(ctx context.Context, p *domain.Package) error
	GetPackageByTrackingCode(ctx context.Context, code string) (*domain.Package, error)
	InsertAssignment(ctx context.Context, a *domain.Assignment) (bool, error)
	DeleteAssignment(ctx context.Context, packageID, userID int64) (bool, error)
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
