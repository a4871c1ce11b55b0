//go:generate mockgen -source=contracts.go -destination=delivery_mocks_test.go -package=delivery_test

package delivery

import (
	"context"
	"io"
	"time"

	"paquexpress-service/internal/ports/deliverytx"
)

type deliveryRepository interface {
	WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error
}

// PhotoStore persists evidence photos and returns their public reference.
type PhotoStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Remove(ref string) error
}

// NameFactory builds the file name for a delivery photo.
type NameFactory interface {
	PhotoName(packageID int64, at time.Time, filename string) string
}
