package assignments

import (
	"context"

	"paquexpress-service/internal/ports/deliverytx"
)

// TxRunner abstracts running a function within a transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error
}
