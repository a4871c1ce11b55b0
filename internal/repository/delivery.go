package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"paquexpress-service/internal/apperr"
	"paquexpress-service/internal/domain"
	"paquexpress-service/internal/ports/deliverytx"
)

// DeliveryRepo runs delivery and assignment writes inside transactions.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DeliveryRepo) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				panic(fmt.Sprintf("%v (rollback: %v)", p, rbErr))
			}
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

var _ deliverytx.Repository = (*TxRepo)(nil)

// GetPackageForUpdate locks and returns the package row, or nil if there is none.
func (r *TxRepo) GetPackageForUpdate(ctx context.Context, id int64) (*domain.Package, error) {
	row := r.tx.QueryRow(ctx, `SELECT `+packageColumns+` FROM packages p WHERE p.id = $1 FOR UPDATE`, id)
	p, err := scanPackage(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package %d for update: %w", id, err)
	}
	return p, nil
}

// UpdatePackageState sets the package state.
func (r *TxRepo) UpdatePackageState(ctx context.Context, id int64, state domain.PackageState) error {
	ct, err := r.tx.Exec(ctx, `UPDATE packages SET state = $2 WHERE id = $1`, id, string(state))
	if err != nil {
		return fmt.Errorf("update package state %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("package %d not found", id)
	}
	return nil
}

// InsertDelivery inserts the evidence record and sets d.ID.
func (r *TxRepo) InsertDelivery(ctx context.Context, d *domain.Delivery) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO deliveries (package_id, user_id, delivered_at, lat, lng, photo_url, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `, d.PackageID, d.UserID, d.DeliveredAt, d.Location.Lat.String(), d.Location.Lng.String(), d.PhotoURL, d.Notes,
	).Scan(&d.ID)
	if err != nil {
		if IsForeignKey(err) {
			return fmt.Errorf("insert delivery: %w", apperr.ErrNotFound)
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// UserExists reports whether a user row with id exists.
func (r *TxRepo) UserExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user %d: %w", id, err)
	}
	return exists, nil
}

// UpsertPackage inserts a package by tracking code or refreshes its destination.
// The state of an existing package is kept. p.ID and p.State are set from the stored row.
func (r *TxRepo) UpsertPackage(ctx context.Context, p *domain.Package) error {
	var state string
	err := r.tx.QueryRow(ctx, `
        INSERT INTO packages (tracking_code, address, dest_lat, dest_lng, state)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (tracking_code) DO UPDATE
        SET address  = EXCLUDED.address,
            dest_lat = COALESCE(EXCLUDED.dest_lat, packages.dest_lat),
            dest_lng = COALESCE(EXCLUDED.dest_lng, packages.dest_lng)
        RETURNING id, state
    `, p.TrackingCode, p.Address,
		nullableDecimal(p.Destination, true), nullableDecimal(p.Destination, false),
		string(domain.StatePending),
	).Scan(&p.ID, &state)
	if err != nil {
		return fmt.Errorf("upsert package %q: %w", p.TrackingCode, err)
	}
	p.State = domain.PackageState(state)
	return nil
}

// InsertAssignment links a package to an agent. It returns false if the link already existed.
func (r *TxRepo) InsertAssignment(ctx context.Context, a *domain.Assignment) (bool, error) {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO assignments (package_id, user_id, assigned_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (package_id, user_id) DO NOTHING
        RETURNING id
    `, a.PackageID, a.UserID, a.AssignedAt).Scan(&a.ID)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		if IsForeignKey(err) {
			return false, fmt.Errorf("insert assignment: %w", apperr.ErrNotFound)
		}
		return false, fmt.Errorf("insert assignment: %w", err)
	}
	return true, nil
}

// GetPackageByTrackingCode locks and returns the package with the given tracking code, or nil.
func (r *TxRepo) GetPackageByTrackingCode(ctx context.Context, code string) (*domain.Package, error) {
	row := r.tx.QueryRow(ctx, `SELECT `+packageColumns+` FROM packages p WHERE p.tracking_code = $1 FOR UPDATE`, code)
	p, err := scanPackage(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package %q: %w", code, err)
	}
	return p, nil
}

// DeleteAssignment removes the link between a package and an agent. It returns false if there was none.
func (r *TxRepo) DeleteAssignment(ctx context.Context, packageID, userID int64) (bool, error) {
	ct, err := r.tx.Exec(ctx, `DELETE FROM assignments WHERE package_id = $1 AND user_id = $2`, packageID, userID)
	if err != nil {
		return false, fmt.Errorf("delete assignment: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}
