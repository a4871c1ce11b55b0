package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"paquexpress-service/internal/domain"
)

const packageColumns = `p.id, p.tracking_code, p.address, p.dest_lat, p.dest_lng, p.state, p.created_at`

// PackageRepo represents package repository.
type PackageRepo struct{ db *pgxpool.Pool }

// NewPackageRepo creates a new PackageRepo.
func NewPackageRepo(db *pgxpool.Pool) *PackageRepo { return &PackageRepo{db: db} }

// ListByAssignee returns the packages assigned to userID that are in the given state,
// in assignment order.
func (r *PackageRepo) ListByAssignee(ctx context.Context, userID int64, state domain.PackageState) ([]domain.Package, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+packageColumns+`
        FROM packages p
        JOIN assignments a ON a.package_id = p.id
        WHERE a.user_id = $1
          AND p.state = $2
        ORDER BY a.id
    `, userID, string(state))
	if err != nil {
		return nil, fmt.Errorf("list packages for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]domain.Package, 0)
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanPackage(row pgx.Row) (*domain.Package, error) {
	var (
		p        domain.Package
		lat, lng decimal.NullDecimal
		state    string
	)
	if err := row.Scan(&p.ID, &p.TrackingCode, &p.Address, &lat, &lng, &state, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.State = domain.PackageState(state)
	if lat.Valid && lng.Valid {
		p.Destination = &domain.Coordinates{Lat: lat.Decimal, Lng: lng.Decimal}
	}
	return &p, nil
}

func nullableDecimal(c *domain.Coordinates, lat bool) *string {
	if c == nil {
		return nil
	}
	s := c.Lng.String()
	if lat {
		s = c.Lat.String()
	}
	return &s
}
