package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	commondb "github.com/givehub/server/internal/common/db"
	"github.com/givehub/server/internal/donation/domain"
)

type Repository interface {
	Create(ctx context.Context, donation domain.Donation) error
	List(ctx context.Context, limit int) ([]domain.Donation, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, donation domain.Donation) error {
	start := time.Now()

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO donations (id, donor_name, item, quantity, notes, need_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(donation.ID),
		donation.DonorName,
		donation.Item,
		donation.Quantity,
		donation.Notes,
		donation.NeedID,
		donation.CreatedAt,
	)

	return commondb.HandleExecError(err, "create donation", "donations", start)
}

func (r *PgRepository) List(ctx context.Context, limit int) ([]domain.Donation, error) {
	start := time.Now()

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, donor_name, item, quantity, notes, need_id, created_at
		 FROM donations ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, commondb.HandleExecError(err, "list donations", "donations", start)
	}
	defer rows.Close()

	var donations []domain.Donation
	for rows.Next() {
		var donation domain.Donation
		if err := rows.Scan(&donation.ID, &donation.DonorName, &donation.Item, &donation.Quantity, &donation.Notes, &donation.NeedID, &donation.CreatedAt); err != nil {
			return nil, commondb.HandleExecError(err, "scan donation", "donations", start)
		}
		donations = append(donations, donation)
	}
	if err := rows.Err(); err != nil {
		return nil, commondb.HandleExecError(err, "list donations", "donations", start)
	}

	commondb.MeasureQueryDuration("list donations", "donations", start)
	return donations, nil
}
