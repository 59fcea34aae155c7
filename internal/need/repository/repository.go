package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	commondb "github.com/givehub/server/internal/common/db"
	"github.com/givehub/server/internal/need/domain"
)

type Repository interface {
	Create(ctx context.Context, need domain.Need) error
	List(ctx context.Context, limit int) ([]domain.Need, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, need domain.Need) error {
	start := time.Now()

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO needs (id, title, description, category, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		string(need.ID),
		need.Title,
		need.Description,
		need.Category,
		need.CreatedBy,
		need.CreatedAt,
	)

	return commondb.HandleExecError(err, "create need", "needs", start)
}

func (r *PgRepository) List(ctx context.Context, limit int) ([]domain.Need, error) {
	start := time.Now()

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, title, description, category, created_by, created_at
		 FROM needs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, commondb.HandleExecError(err, "list needs", "needs", start)
	}
	defer rows.Close()

	var needs []domain.Need
	for rows.Next() {
		var need domain.Need
		if err := rows.Scan(&need.ID, &need.Title, &need.Description, &need.Category, &need.CreatedBy, &need.CreatedAt); err != nil {
			return nil, commondb.HandleExecError(err, "scan need", "needs", start)
		}
		needs = append(needs, need)
	}
	if err := rows.Err(); err != nil {
		return nil, commondb.HandleExecError(err, "list needs", "needs", start)
	}

	commondb.MeasureQueryDuration("list needs", "needs", start)
	return needs, nil
}
