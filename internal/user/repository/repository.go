package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	commondb "github.com/givehub/server/internal/common/db"
	"github.com/givehub/server/internal/user/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type Repository interface {
	Create(ctx context.Context, user domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Create relies on the unique index on email as the sole arbiter of
// concurrent registrations: exactly one inserter wins, the rest observe
// ErrEmailAlreadyExists with no partial row.
func (r *PgRepository) Create(ctx context.Context, user domain.User) error {
	start := time.Now()

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		string(user.ID),
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			commondb.MeasureQueryDuration("create user", "users", start)
			return ErrEmailAlreadyExists
		}
		return commondb.HandleExecError(err, "create user", "users", start)
	}

	commondb.MeasureQueryDuration("create user", "users", start)
	return nil
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	start := time.Now()

	row := r.pool.QueryRow(
		ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return domain.User{}, commondb.HandleQueryError(err, ErrUserNotFound, "find user by email", "users", start)
	}

	commondb.MeasureQueryDuration("find user by email", "users", start)
	return user, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	start := time.Now()

	row := r.pool.QueryRow(
		ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE id = $1`,
		string(id),
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return domain.User{}, commondb.HandleQueryError(err, ErrUserNotFound, "find user by id", "users", start)
	}

	commondb.MeasureQueryDuration("find user by id", "users", start)
	return user, nil
}
