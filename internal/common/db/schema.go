package db

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Weak references (needs.created_by, donations.need_id) deliberately carry no
// foreign key constraint: a dangling reference is accepted, matching the
// create-only lifecycle of all three tables.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id uuid PRIMARY KEY,
		email text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS needs (
		id uuid PRIMARY KEY,
		title varchar(120) NOT NULL,
		description text NOT NULL,
		category varchar(50) NOT NULL,
		created_by uuid,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS donations (
		id uuid PRIMARY KEY,
		donor_name varchar(120) NOT NULL,
		item varchar(120) NOT NULL,
		quantity integer NOT NULL DEFAULT 1,
		notes text,
		need_id uuid,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_needs_created_at ON needs (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_donations_created_at ON donations (created_at DESC)`,
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
