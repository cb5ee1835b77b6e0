package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"flax/internal/server/migrations"
)

// PostgresPort persists the document as a single jsonb row. The document is
// still read and written whole; PostgreSQL only contributes durability and
// shared access, not sub-document queries.
type PostgresPort struct {
	db *sql.DB
}

func NewPostgresPort(db *sql.DB) *PostgresPort {
	return &PostgresPort{db: db}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

func (p *PostgresPort) Load(ctx context.Context) ([]byte, bool, error) {
	query :=
		`SELECT body FROM store_document
		 WHERE id = 1
		 `

	var data []byte
	err := p.db.QueryRowContext(ctx, query).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("db error: %w", err)
	}

	return data, true, nil
}

func (p *PostgresPort) Save(ctx context.Context, data []byte) error {
	query :=
		`INSERT INTO store_document (id, body, updated_at)
		 VALUES (1, $1, now())
		 ON CONFLICT (id) DO UPDATE SET body = EXCLUDED.body, updated_at = now()
		 `

	if _, err := p.db.ExecContext(ctx, query, data); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
