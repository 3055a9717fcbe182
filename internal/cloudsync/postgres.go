package cloudsync

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // registers the postgres:// migrate driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PostgresRemote stores one row per user and table in Postgres.
type PostgresRemote struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresRemote connects to the database at dsn and migrates the schema.
func NewPostgresRemote(ctx context.Context, dsn string, logger *slog.Logger) (*PostgresRemote, error) {
	if err := runMigrations(dsn); err != nil {
		return nil, fmt.Errorf("migrate remote: %w", err)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping remote: %w", err)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to remote", slog.Int("max_conns", int(pool.Config().MaxConns)))
	return &PostgresRemote{pool: pool, logger: logger}, nil
}

func runMigrations(dsn string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (r *PostgresRemote) Close() {
	r.pool.Close()
}

// Pull returns the row of userID in table.
func (r *PostgresRemote) Pull(ctx context.Context, table Table, userID string) (Row, error) {
	if !table.Valid() {
		return Row{}, fmt.Errorf("unknown table %q", table)
	}
	var row Row
	// The table name is one of the Tables constants.
	query := fmt.Sprintf(`SELECT data, updated_at FROM %s WHERE user_id = $1`, table)
	err := r.pool.QueryRow(ctx, query, userID).Scan(&row.Data, &row.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Row{}, ErrNoRow
	}
	if err != nil {
		return Row{}, fmt.Errorf("select %s: %w", table, err)
	}
	return row, nil
}

// Push upserts the row of userID in table. The server sets updated_at.
func (r *PostgresRemote) Push(ctx context.Context, table Table, userID string, data []byte) (time.Time, error) {
	if !table.Valid() {
		return time.Time{}, fmt.Errorf("unknown table %q", table)
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET
			data = excluded.data,
			updated_at = now()
		RETURNING updated_at`, table)
	var updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, userID, data).Scan(&updatedAt); err != nil {
		return time.Time{}, fmt.Errorf("upsert %s: %w", table, err)
	}
	return updatedAt, nil
}
