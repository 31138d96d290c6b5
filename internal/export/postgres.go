package export

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// StoredSnapshot is a row of view_snapshots.
type StoredSnapshot struct {
	ID        string    `json:"id"`
	Page      string    `json:"page"`
	Query     string    `json:"query"`
	ItemCount int       `json:"item_count"`
	TakenAt   time.Time `json:"taken_at"`
	Payload   string    `json:"-"`
}

// PostgresDestination keeps every export as a row in view_snapshots so past
// states of a page can be listed and replayed.
type PostgresDestination struct {
	db *sql.DB
}

// NewPostgresDestination opens the database at databaseURL, configures the
// pool, and applies pending migrations.
func NewPostgresDestination(databaseURL string) (*PostgresDestination, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresDestination{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: "cafedash_schema_migrations"})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

func (d *PostgresDestination) Name() string { return "postgres" }

// Close closes the underlying database connection.
func (d *PostgresDestination) Close() error {
	return d.db.Close()
}

// Write inserts one view_snapshots row. Re-writing the same snapshot id is a
// no-op.
func (d *PostgresDestination) Write(ctx context.Context, snap *Snapshot, data []byte) error {
	if snap.ID == "" {
		return errors.New("postgres export: snapshot id is required")
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO view_snapshots (id, page, query, item_count, taken_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`,
		snap.ID, snap.Page, snap.Query, len(snap.Records), snap.TakenAt.UTC(), string(data),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot %s: %w", snap.ID, err)
	}
	return nil
}

// History returns the most recent snapshots of page, newest first, without
// payloads.
func (d *PostgresDestination) History(ctx context.Context, page string, limit int) ([]StoredSnapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, page, query, item_count, taken_at
		FROM view_snapshots
		WHERE page = $1
		ORDER BY taken_at DESC
		LIMIT $2`,
		page, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []StoredSnapshot
	for rows.Next() {
		var s StoredSnapshot
		if err := rows.Scan(&s.ID, &s.Page, &s.Query, &s.ItemCount, &s.TakenAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get returns a stored snapshot including its JSONL payload. It returns
// (nil, nil) when id does not exist.
func (d *PostgresDestination) Get(ctx context.Context, id string) (*StoredSnapshot, error) {
	var s StoredSnapshot
	err := d.db.QueryRowContext(ctx, `
		SELECT id, page, query, item_count, taken_at, payload
		FROM view_snapshots
		WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Page, &s.Query, &s.ItemCount, &s.TakenAt, &s.Payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot %s: %w", id, err)
	}
	return &s, nil
}

// Prune deletes snapshots of page beyond the newest keep rows and returns
// how many were removed.
func (d *PostgresDestination) Prune(ctx context.Context, page string, keep int) (int64, error) {
	res, err := d.db.ExecContext(ctx, `
		DELETE FROM view_snapshots
		WHERE page = $1 AND id NOT IN (
			SELECT id FROM view_snapshots
			WHERE page = $1
			ORDER BY taken_at DESC
			LIMIT $2
		)`,
		page, keep,
	)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	return res.RowsAffected()
}
