package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq" // also registers the postgres driver
)

const schema = `
CREATE TABLE IF NOT EXISTS filters (
    name        TEXT PRIMARY KEY,
    id          UUID NOT NULL,
    mode        TEXT NOT NULL,
    paths       TEXT[] NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL
)`

// Postgres stores filter records in a relational table, one row per
// name. Overwrites are upserts, so collisions resolve last-write-wins
// at the database.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an open database handle.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// OpenPostgres connects using a lib/pq DSN and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{db: db}, nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// EnsureSchema creates the filters table when missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure filters schema: %w", err)
	}
	return nil
}

func (p *Postgres) Put(ctx context.Context, rec Record) error {
	if rec.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO filters (name, id, mode, paths, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE
		SET id = EXCLUDED.id,
		    mode = EXCLUDED.mode,
		    paths = EXCLUDED.paths,
		    description = EXCLUDED.description,
		    created_at = EXCLUDED.created_at`,
		rec.Name, rec.ID, rec.Mode, pq.Array(rec.Paths), rec.Description, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("store filter %q: %w", rec.Name, err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, name string) (Record, error) {
	rec := Record{Name: name}

	err := p.db.QueryRowContext(ctx, `
		SELECT id, mode, paths, description, created_at
		FROM filters
		WHERE name = $1`, name).
		Scan(&rec.ID, &rec.Mode, pq.Array(&rec.Paths), &rec.Description, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return Record{}, fmt.Errorf("load filter %q: %w", name, err)
	}
	return rec, nil
}

func (p *Postgres) List(ctx context.Context) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT name
		FROM filters
		ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("list filters: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list filters: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list filters: %w", err)
	}
	return names, nil
}
