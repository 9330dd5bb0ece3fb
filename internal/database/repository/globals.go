// Package repository provides persistence for global variables and custom
// vault definitions.
package repository

import (
	"context"
	"database/sql"
)

// GlobalRepo handles the persisted parameter defaults.
type GlobalRepo struct {
	db *sql.DB
}

func NewGlobalRepo(db *sql.DB) *GlobalRepo {
	return &GlobalRepo{db: db}
}

// Load returns every global as a name -> value map.
func (r *GlobalRepo) Load(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, value FROM globals`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, rows.Err()
}

// Set upserts one global value.
func (r *GlobalRepo) Set(ctx context.Context, name, value string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO globals(name, value, updated_at) VALUES (?, ?, datetime('now'))
	ON CONFLICT(name) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;
	`, name, value)
	return err
}

// Seed inserts empty entries for names not yet present, so the globals editor
// can surface parameters discovered in the corpus before first use.
func (r *GlobalRepo) Seed(ctx context.Context, names []string) error {
	for _, name := range names {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO globals(name, value) VALUES (?, '')`, name)
		if err != nil {
			return err
		}
	}
	return nil
}
