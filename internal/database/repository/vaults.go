package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// CustomVault is a user-defined vault persisted in sqlite.
type CustomVault struct {
	Name  string
	Paths []string
}

// VaultRepo handles custom vault definitions.
type VaultRepo struct {
	db *sql.DB
}

func NewVaultRepo(db *sql.DB) *VaultRepo {
	return &VaultRepo{db: db}
}

func (r *VaultRepo) List(ctx context.Context) ([]CustomVault, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, paths FROM vaults ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CustomVault
	for rows.Next() {
		var v CustomVault
		var paths string
		if err := rows.Scan(&v.Name, &paths); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(paths), &v.Paths); err != nil {
			return nil, fmt.Errorf("vault %s paths: %w", v.Name, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VaultRepo) Upsert(ctx context.Context, v CustomVault) error {
	paths, err := json.Marshal(v.Paths)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO vaults(name, paths) VALUES (?, ?)
	ON CONFLICT(name) DO UPDATE SET paths=excluded.paths;
	`, v.Name, string(paths))
	return err
}

func (r *VaultRepo) Delete(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vaults WHERE name = ?`, name)
	return err
}
