// Package service wires the cheat engine to its collaborators: vault sources,
// the globals store, tmux/clipboard execution, and the add-cheat editor.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/arsenal/internal/cheat"
	"github.com/jask/arsenal/internal/config"
	"github.com/jask/arsenal/internal/database/repository"
	"github.com/jask/arsenal/internal/vault"
)

// Library owns the active vault and its corpus index. Switching vaults or
// reloading discards and rebuilds the index; the add-cheat path appends
// incrementally.
type Library struct {
	Config config.Config
	Vaults *repository.VaultRepo

	vaults []vault.Vault
	active vault.Vault
	index  *cheat.Index
}

// LoadResult summarizes a (re)build of the corpus.
type LoadResult struct {
	Vault    string
	Files    int
	Cheats   int
	Warnings []error
}

// RefreshVaults rebuilds the vault registry from config, persisted custom
// vaults, and playbook discovery.
func (l *Library) RefreshVaults(ctx context.Context) error {
	var custom []vault.Vault
	if l.Vaults != nil {
		stored, err := l.Vaults.List(ctx)
		if err != nil {
			return fmt.Errorf("list custom vaults: %w", err)
		}
		for _, v := range stored {
			custom = append(custom, vault.Vault{Name: v.Name, Paths: v.Paths})
		}
	}
	l.vaults = vault.Registry(l.Config.Vaults.DefaultPaths, custom, l.Config.Vaults.PlaybookRoots)
	return nil
}

// VaultNames lists the registered vaults, default first.
func (l *Library) VaultNames() []string {
	return vault.Names(l.vaults)
}

// ActiveVault returns the name of the vault backing the current index.
func (l *Library) ActiveVault() string {
	return l.active.Name
}

// Index returns the current corpus index (nil before the first Open).
func (l *Library) Index() *cheat.Index {
	return l.index
}

// Open makes name the active vault and rebuilds the index from its files.
// An unknown name is an error carrying a did-you-mean suggestion when one is
// close enough.
func (l *Library) Open(ctx context.Context, name string) (LoadResult, error) {
	if err := l.RefreshVaults(ctx); err != nil {
		return LoadResult{}, err
	}
	v, ok := vault.Find(l.vaults, name)
	if !ok {
		if s := l.Suggest(name); s != "" {
			return LoadResult{}, fmt.Errorf("unknown vault %q (did you mean %q?)", name, s)
		}
		return LoadResult{}, fmt.Errorf("unknown vault %q", name)
	}
	l.active = v
	return l.rebuild(), nil
}

// Reload rebuilds the index from the active vault's current files.
func (l *Library) Reload() LoadResult {
	return l.rebuild()
}

func (l *Library) rebuild() LoadResult {
	files, warnings := l.active.LoadFiles()
	var cheats []cheat.Cheat
	for _, f := range files {
		cheats = append(cheats, cheat.Parse(f.Text, l.active.Name, f.Path)...)
	}
	l.index = cheat.NewIndex(cheats)
	return LoadResult{
		Vault:    l.active.Name,
		Files:    len(files),
		Cheats:   l.index.Len(),
		Warnings: warnings,
	}
}

// Append adds a freshly authored cheat to the index without a full rebuild.
func (l *Library) Append(c cheat.Cheat) {
	if l.index != nil {
		l.index.Append(c)
	}
}

// ActivePaths returns the active vault's root directories, for file watching.
func (l *Library) ActivePaths() []string {
	return l.active.Paths
}

// Suggest returns the closest registered vault name within edit distance 3,
// or "" when nothing is plausibly close.
func (l *Library) Suggest(name string) string {
	const maxDistance = 3
	best, bestDist := "", maxDistance+1
	for _, candidate := range l.VaultNames() {
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(candidate))
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if bestDist > maxDistance {
		return ""
	}
	return best
}
