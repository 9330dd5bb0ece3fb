// Package vault locates and reads cheat sources. A vault is a named set of
// root directories whose markdown files feed the parser.
package vault

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultName is the built-in vault over the configured cheat paths.
const DefaultName = "default"

// Vault is a named collection of source roots.
type Vault struct {
	Name  string
	Paths []string
}

// File is one markdown source file's raw content.
type File struct {
	Path string
	Text string
}

// Registry resolves the set of available vaults: the built-in default,
// persisted custom vaults, and auto-discovered playbook directories. The
// default vault is first; the rest sort by name. Custom vaults shadow
// discovered ones of the same name.
func Registry(defaultPaths []string, custom []Vault, playbookRoots []string) []Vault {
	byName := map[string]Vault{
		DefaultName: {Name: DefaultName, Paths: defaultPaths},
	}
	for _, root := range playbookRoots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			byName[e.Name()] = Vault{Name: e.Name(), Paths: []string{filepath.Join(root, e.Name())}}
		}
	}
	for _, v := range custom {
		if v.Name == DefaultName {
			continue
		}
		byName[v.Name] = v
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		if name != DefaultName {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := []Vault{byName[DefaultName]}
	for _, name := range names {
		out = append(out, byName[name])
	}
	return out
}

// Find returns the vault with the given name, if registered.
func Find(vaults []Vault, name string) (Vault, bool) {
	for _, v := range vaults {
		if v.Name == name {
			return v, true
		}
	}
	return Vault{}, false
}

// Names lists vault names in registry order.
func Names(vaults []Vault) []string {
	out := make([]string, 0, len(vaults))
	for _, v := range vaults {
		out = append(out, v.Name)
	}
	return out
}

// LoadFiles reads every *.md file under the vault's roots, in deterministic
// walk order. READMEs are skipped. A missing or unreadable root degrades to
// fewer files and a warning; it never fails the load.
func (v Vault) LoadFiles() ([]File, []error) {
	var (
		files    []File
		warnings []error
	)
	for _, root := range v.Paths {
		if _, err := os.Stat(root); err != nil {
			if !os.IsNotExist(err) {
				warnings = append(warnings, err)
			}
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				warnings = append(warnings, err)
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
				return nil
			}
			if strings.EqualFold(d.Name(), "readme.md") {
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				warnings = append(warnings, err)
				return nil
			}
			files = append(files, File{Path: path, Text: string(data)})
			return nil
		})
		if err != nil {
			warnings = append(warnings, err)
		}
	}
	return files, warnings
}
