package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jask/arsenal/internal/cheat"
)

// Editor appends user-authored cheats to the custom cheats file in the
// documented markdown format.
type Editor struct {
	// File is the markdown file new cheats are appended to.
	File string
}

// NewCheat holds the add-cheat form's field values.
type NewCheat struct {
	Title   string
	Command string
	Tags    []string // e.g. "cat/recon"; written as a #tag line
}

// Append writes the cheat as a markdown section and returns the parsed entity
// for incremental index insertion.
func (e *Editor) Append(vaultName string, nc NewCheat) (cheat.Cheat, error) {
	title := strings.TrimSpace(nc.Title)
	command := strings.TrimSpace(nc.Command)
	if title == "" || command == "" {
		return cheat.Cheat{}, fmt.Errorf("cheat needs a title and a command")
	}

	if err := os.MkdirAll(filepath.Dir(e.File), 0o755); err != nil {
		return cheat.Cheat{}, fmt.Errorf("mkdir cheats dir: %w", err)
	}

	existing, err := os.ReadFile(e.File)
	if err != nil && !os.IsNotExist(err) {
		return cheat.Cheat{}, fmt.Errorf("read %s: %w", e.File, err)
	}

	entry := formatEntry(title, command, nc.Tags)
	f, err := os.OpenFile(e.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return cheat.Cheat{}, fmt.Errorf("open %s: %w", e.File, err)
	}
	if _, err := f.WriteString(entry); err != nil {
		_ = f.Close()
		return cheat.Cheat{}, fmt.Errorf("append %s: %w", e.File, err)
	}
	if err := f.Close(); err != nil {
		return cheat.Cheat{}, fmt.Errorf("close %s: %w", e.File, err)
	}

	// Re-parse the appended entry in file context so the line range and ID
	// match what a full reload would produce.
	parsed := cheat.Parse(string(existing)+entry, vaultName, e.File)
	if len(parsed) == 0 {
		return cheat.Cheat{}, fmt.Errorf("appended cheat did not parse")
	}
	return parsed[len(parsed)-1], nil
}

func formatEntry(title, command string, tags []string) string {
	var b strings.Builder
	b.WriteString("\n## " + title + "\n")
	if len(tags) > 0 {
		for _, tag := range tags {
			b.WriteString("#" + strings.TrimPrefix(strings.TrimSpace(tag), "#") + " ")
		}
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	b.WriteString(command)
	b.WriteString("\n```\n")
	return b.String()
}
