// Package cheat implements the cheat corpus engine: parsing markdown cheat
// files into command templates, indexing them by category tag and tool,
// filtering them against a live query, and resolving <param> placeholders.
package cheat

import (
	"fmt"

	"github.com/google/uuid"
)

// Cheat is one executable command template parsed from a markdown section.
type Cheat struct {
	ID     string
	Title  string
	Body   string
	Tags   []string
	Params []string
	Vault  string
	File   string
	Line   int // 1-based line of the ## heading, for edit-in-place
}

// HasTag reports whether the cheat carries the given tag.
func (c Cheat) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func cheatID(vault, file string, line int, title string) string {
	key := fmt.Sprintf("%s|%s|%d|%s", vault, file, line, title)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}
