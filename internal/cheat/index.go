package cheat

import (
	"regexp"
	"sort"
	"strings"
)

// CategoryAll is the pseudo-category holding every loaded cheat.
const CategoryAll = "all"

// ToolOther buckets cheats whose command has no recognizable tool token.
const ToolOther = "other"

// Index aggregates parsed cheats into category and tool-tree views.
type Index struct {
	cheats     []Cheat
	categories []string          // "all" first, then first-appearance order
	byCategory map[string][]Cheat
	version    int

	// tool tree cache, rebuilt lazily when version moves
	treeVersion int
	tree        map[string][]Cheat
	tools       []string
}

// NewIndex builds an index over cheats. Category order is first appearance
// across the load order, deterministic for a fixed file order.
func NewIndex(cheats []Cheat) *Index {
	idx := &Index{
		byCategory:  map[string][]Cheat{},
		version:     1,
		treeVersion: 0,
	}
	idx.categories = []string{CategoryAll}
	for _, c := range cheats {
		idx.add(c)
	}
	return idx
}

func (idx *Index) add(c Cheat) {
	idx.cheats = append(idx.cheats, c)
	idx.byCategory[CategoryAll] = append(idx.byCategory[CategoryAll], c)
	for _, tag := range c.Tags {
		if _, seen := idx.byCategory[tag]; !seen {
			idx.categories = append(idx.categories, tag)
		}
		idx.byCategory[tag] = append(idx.byCategory[tag], c)
	}
}

// Append adds one cheat without a full rebuild (the add-cheat editor path).
func (idx *Index) Append(c Cheat) {
	idx.add(c)
	idx.version++
}

// Version increments whenever the cheat set changes.
func (idx *Index) Version() int { return idx.version }

// Len returns the number of cheats loaded.
func (idx *Index) Len() int { return len(idx.cheats) }

// All returns every cheat in load order.
func (idx *Index) All() []Cheat { return idx.cheats }

// Categories returns the category tags, "all" first.
func (idx *Index) Categories() []string { return idx.categories }

// CheatsIn returns the cheats tagged with category, in insertion order.
func (idx *Index) CheatsIn(category string) []Cheat {
	return idx.byCategory[category]
}

// ToolTree groups cheats by inferred tool name. The tree is computed lazily
// and cached until the cheat set changes. Tool names sort alphabetically with
// "other" last.
func (idx *Index) ToolTree() (map[string][]Cheat, []string) {
	if idx.treeVersion == idx.version {
		return idx.tree, idx.tools
	}
	tree := map[string][]Cheat{}
	for _, c := range idx.cheats {
		tool := ToolName(c.Body)
		tree[tool] = append(tree[tool], c)
	}
	tools := make([]string, 0, len(tree))
	for t := range tree {
		if t != ToolOther {
			tools = append(tools, t)
		}
	}
	sort.Strings(tools)
	if _, ok := tree[ToolOther]; ok {
		tools = append(tools, ToolOther)
	}
	idx.tree, idx.tools, idx.treeVersion = tree, tools, idx.version
	return tree, tools
}

// AllParamNames returns the sorted union of every cheat's params that pass
// the seeding filter. It is used to pre-populate the globals store so the
// editor can surface parameters before first use.
func (idx *Index) AllParamNames() []string {
	seen := map[string]struct{}{}
	for _, c := range idx.cheats {
		for _, p := range c.Params {
			if !seedableParam(p) {
				continue
			}
			seen[p] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

var seedNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// seedableParam filters out tokens that look like paths or garbage rather
// than parameter names worth a globals entry.
func seedableParam(name string) bool {
	return len(name) < 30 && seedNamePattern.MatchString(name)
}

// toolPrefixes are wrappers skipped when inferring the tool token.
var toolPrefixes = map[string]struct{}{
	"sudo":   {},
	"env":    {},
	"time":   {},
	"nice":   {},
	"nohup":  {},
	"strace": {},
	"ltrace": {},
}

// ToolName infers the tool from a command body: the first word of the first
// line that is neither a VAR=value assignment nor a common wrapper, with any
// path prefix stripped and lowercased.
func ToolName(body string) string {
	firstLine, _, _ := strings.Cut(strings.TrimSpace(body), "\n")
	for _, word := range strings.Fields(firstLine) {
		if strings.Contains(word, "=") {
			continue
		}
		if _, skip := toolPrefixes[strings.ToLower(word)]; skip {
			continue
		}
		if i := strings.LastIndex(word, "/"); i >= 0 {
			word = word[i+1:]
		}
		if word == "" {
			continue
		}
		return strings.ToLower(word)
	}
	return ToolOther
}
