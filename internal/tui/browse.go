package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/arsenal/internal/cheat"
	"github.com/jask/arsenal/internal/service"
)

func (a *App) handleBrowseKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		a.saveSession()
		return a, tea.Quit
	case key.Matches(m, a.keys.Clear):
		if a.query == "" {
			a.saveSession()
			return a, tea.Quit
		}
		a.query = ""
		a.cursor, a.offset = 0, 0
		a.rebuild()
		return a, nil
	case key.Matches(m, a.keys.Run):
		if c, ok := a.selected(); ok {
			return a.openParams(c, true)
		}
		if a.cursor < len(a.rows) && a.rows[a.cursor].isCat {
			a.toggleTool(a.rows[a.cursor].tool)
		}
		return a, nil
	case key.Matches(m, a.keys.CopyWith):
		if c, ok := a.selected(); ok {
			return a.openParams(c, false)
		}
		return a, nil
	case key.Matches(m, a.keys.YankRaw):
		if c, ok := a.selected(); ok {
			return a, a.copyCmd(c.Body)
		}
		return a, nil
	case key.Matches(m, a.keys.TreeView):
		a.treeView = !a.treeView
		a.cursor, a.offset = 0, 0
		a.rebuildRows()
		return a, a.saveTreeViewCmd()
	case key.Matches(m, a.keys.Vaults):
		a.openVaults()
		return a, nil
	case key.Matches(m, a.keys.Globals):
		a.openGlobals()
		return a, nil
	case key.Matches(m, a.keys.Add):
		a.openAdd()
		return a, nil
	case key.Matches(m, a.keys.NextCat):
		if n := len(a.view.Categories); n > 0 {
			a.catIdx = (a.catIdx + 1) % n
			a.cursor, a.offset = 0, 0
			a.rebuildRows()
		}
		return a, nil
	case key.Matches(m, a.keys.PrevCat):
		if n := len(a.view.Categories); n > 0 {
			a.catIdx = (a.catIdx - 1 + n) % n
			a.cursor, a.offset = 0, 0
			a.rebuildRows()
		}
		return a, nil
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}
		return a, nil
	case key.Matches(m, a.keys.PageUp):
		a.cursor -= a.listHeight()
		if a.cursor < 0 {
			a.cursor = 0
		}
		return a, nil
	case key.Matches(m, a.keys.PageDown):
		a.cursor += a.listHeight()
		if a.cursor > len(a.rows)-1 {
			a.cursor = len(a.rows) - 1
		}
		if a.cursor < 0 {
			a.cursor = 0
		}
		return a, nil
	}

	// everything else feeds the search input
	switch m.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if len(a.query) > 0 {
			a.query = a.query[:len(a.query)-1]
			a.cursor, a.offset = 0, 0
			a.rebuild()
		}
	case tea.KeySpace:
		a.query += " "
		a.cursor, a.offset = 0, 0
		a.rebuild()
	case tea.KeyRunes:
		a.query += string(m.Runes)
		a.cursor, a.offset = 0, 0
		a.rebuild()
	}
	return a, nil
}

func (a *App) toggleTool(tool string) {
	if _, ok := a.expanded[tool]; ok {
		delete(a.expanded, tool)
	} else {
		a.expanded[tool] = struct{}{}
	}
	a.rebuildRows()
}

// openParams jumps straight to dispatch when the cheat has nothing to fill.
func (a *App) openParams(c cheat.Cheat, execute bool) (tea.Model, tea.Cmd) {
	if len(c.Params) == 0 {
		res := cheat.Resolve(c, a.globals, nil)
		if execute {
			return a, a.runCmd(res.Command, true)
		}
		return a, a.copyCmd(res.Command)
	}
	a.params = newParamForm(c, a.globals, execute)
	a.state = viewParams
	return a, nil
}

func (a *App) listHeight() int {
	// header, tag bar, search, divider, preview block, status, help
	h := a.height - 10
	if h < 3 {
		h = 3
	}
	return h
}

func (a *App) renderBrowse() string {
	var b strings.Builder

	idx := a.services.Library.Index()
	header := fmt.Sprintf("ARSENAL  vault:%s  cheats:%d", a.services.Library.ActiveVault(), idx.Len())
	b.WriteString(headerStyle.Render(header) + "\n")
	b.WriteString(a.renderTagBar() + "\n")
	b.WriteString(searchStyle.Render("> ") + a.query + searchStyle.Render("▏") + "\n")

	height := a.listHeight()
	a.offset = clampScroll(a.cursor, a.offset, height, len(a.rows))
	end := a.offset + height
	if end > len(a.rows) {
		end = len(a.rows)
	}
	if len(a.rows) == 0 {
		b.WriteString(dimStyle.Render("  (no matches)") + "\n")
	}
	for i := a.offset; i < end; i++ {
		b.WriteString(a.renderRow(i) + "\n")
	}

	b.WriteString(dimStyle.Render(strings.Repeat("─", max(a.width, 20))) + "\n")
	b.WriteString(a.renderPreview() + "\n")
	if a.status != "" {
		b.WriteString(statusStyle.Render(a.status) + "\n")
	}
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

// renderTagBar shows the categories in a window around the active one.
func (a *App) renderTagBar() string {
	cats := a.view.Categories
	if len(cats) == 0 {
		return ""
	}
	lo, hi := tagWindow(a.catIdx, len(cats), 8)
	var parts []string
	if lo > 0 {
		parts = append(parts, dimStyle.Render("…"))
	}
	for i := lo; i < hi; i++ {
		if i == a.catIdx {
			parts = append(parts, tagActive.Render(cats[i]))
		} else {
			parts = append(parts, tagStyle.Render(cats[i]))
		}
	}
	if hi < len(cats) {
		parts = append(parts, dimStyle.Render("…"))
	}
	return strings.Join(parts, "  ")
}

func (a *App) renderRow(i int) string {
	r := a.rows[i]
	if r.isCat {
		marker := "▸"
		if _, open := a.expanded[r.tool]; open {
			marker = "▾"
		}
		line := fmt.Sprintf("%s %s", marker, r.tool)
		if i == a.cursor {
			return selectedStyle.Render(line)
		}
		return toolStyle.Render(line)
	}
	indent := ""
	if a.treeView {
		indent = "  "
	}
	title := truncate(r.cheat.Title, 38)
	cmd := truncate(firstLine(r.cheat.Body), max(a.width-44, 20))
	line := fmt.Sprintf("%s%-38s  %s", indent, title, cmd)
	if i == a.cursor {
		return selectedStyle.Render(line)
	}
	return "  " + line
}

// renderPreview shows the selected cheat with globals substituted; params
// still missing a value keep their <placeholder> form, highlighted.
func (a *App) renderPreview() string {
	c, ok := a.selected()
	if !ok {
		return dimStyle.Render("  select a cheat to preview")
	}
	res := cheat.Resolve(c, a.globals, nil)
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Title))
	if len(c.Tags) > 0 {
		b.WriteString("  " + tagStyle.Render("#"+strings.Join(c.Tags, " #")))
	}
	b.WriteString("\n")
	b.WriteString(highlightHoles(res.Command))
	if len(res.Unresolved) > 0 {
		b.WriteString("\n" + dimStyle.Render("missing: "+strings.Join(res.Unresolved, ", ")))
	}
	return b.String()
}

// highlightHoles colors whole <name> tokens left in a resolved command.
func highlightHoles(command string) string {
	var b strings.Builder
	rest := command
	for {
		open := strings.IndexByte(rest, '<')
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		span := strings.IndexByte(rest[open:], '>')
		if span < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:open])
		b.WriteString(holeStyle.Render(rest[open : open+span+1]))
		rest = rest[open+span+1:]
	}
}

func loadStatus(res service.LoadResult) string {
	s := fmt.Sprintf("%s: %d cheats from %d files", res.Vault, res.Cheats, res.Files)
	if len(res.Warnings) > 0 {
		s += fmt.Sprintf(" (%d warnings)", len(res.Warnings))
	}
	return s
}

// tagWindow picks the [lo,hi) slice of n categories to show, width wide,
// keeping the active index visible.
func tagWindow(active, n, width int) (int, int) {
	if n <= width {
		return 0, n
	}
	lo := active - width/2
	if lo < 0 {
		lo = 0
	}
	if lo+width > n {
		lo = n - width
	}
	return lo, lo + width
}

func clampScroll(cursor, offset, height, total int) int {
	if total == 0 {
		return 0
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+height {
		offset = cursor - height + 1
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func sortToolsLast(tools []string, last string) {
	sort.Slice(tools, func(i, j int) bool {
		if tools[i] == last {
			return false
		}
		if tools[j] == last {
			return true
		}
		return tools[i] < tools[j]
	})
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

func truncate(s string, n int) string {
	if n <= 1 || len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
