package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/arsenal/internal/cheat"
	"github.com/jask/arsenal/internal/service"
)

// paramForm fills a cheat's placeholders before dispatch. Values start from
// globals but edits are one-shot overrides, discarded after the command is
// dispatched or the form is cancelled.
type paramForm struct {
	cheat   cheat.Cheat
	names   []string
	values  []string
	cursor  int
	execute bool
}

func newParamForm(c cheat.Cheat, globals map[string]string, execute bool) paramForm {
	f := paramForm{cheat: c, names: c.Params, execute: execute}
	f.values = make([]string, len(c.Params))
	for i, name := range c.Params {
		f.values[i] = globals[name]
	}
	return f
}

func (f paramForm) overrides() map[string]string {
	m := make(map[string]string, len(f.names))
	for i, name := range f.names {
		m[name] = f.values[i]
	}
	return m
}

func (a *App) handleParamsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &a.params
	switch m.String() {
	case "ctrl+c":
		a.saveSession()
		return a, tea.Quit
	case "esc":
		a.state = viewBrowse
		return a, nil
	case "up", "shift+tab":
		if f.cursor > 0 {
			f.cursor--
		}
		return a, nil
	case "down", "tab":
		if f.cursor < len(f.names)-1 {
			f.cursor++
		}
		return a, nil
	case "enter":
		// Form values are one-shot overrides; they are never written back
		// as globals. Only params the store has never seen get seeded.
		res := cheat.Resolve(f.cheat, a.globals, f.overrides())
		cmds := []tea.Cmd{a.seedNames(res.NewParams)}
		if f.execute {
			cmds = append(cmds, a.runCmd(res.Command, true))
		} else {
			cmds = append(cmds, a.copyCmd(res.Command))
		}
		a.state = viewBrowse
		return a, tea.Batch(cmds...)
	}
	switch m.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if v := f.values[f.cursor]; len(v) > 0 {
			f.values[f.cursor] = v[:len(v)-1]
		}
	case tea.KeySpace:
		f.values[f.cursor] += " "
	case tea.KeyRunes:
		f.values[f.cursor] += string(m.Runes)
	}
	return a, nil
}

func (a *App) renderParams() string {
	f := a.params
	action := "copy"
	if f.execute {
		action = "run"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.cheat.Title) + "\n")
	b.WriteString(highlightHoles(cheat.Resolve(f.cheat, a.globals, f.overrides()).Command) + "\n\n")
	for i, name := range f.names {
		marker := "  "
		line := fmt.Sprintf("%-20s %s", name, f.values[i])
		if i == f.cursor {
			marker = "▶ "
			line += searchStyle.Render("▏")
		}
		b.WriteString(marker + line + "\n")
	}
	b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("[enter] %s  [tab] next  [esc] back", action)))
	if a.status != "" {
		b.WriteString("\n" + statusStyle.Render(a.status))
	}
	return b.String()
}

// globalsEditor browses and edits the persisted parameter values.
type globalsEditor struct {
	filter  string
	cursor  int
	editing bool
	name    string
	buf     string
}

func (a *App) openGlobals() {
	a.editor = globalsEditor{}
	a.state = viewGlobals
}

func (a *App) globalNames() []string {
	e := a.editor
	q := strings.ToLower(e.filter)
	var names []string
	for name := range a.globals {
		if q == "" || strings.Contains(strings.ToLower(name), q) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (a *App) handleGlobalsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := &a.editor
	names := a.globalNames()
	if e.cursor >= len(names) {
		e.cursor = 0
	}

	if e.editing {
		switch m.Type {
		case tea.KeyEsc:
			e.editing = false
			return a, nil
		case tea.KeyEnter:
			e.editing = false
			return a, a.setGlobalCmd(e.name, strings.TrimSpace(e.buf))
		case tea.KeyBackspace, tea.KeyCtrlH:
			if len(e.buf) > 0 {
				e.buf = e.buf[:len(e.buf)-1]
			}
		case tea.KeySpace:
			e.buf += " "
		case tea.KeyRunes:
			e.buf += string(m.Runes)
		}
		return a, nil
	}

	switch m.String() {
	case "ctrl+c":
		a.saveSession()
		return a, tea.Quit
	case "esc":
		if e.filter != "" {
			e.filter = ""
			e.cursor = 0
			return a, nil
		}
		a.state = viewBrowse
		return a, nil
	case "up":
		if e.cursor > 0 {
			e.cursor--
		}
		return a, nil
	case "down":
		if e.cursor < len(names)-1 {
			e.cursor++
		}
		return a, nil
	case "enter":
		if len(names) == 0 {
			return a, nil
		}
		e.editing = true
		e.name = names[e.cursor]
		e.buf = a.globals[e.name]
		return a, nil
	}
	switch m.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if len(e.filter) > 0 {
			e.filter = e.filter[:len(e.filter)-1]
			e.cursor = 0
		}
	case tea.KeyRunes:
		e.filter += string(m.Runes)
		e.cursor = 0
	}
	return a, nil
}

func (a *App) renderGlobals() string {
	e := a.editor
	names := a.globalNames()
	var b strings.Builder
	b.WriteString(headerStyle.Render("GLOBAL PARAMETERS") + "\n")
	b.WriteString(searchStyle.Render("> ") + e.filter + searchStyle.Render("▏") + "\n")
	height := a.listHeight()
	offset := clampScroll(e.cursor, 0, height, len(names))
	end := offset + height
	if end > len(names) {
		end = len(names)
	}
	for i := offset; i < end; i++ {
		name := names[i]
		value := a.globals[name]
		if value == "" {
			value = dimStyle.Render("(unset)")
		}
		line := fmt.Sprintf("%-24s %s", name, value)
		if i == e.cursor {
			if e.editing {
				line = fmt.Sprintf("%-24s %s", name, e.buf) + searchStyle.Render("▏")
			}
			line = selectedStyle.Render(line)
		}
		b.WriteString("  " + line + "\n")
	}
	help := "[enter] edit  [esc] back"
	if e.editing {
		help = "[enter] save  [esc] cancel"
	}
	b.WriteString(dimStyle.Render(help))
	if a.status != "" {
		b.WriteString("\n" + statusStyle.Render(a.status))
	}
	return b.String()
}

// vaultPicker switches the active cheat source.
type vaultPicker struct {
	filter string
	cursor int
}

func (a *App) openVaults() {
	a.picker = vaultPicker{}
	a.state = viewVaults
}

func (a *App) vaultNames() []string {
	q := strings.ToLower(a.picker.filter)
	var names []string
	for _, name := range a.services.Library.VaultNames() {
		if q == "" || strings.Contains(strings.ToLower(name), q) {
			names = append(names, name)
		}
	}
	return names
}

func (a *App) handleVaultsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := &a.picker
	names := a.vaultNames()
	if p.cursor >= len(names) {
		p.cursor = 0
	}
	switch m.String() {
	case "ctrl+c":
		a.saveSession()
		return a, tea.Quit
	case "esc":
		a.state = viewBrowse
		return a, nil
	case "up":
		if p.cursor > 0 {
			p.cursor--
		}
		return a, nil
	case "down":
		if p.cursor < len(names)-1 {
			p.cursor++
		}
		return a, nil
	case "enter":
		if len(names) == 0 {
			return a, nil
		}
		a.state = viewBrowse
		return a, a.switchVaultCmd(names[p.cursor])
	}
	switch m.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if len(p.filter) > 0 {
			p.filter = p.filter[:len(p.filter)-1]
			p.cursor = 0
		}
	case tea.KeyRunes:
		p.filter += string(m.Runes)
		p.cursor = 0
	}
	return a, nil
}

func (a *App) renderVaults() string {
	p := a.picker
	names := a.vaultNames()
	active := a.services.Library.ActiveVault()
	var b strings.Builder
	b.WriteString(headerStyle.Render("VAULTS") + "\n")
	b.WriteString(searchStyle.Render("> ") + p.filter + searchStyle.Render("▏") + "\n")
	for i, name := range names {
		line := name
		if name == active {
			line += dimStyle.Render(" (active)")
		}
		if i == p.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString(dimStyle.Render("[enter] open  [esc] back"))
	if a.status != "" {
		b.WriteString("\n" + statusStyle.Render(a.status))
	}
	return b.String()
}

// addForm collects a new custom cheat.
type addForm struct {
	fields [3]string // title, command, tags
	cursor int
}

var addFieldLabels = [3]string{"title", "command", "tags"}

func (a *App) openAdd() {
	a.form = addForm{}
	a.state = viewAdd
}

func (a *App) handleAddKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &a.form
	switch m.String() {
	case "ctrl+c":
		a.saveSession()
		return a, tea.Quit
	case "esc":
		a.state = viewBrowse
		return a, nil
	case "tab", "down":
		f.cursor = (f.cursor + 1) % len(f.fields)
		return a, nil
	case "shift+tab", "up":
		f.cursor = (f.cursor - 1 + len(f.fields)) % len(f.fields)
		return a, nil
	case "enter":
		if f.cursor < len(f.fields)-1 {
			f.cursor++
			return a, nil
		}
		nc := service.NewCheat{
			Title:   f.fields[0],
			Command: strings.ReplaceAll(f.fields[1], `\n`, "\n"),
			Tags:    splitTags(f.fields[2]),
		}
		return a, a.addCheatCmd(nc)
	}
	switch m.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if v := f.fields[f.cursor]; len(v) > 0 {
			f.fields[f.cursor] = v[:len(v)-1]
		}
	case tea.KeySpace:
		f.fields[f.cursor] += " "
	case tea.KeyRunes:
		f.fields[f.cursor] += string(m.Runes)
	}
	return a, nil
}

// splitTags accepts space or comma separated tags, with or without '#'.
func splitTags(input string) []string {
	raw := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	var out []string
	for _, t := range raw {
		t = strings.TrimPrefix(t, "#")
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (a *App) renderAdd() string {
	f := a.form
	var b strings.Builder
	b.WriteString(headerStyle.Render("ADD CHEAT  → "+a.services.Editor.File) + "\n\n")
	for i, label := range addFieldLabels {
		marker := "  "
		line := fmt.Sprintf("%-8s %s", label, f.fields[i])
		if i == f.cursor {
			marker = "▶ "
			line += searchStyle.Render("▏")
		}
		b.WriteString(marker + line + "\n")
	}
	b.WriteString("\n" + dimStyle.Render(`[enter] next/save  [tab] field  [esc] cancel  (\n for newline in command)`))
	if a.status != "" {
		b.WriteString("\n" + statusStyle.Render(a.status))
	}
	return b.String()
}
