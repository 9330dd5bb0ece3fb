package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/arsenal/internal/cheat"
	"github.com/jask/arsenal/internal/config"
	"github.com/jask/arsenal/internal/database/repository"
	"github.com/jask/arsenal/internal/prefs"
	"github.com/jask/arsenal/internal/service"
)

// App ties together views.
type App struct {
	ctx      context.Context
	cfg      config.Config
	repos    Repos
	services Services
	watcher  *service.Watcher

	state  appState
	width  int
	height int
	keys   keyMap
	help   help.Model

	globals  map[string]string
	query    string
	view     cheat.FilteredView
	catIdx   int
	rows     []row
	cursor   int
	offset   int
	treeView bool
	expanded map[string]struct{}
	status   string

	params  paramForm
	editor  globalsEditor
	picker  vaultPicker
	form    addForm
}

type Repos struct {
	Globals *repository.GlobalRepo
}

type Services struct {
	Library  *service.Library
	Executor *service.Executor
	Editor   *service.Editor
}

type appState string

const (
	viewBrowse  appState = "browse"
	viewParams  appState = "params"
	viewGlobals appState = "globals"
	viewVaults  appState = "vaults"
	viewAdd     appState = "add"
)

// row is one line of the browse list: a cheat, or a tool header in tree view.
type row struct {
	tool  string
	cheat cheat.Cheat
	isCat bool // tool header row
}

func New(ctx context.Context, cfg config.Config, repos Repos, services Services, watcher *service.Watcher, session prefs.Session) *App {
	treeView := session.TreeView
	if session.Vault == "" {
		// first run, no session yet: the config knob decides
		treeView = cfg.UI.TreeView
	}
	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		repos:    repos,
		services: services,
		watcher:  watcher,
		state:    viewBrowse,
		keys:     defaultKeyMap(),
		help:     help.New(),
		globals:  map[string]string{},
		treeView: treeView,
		expanded: map[string]struct{}{},
	}
	a.rebuild()
	if session.Category != "" {
		for i, cat := range a.view.Categories {
			if cat == session.Category {
				a.catIdx = i
				break
			}
		}
		a.rebuildRows()
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadGlobals(), a.seedParams(), a.waitForReload())
}

// rebuild recomputes the filtered view and the visible rows.
func (a *App) rebuild() {
	a.view = cheat.Filter(a.query, a.services.Library.Index())
	if a.catIdx >= len(a.view.Categories) {
		a.catIdx = 0
	}
	a.rebuildRows()
}

func (a *App) category() string {
	if len(a.view.Categories) == 0 {
		return cheat.CategoryAll
	}
	return a.view.Categories[a.catIdx]
}

func (a *App) rebuildRows() {
	cheats := a.view.CheatsByCategory[a.category()]
	a.rows = buildRows(cheats, a.treeView, a.expanded)
	if a.cursor >= len(a.rows) {
		a.cursor = 0
		a.offset = 0
	}
}

// buildRows lays out the list. Flat mode is one row per cheat; tree mode
// groups by tool with collapsible headers, "other" sorted last.
func buildRows(cheats []cheat.Cheat, tree bool, expanded map[string]struct{}) []row {
	if !tree {
		rows := make([]row, 0, len(cheats))
		for _, c := range cheats {
			rows = append(rows, row{cheat: c})
		}
		return rows
	}
	byTool := map[string][]cheat.Cheat{}
	var order []string
	for _, c := range cheats {
		tool := cheat.ToolName(c.Body)
		if _, ok := byTool[tool]; !ok {
			order = append(order, tool)
		}
		byTool[tool] = append(byTool[tool], c)
	}
	sortToolsLast(order, cheat.ToolOther)
	var rows []row
	for _, tool := range order {
		rows = append(rows, row{tool: tool, isCat: true})
		if _, open := expanded[tool]; !open {
			continue
		}
		for _, c := range byTool[tool] {
			rows = append(rows, row{tool: tool, cheat: c})
		}
	}
	return rows
}

func (a *App) selected() (cheat.Cheat, bool) {
	if a.cursor >= len(a.rows) {
		return cheat.Cheat{}, false
	}
	r := a.rows[a.cursor]
	if r.isCat {
		return cheat.Cheat{}, false
	}
	return r.cheat, true
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		return a, nil
	case tea.KeyMsg:
		switch a.state {
		case viewParams:
			return a.handleParamsKey(m)
		case viewGlobals:
			return a.handleGlobalsKey(m)
		case viewVaults:
			return a.handleVaultsKey(m)
		case viewAdd:
			return a.handleAddKey(m)
		default:
			return a.handleBrowseKey(m)
		}
	case globalsMsg:
		a.globals = map[string]string(m)
	case loadedMsg:
		a.catIdx, a.cursor, a.offset = 0, 0, 0
		a.rebuild()
		if a.watcher != nil {
			a.watcher.SetRoots(a.services.Library.ActivePaths())
		}
		a.status = loadStatus(service.LoadResult(m))
		return a, a.seedParams()
	case reloadedMsg:
		res := a.services.Library.Reload()
		a.rebuild()
		a.status = loadStatus(res)
		return a, tea.Batch(a.seedParams(), a.waitForReload())
	case addedMsg:
		a.services.Library.Append(cheat.Cheat(m))
		a.state = viewBrowse
		a.rebuild()
		a.status = "added " + m.Title
		return a, a.seedParams()
	case ranMsg:
		if m.execute {
			a.saveSession()
			return a, tea.Quit
		}
		a.status = "copied to clipboard"
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) View() string {
	switch a.state {
	case viewParams:
		return a.renderParams()
	case viewGlobals:
		return a.renderGlobals()
	case viewVaults:
		return a.renderVaults()
	case viewAdd:
		return a.renderAdd()
	default:
		return a.renderBrowse()
	}
}

// commands

func (a *App) loadGlobals() tea.Cmd {
	return func() tea.Msg {
		g, err := a.repos.Globals.Load(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return globalsMsg(g)
	}
}

// seedParams registers every placeholder name in the corpus so the globals
// editor lists it, without overwriting values already set.
func (a *App) seedParams() tea.Cmd {
	names := a.services.Library.Index().AllParamNames()
	return func() tea.Msg {
		if err := a.repos.Globals.Seed(a.ctx, names); err != nil {
			return errMsg{err}
		}
		g, err := a.repos.Globals.Load(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return globalsMsg(g)
	}
}

// saveTreeViewCmd persists the tree toggle so it becomes the default for
// fresh sessions too.
func (a *App) saveTreeViewCmd() tea.Cmd {
	a.cfg.UI.TreeView = a.treeView
	cfg := a.cfg
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

// seedNames registers names not yet in the globals store, value left empty.
func (a *App) seedNames(names []string) tea.Cmd {
	if len(names) == 0 {
		return nil
	}
	return func() tea.Msg {
		if err := a.repos.Globals.Seed(a.ctx, names); err != nil {
			return errMsg{err}
		}
		g, err := a.repos.Globals.Load(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return globalsMsg(g)
	}
}

func (a *App) waitForReload() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	ch := a.watcher.Reloads()
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return reloadedMsg{}
	}
}

func (a *App) switchVaultCmd(name string) tea.Cmd {
	return func() tea.Msg {
		res, err := a.services.Library.Open(a.ctx, name)
		if err != nil {
			return errMsg{err}
		}
		return loadedMsg(res)
	}
}

func (a *App) runCmd(command string, execute bool) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.services.Executor.Run(command, execute); err != nil {
			return errMsg{err}
		}
		return ranMsg{execute: execute}
	}
}

func (a *App) copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		if err := a.services.Executor.Copy(text); err != nil {
			return errMsg{err}
		}
		return ranMsg{execute: false}
	}
}

func (a *App) setGlobalCmd(name, value string) tea.Cmd {
	return func() tea.Msg {
		if err := a.repos.Globals.Set(a.ctx, name, value); err != nil {
			return errMsg{err}
		}
		g, err := a.repos.Globals.Load(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return globalsMsg(g)
	}
}

func (a *App) addCheatCmd(nc service.NewCheat) tea.Cmd {
	vault := a.services.Library.ActiveVault()
	return func() tea.Msg {
		c, err := a.services.Editor.Append(vault, nc)
		if err != nil {
			return errMsg{err}
		}
		return addedMsg(c)
	}
}

func (a *App) saveSession() {
	_ = prefs.SaveSession(prefs.Session{
		Vault:    a.services.Library.ActiveVault(),
		TreeView: a.treeView,
		Category: a.category(),
	})
}

// messages

type globalsMsg map[string]string

type loadedMsg service.LoadResult

type reloadedMsg struct{}

type addedMsg cheat.Cheat

type ranMsg struct{ execute bool }

type statusMsg string

type errMsg struct{ error }
