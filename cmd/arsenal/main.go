package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/arsenal/internal/config"
	"github.com/jask/arsenal/internal/database"
	"github.com/jask/arsenal/internal/database/repository"
	"github.com/jask/arsenal/internal/prefs"
	"github.com/jask/arsenal/internal/service"
	"github.com/jask/arsenal/internal/tui"
	"github.com/jask/arsenal/internal/vault"
)

const usage = `arsenal - keyboard-driven cheat launcher

usage:
  arsenal                 browse cheats
  arsenal --vault NAME    start in the named vault
  arsenal scan IP         set the ip global and exit
  arsenal --help          show this help

keys:
  type         filter cheats
  ←/→ tab      switch tag
  enter        fill params and run (tmux pane, clipboard fallback)
  ctrl+o       fill params and copy
  ctrl+y       copy raw command
  ctrl+v       toggle tool tree
  ctrl+p       switch vault
  ctrl+g       edit global params
  ctrl+a       add a cheat
  esc          clear search / quit
`

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	globalRepo := repository.NewGlobalRepo(db)
	vaultRepo := repository.NewVaultRepo(db)

	startVault := cfg.UI.StartVault
	args := os.Args[1:]
	for len(args) > 0 {
		switch args[0] {
		case "--help", "-h":
			fmt.Print(usage)
			return
		case "scan":
			if len(args) < 2 {
				log.Fatal("usage: arsenal scan IP")
			}
			if err := globalRepo.Set(ctx, "ip", args[1]); err != nil {
				log.Fatalf("set ip: %v", err)
			}
			fmt.Printf("ip = %s\n", args[1])
			return
		case "--vault", "-v":
			if len(args) < 2 {
				log.Fatal("usage: arsenal --vault NAME")
			}
			startVault = args[1]
			args = args[2:]
		default:
			log.Fatalf("unknown argument %q (try --help)", args[0])
		}
	}

	lib := &service.Library{Config: cfg, Vaults: vaultRepo}
	if err := lib.RefreshVaults(ctx); err != nil {
		log.Fatalf("vaults: %v", err)
	}

	session, _ := prefs.LoadSession()
	if startVault == "" {
		startVault = session.Vault
	}
	if startVault == "" {
		startVault = vault.DefaultName
	}

	res, err := lib.Open(ctx, startVault)
	if err != nil && startVault == session.Vault {
		// stale session vault, fall back rather than refuse to start
		log.Printf("warn: %v", err)
		res, err = lib.Open(ctx, vault.DefaultName)
	}
	if err != nil {
		log.Fatalf("open vault: %v", err)
	}
	for _, warn := range res.Warnings {
		log.Printf("warn: %v", warn)
	}

	if err := globalRepo.Seed(ctx, lib.Index().AllParamNames()); err != nil {
		log.Printf("warn: seed params: %v", err)
	}

	watcher, err := service.NewWatcher(lib.ActivePaths())
	if err != nil {
		log.Printf("warn: file watching disabled: %v", err)
		watcher = nil
	} else {
		defer watcher.Close()
	}

	editor := &service.Editor{File: cfg.Vaults.CustomFile}

	p := tea.NewProgram(tui.New(ctx, cfg,
		tui.Repos{Globals: globalRepo},
		tui.Services{Library: lib, Executor: service.NewExecutor(), Editor: editor},
		watcher,
		session,
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
