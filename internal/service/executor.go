package service

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Dispatch names where a resolved command ended up.
type Dispatch string

const (
	DispatchTmux      Dispatch = "tmux"
	DispatchClipboard Dispatch = "clipboard"
)

// Executor hands a final command string to the outside world: a neighboring
// tmux pane when one exists, the system clipboard otherwise. It never
// inspects the command.
type Executor struct {
	// run is swappable for tests; defaults to real subprocess execution.
	run func(stdin string, name string, args ...string) (string, error)
}

func NewExecutor() *Executor {
	return &Executor{run: runCommand}
}

func runCommand(stdin string, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	out, err := cmd.Output()
	return string(out), err
}

// Run sends command to tmux when available, otherwise copies it. execute
// appends a final Enter so the target shell runs it immediately.
func (e *Executor) Run(command string, execute bool) (Dispatch, error) {
	if e.InTmux() {
		if err := e.SendTmux(command, execute); err == nil {
			return DispatchTmux, nil
		}
	}
	if err := e.Copy(command); err != nil {
		return "", err
	}
	return DispatchClipboard, nil
}

// InTmux reports whether a tmux session is reachable: TMUX env var, a
// tmux/screen TERM, or a live server probe.
func (e *Executor) InTmux() bool {
	if os.Getenv("TMUX") != "" {
		return true
	}
	term := os.Getenv("TERM")
	if strings.Contains(term, "tmux") || strings.Contains(term, "screen") {
		return true
	}
	out, err := e.run("", "tmux", "display-message", "-p", "#{pane_id}")
	return err == nil && strings.TrimSpace(out) != ""
}

// tmuxTarget picks the pane to send to: the next pane when the window has
// more than one, else the last active pane. Relative targets survive pane
// renumbering better than tracked IDs.
func (e *Executor) tmuxTarget() string {
	out, err := e.run("", "tmux", "list-panes")
	if err == nil && len(strings.Split(strings.TrimSpace(out), "\n")) > 1 {
		return ":.+"
	}
	return "{last}"
}

// SendTmux types command into the target pane line by line, literally.
func (e *Executor) SendTmux(command string, execute bool) error {
	target := e.tmuxTarget()
	lines := strings.Split(command, "\n")
	for i, line := range lines {
		if _, err := e.run("", "tmux", "send-keys", "-t", target, "-l", line); err != nil {
			return fmt.Errorf("tmux send-keys: %w", err)
		}
		if i < len(lines)-1 {
			if _, err := e.run("", "tmux", "send-keys", "-t", target, "Enter"); err != nil {
				return fmt.Errorf("tmux send-keys: %w", err)
			}
		}
	}
	if execute {
		if _, err := e.run("", "tmux", "send-keys", "-t", target, "Enter"); err != nil {
			return fmt.Errorf("tmux send-keys: %w", err)
		}
	}
	return nil
}

// Copy places text on the system clipboard via pbcopy or xclip.
func (e *Executor) Copy(text string) error {
	var err error
	if runtime.GOOS == "darwin" {
		_, err = e.run(text, "pbcopy")
	} else {
		_, err = e.run(text, "xclip", "-sel", "clip")
	}
	if err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
