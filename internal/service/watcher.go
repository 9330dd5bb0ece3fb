package service

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the corpus when markdown under the active vault changes.
// Bursts of filesystem events (editor save, git checkout) are coalesced into
// a single notification.
type Watcher struct {
	fsw     *fsnotify.Watcher
	reloads chan struct{}
	done    chan struct{}
}

const watchDebounce = 250 * time.Millisecond

// NewWatcher watches roots (recursively) for markdown changes.
func NewWatcher(roots []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:     fsw,
		reloads: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	w.addRoots(roots)
	go w.loop()
	return w, nil
}

func (w *Watcher) addRoots(roots []string) {
	for _, root := range roots {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				_ = w.fsw.Add(path)
			}
			return nil
		})
	}
}

// SetRoots repoints the watcher at a different vault's roots, dropping every
// existing watch first. Used when the active vault changes.
func (w *Watcher) SetRoots(roots []string) {
	for _, watched := range w.fsw.WatchList() {
		_ = w.fsw.Remove(watched)
	}
	w.addRoots(roots)
}

// Reloads delivers one value per settled burst of vault changes.
func (w *Watcher) Reloads() <-chan struct{} {
	return w.reloads
}

func (w *Watcher) loop() {
	var timer *time.Timer
	notify := func() {
		select {
		case w.reloads <- struct{}{}:
		default: // a reload is already pending
		}
	}
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Create) {
				// New subdirectories need their own watch.
				_ = w.fsw.Add(ev.Name)
			}
			if !relevantEvent(ev) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, notify)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func relevantEvent(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) &&
		!ev.Op.Has(fsnotify.Remove) && !ev.Op.Has(fsnotify.Rename) {
		return false
	}
	name := strings.ToLower(filepath.Base(ev.Name))
	return strings.HasSuffix(name, ".md") && name != "readme.md"
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
