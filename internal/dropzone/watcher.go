// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dropzone

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a file must be quiet before it counts as dropped.
const DefaultDebounce = 300 * time.Millisecond

// EventKind identifies a drop zone transition.
type EventKind int

const (
	// Hover means a file is arriving in the drop directory.
	Hover EventKind = iota
	// Leave means every arriving file went away before settling.
	Leave
	// Drop means a file settled and is ready for ingestion.
	Drop
)

// String returns the kind name.
func (k EventKind) String() string {
	switch k {
	case Hover:
		return "hover"
	case Leave:
		return "leave"
	case Drop:
		return "drop"
	default:
		return "unknown"
	}
}

// Event is a single drop zone transition.
type Event struct {
	Kind EventKind
	Path string
}

// Watcher watches one directory for dropped files.
type Watcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	pending  map[string]time.Time // path -> last change
	hovering bool

	events    chan Event
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates a watcher for dir, creating the directory if needed.
// A zero debounce uses DefaultDebounce.
func New(dir string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if dir == "" {
		return nil, fmt.Errorf("drop directory not set")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create drop directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		dir:      dir,
		watcher:  fsw,
		debounce: debounce,
		logger:   logger.Named("dropzone"),
		pending:  make(map[string]time.Time),
		events:   make(chan Event, 16),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Events returns the event stream. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.wg.Add(2)
	go w.processEvents()
	go w.processPending()

	w.logger.Info("watching drop directory", zap.String("dir", w.dir))
	return nil
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ignored(ev.Name) {
				continue
			}
			switch {
			case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
				w.touch(ev.Name)
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				w.forget(ev.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

// touch records activity on path, announcing Hover on the first one.
func (w *Watcher) touch(path string) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return
	}

	w.mu.Lock()
	w.pending[path] = time.Now()
	announce := !w.hovering
	w.hovering = true
	w.mu.Unlock()

	if announce {
		w.emit(Event{Kind: Hover, Path: path})
	}
}

// forget drops path from pending, announcing Leave when nothing is left.
func (w *Watcher) forget(path string) {
	w.mu.Lock()
	_, ok := w.pending[path]
	delete(w.pending, path)
	leave := ok && w.hovering && len(w.pending) == 0
	if leave {
		w.hovering = false
	}
	w.mu.Unlock()

	if leave {
		w.emit(Event{Kind: Leave, Path: path})
	}
}

func (w *Watcher) processPending() {
	defer w.wg.Done()
	tick := w.debounce / 3
	if tick > 100*time.Millisecond {
		tick = 100 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()

			w.mu.Lock()
			var settled []string
			for path, changed := range w.pending {
				if now.Sub(changed) >= w.debounce {
					settled = append(settled, path)
					delete(w.pending, path)
				}
			}
			if len(settled) > 0 && len(w.pending) == 0 {
				w.hovering = false
			}
			w.mu.Unlock()

			for _, path := range settled {
				if _, err := os.Stat(path); err != nil {
					continue
				}
				w.logger.Debug("file dropped", zap.String("path", path))
				w.emit(Event{Kind: Drop, Path: path})
			}
		}
	}
}

func (w *Watcher) emit(ev Event) {
	select {
	case w.events <- ev:
	case <-w.ctx.Done():
	}
}

// Close stops watching and closes the event channel.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.cancel()
		err = w.watcher.Close()
		w.wg.Wait()
		close(w.events)
	})
	return err
}

// ignored skips hidden and partial-download files.
func ignored(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return true
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".part", ".crdownload", ".download", ".tmp", ".swp":
		return true
	}
	return false
}
