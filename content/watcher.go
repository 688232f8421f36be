package content

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadChannelBuffer = 16

// WatchConfig configures content directory watching.
type WatchConfig struct {
	// Enabled controls whether file watching is active.
	Enabled bool `yaml:"enabled"`

	// DebounceDelay is how long to wait for more changes before
	// signalling a reload.
	DebounceDelay time.Duration `yaml:"debounce_delay"`

	// FileExtensions lists file extensions that trigger a reload.
	FileExtensions []string `yaml:"file_extensions"`

	// ExcludeDirs lists directory names to skip.
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// DefaultWatchConfig returns default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Enabled:        false,
		DebounceDelay:  500 * time.Millisecond,
		FileExtensions: []string{".md", ".markdown"},
		ExcludeDirs:    []string{".git", "node_modules", "vendor"},
	}
}

// Watcher watches the content directory and signals when the catalog
// should be rebuilt. Consumers rebuild a whole new catalog per signal and
// swap it in atomically, so readers never observe a partially loaded one.
type Watcher struct {
	config  WatchConfig
	dir     string
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	extensions map[string]bool
	excludes   map[string]bool

	// Debouncing: changed paths collected until the next flush.
	pendingMu sync.Mutex
	pending   map[string]bool

	reloads chan []string
}

// NewWatcher creates a content watcher for the given directory.
func NewWatcher(config WatchConfig, dir string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}
	if config.DebounceDelay <= 0 {
		config.DebounceDelay = 500 * time.Millisecond
	}

	extensions := make(map[string]bool)
	exts := config.FileExtensions
	if len(exts) == 0 {
		exts = DefaultWatchConfig().FileExtensions
	}
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[ext] = true
	}

	excludes := make(map[string]bool)
	dirs := config.ExcludeDirs
	if len(dirs) == 0 {
		dirs = DefaultWatchConfig().ExcludeDirs
	}
	for _, d := range dirs {
		excludes[d] = true
	}

	return &Watcher{
		config:     config,
		dir:        dir,
		watcher:    fsw,
		logger:     logger,
		extensions: extensions,
		excludes:   excludes,
		pending:    make(map[string]bool),
		reloads:    make(chan []string, reloadChannelBuffer),
	}, nil
}

// Reloads returns the channel of reload signals. Each signal carries the
// changed paths collected during the debounce window. The channel is
// closed when the watcher stops.
func (w *Watcher) Reloads() <-chan []string {
	return w.reloads
}

// Start begins watching the content directory.
func (w *Watcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return err
	}

	if err := w.addWatchesRecursive(w.dir); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("Content watcher started",
		slog.String("dir", w.dir),
		slog.Duration("debounce", w.config.DebounceDelay))
	return nil
}

// Stop stops the watcher. The reloads channel is closed by the event
// goroutine on exit.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// addWatchesRecursive adds watches on the directory tree, skipping
// excluded and hidden directories.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		if w.excludes[base] || (strings.HasPrefix(base, ".") && path != root) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
		return nil
	})
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.reloads)
	ticker := time.NewTicker(w.config.DebounceDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", slog.String("error", err.Error()))

		case <-ticker.C:
			w.flushPending()
		}
	}
}

// handleFSEvent records a relevant file change for the next flush and
// starts watching newly created directories.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			base := filepath.Base(event.Name)
			if !w.excludes[base] && !strings.HasPrefix(base, ".") {
				_ = w.watcher.Add(event.Name)
			}
			return
		}
	}

	if !w.extensions[filepath.Ext(event.Name)] {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.pendingMu.Lock()
	w.pending[event.Name] = true
	w.pendingMu.Unlock()
}

// flushPending emits one reload signal for all changes collected during
// the debounce window.
func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	w.pending = make(map[string]bool)
	w.pendingMu.Unlock()

	select {
	case w.reloads <- changed:
		w.logger.Debug("Content change detected", slog.Int("files", len(changed)))
	default:
		w.logger.Warn("Reload channel full, dropping signal",
			slog.Int("files", len(changed)))
	}
}
