package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcher(t *testing.T) {
	tmpDir := t.TempDir()

	config := WatchConfig{
		Enabled:        true,
		DebounceDelay:  100 * time.Millisecond,
		FileExtensions: []string{".md"},
		ExcludeDirs:    []string{".git"},
	}

	w, err := NewWatcher(config, tmpDir, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Stop()

	if !w.extensions[".md"] {
		t.Error("expected .md extension to be watched")
	}
	if !w.excludes[".git"] {
		t.Error("expected .git to be excluded")
	}
}

func TestDefaultWatchConfig(t *testing.T) {
	config := DefaultWatchConfig()

	if config.Enabled {
		t.Error("default config should have watching disabled")
	}
	if config.DebounceDelay != 500*time.Millisecond {
		t.Errorf("default debounce = %v, want 500ms", config.DebounceDelay)
	}
}

func TestWatcherSignalsOnChange(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := NewWatcher(WatchConfig{DebounceDelay: 50 * time.Millisecond}, tmpDir, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("start watcher: %v", err)
	}

	path := filepath.Join(tmpDir, "builder.md")
	if err := os.WriteFile(path, []byte("# Builder\n"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	select {
	case changed := <-w.Reloads():
		if len(changed) == 0 {
			t.Error("reload signal carried no paths")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload signal")
	}
}

func TestWatcherIgnoresOtherExtensions(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := NewWatcher(WatchConfig{DebounceDelay: 50 * time.Millisecond}, tmpDir, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("start watcher: %v", err)
	}

	path := filepath.Join(tmpDir, "scratch.txt")
	if err := os.WriteFile(path, []byte("ignored"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	select {
	case <-w.Reloads():
		t.Error("unexpected reload signal for non-markdown file")
	case <-time.After(300 * time.Millisecond):
		// Expected: no signal.
	}
}
