package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Addr != "127.0.0.1:8470" {
		t.Errorf("expected default addr 127.0.0.1:8470, got %s", cfg.Server.Addr)
	}
	if cfg.Content.Dir != "" {
		t.Errorf("expected empty content dir by default, got %s", cfg.Content.Dir)
	}
	if len(cfg.Content.Globs) != 2 {
		t.Errorf("expected 2 default globs, got %d", len(cfg.Content.Globs))
	}
	if cfg.NATS.Subject != "catalog.ingest.entity" {
		t.Errorf("expected default subject catalog.ingest.entity, got %s", cfg.NATS.Subject)
	}
	if cfg.Ingest.Timeout != 30*time.Second {
		t.Errorf("expected default ingest timeout 30s, got %v", cfg.Ingest.Timeout)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing server addr",
			modify:  func(c *Config) { c.Server.Addr = "" },
			wantErr: true,
		},
		{
			name:    "empty globs",
			modify:  func(c *Config) { c.Content.Globs = nil },
			wantErr: true,
		},
		{
			name:    "zero ingest timeout",
			modify:  func(c *Config) { c.Ingest.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "negative max content size",
			modify:  func(c *Config) { c.Ingest.MaxContentSize = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patternbook.yaml")

	content := `content:
  dir: ./entries
  watch: true
server:
  addr: 0.0.0.0:9000
nats:
  url: nats://localhost:4222
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Content.Dir != "./entries" {
		t.Errorf("content.dir = %s, want ./entries", cfg.Content.Dir)
	}
	if !cfg.Content.Watch {
		t.Error("content.watch should be true")
	}
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("server.addr = %s, want 0.0.0.0:9000", cfg.Server.Addr)
	}
	if cfg.NATS.URL != "nats://localhost:4222" {
		t.Errorf("nats.url = %s, want nats://localhost:4222", cfg.NATS.URL)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	other := &Config{
		Content: ContentConfig{Dir: "./catalog", Watch: true},
		NATS:    NATSConfig{URL: "nats://queue:4222"},
	}

	base.Merge(other)

	if base.Content.Dir != "./catalog" {
		t.Errorf("content.dir = %s, want ./catalog", base.Content.Dir)
	}
	if !base.Content.Watch {
		t.Error("content.watch should be true after merge")
	}
	if base.NATS.URL != "nats://queue:4222" {
		t.Errorf("nats.url = %s, want nats://queue:4222", base.NATS.URL)
	}
	// Untouched fields keep their defaults.
	if base.Server.Addr != "127.0.0.1:8470" {
		t.Errorf("server.addr = %s, want default", base.Server.Addr)
	}
	if base.NATS.Subject != "catalog.ingest.entity" {
		t.Errorf("nats.subject = %s, want default", base.NATS.Subject)
	}
}

func TestMergeNil(t *testing.T) {
	base := DefaultConfig()
	base.Merge(nil)

	if base.Server.Addr != "127.0.0.1:8470" {
		t.Error("merge with nil should leave config unchanged")
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Content.Dir = "./entries"

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if loaded.Content.Dir != "./entries" {
		t.Errorf("content.dir = %s, want ./entries", loaded.Content.Dir)
	}
}
