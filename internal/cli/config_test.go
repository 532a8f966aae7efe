package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Listen != "127.0.0.1:8470" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.Session.Backend != "memory" {
		t.Errorf("Session.Backend = %q, want memory", cfg.Session.Backend)
	}
	if cfg.Views.Backend != "file" {
		t.Errorf("Views.Backend = %q, want file", cfg.Views.Backend)
	}
}

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	// Point XDG config at an empty dir so no real config is picked up.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Listen != DefaultConfig().Listen {
		t.Errorf("Listen = %q, want default", cfg.Listen)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
listen = "0.0.0.0:9000"

[entrypoints]
ids = ["main.main"]
patterns = ["^app\\."]

[session]
backend = "redis"

[session.redis]
addr = "localhost:6379"
db = 2

[views]
backend = "mongo"

[views.mongo]
uri = "mongodb://localhost:27017"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Listen != "0.0.0.0:9000" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if !slices.Equal(cfg.Entrypoints.IDs, []string{"main.main"}) {
		t.Errorf("Entrypoints.IDs = %v", cfg.Entrypoints.IDs)
	}
	if !slices.Equal(cfg.Entrypoints.Patterns, []string{`^app\.`}) {
		t.Errorf("Entrypoints.Patterns = %v", cfg.Entrypoints.Patterns)
	}
	if cfg.Session.Backend != "redis" || cfg.Session.Redis.Addr != "localhost:6379" || cfg.Session.Redis.DB != 2 {
		t.Errorf("Session = %+v", cfg.Session)
	}
	if cfg.Views.Backend != "mongo" || cfg.Views.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("Views = %+v", cfg.Views)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`cache_dir = "/tmp/lens"`), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CacheDir != "/tmp/lens" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if cfg.Listen != DefaultConfig().Listen {
		t.Errorf("Listen = %q, want default preserved", cfg.Listen)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`listen = [broken`), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestBuildOptionsPrecedence(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.Config.Entrypoints.IDs = []string{"from.config"}
	c.Config.Entrypoints.Patterns = []string{`^svc\.`}

	// Flag entrypoints win over config ids.
	opts := c.buildOptions("g.json", []string{"from.flag"})
	if !slices.Equal(opts.Entrypoints, []string{"from.flag"}) {
		t.Errorf("Entrypoints = %v, want flag value", opts.Entrypoints)
	}

	// Config ids apply when no flag is given.
	opts = c.buildOptions("g.json", nil)
	if !slices.Equal(opts.Entrypoints, []string{"from.config"}) {
		t.Errorf("Entrypoints = %v, want config value", opts.Entrypoints)
	}
	if !slices.Equal(opts.Patterns, []string{`^svc\.`}) {
		t.Errorf("Patterns = %v", opts.Patterns)
	}
	if opts.GraphPath != "g.json" {
		t.Errorf("GraphPath = %q", opts.GraphPath)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	want := []string{"explore", "serve", "trace", "export", "view", "stats", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
