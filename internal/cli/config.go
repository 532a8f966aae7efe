package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the TOML configuration for graphlens.
//
// The file is looked up at ~/.config/graphlens/config.toml unless --config
// points elsewhere. A missing file yields defaults; a malformed file is an
// error.
type Config struct {
	// Listen is the API server address.
	Listen string `toml:"listen"`

	// CacheDir overrides the XDG artifact cache directory.
	CacheDir string `toml:"cache_dir"`

	Entrypoints EntrypointConfig `toml:"entrypoints"`
	Session     SessionConfig    `toml:"session"`
	Views       ViewConfig       `toml:"views"`
}

// EntrypointConfig controls entrypoint classification.
type EntrypointConfig struct {
	// IDs pins the entrypoint set explicitly, disabling pattern matching.
	IDs []string `toml:"ids"`

	// Patterns override the default naming patterns.
	Patterns []string `toml:"patterns"`
}

// SessionConfig selects the session persistence backend for serve.
type SessionConfig struct {
	// Backend is one of "memory", "file", "redis". Defaults to "memory".
	Backend string `toml:"backend"`

	// Dir is the file backend directory (default: XDG config sessions dir).
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis session backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// ViewConfig selects the saved-view backend.
type ViewConfig struct {
	// Backend is one of "file", "mongo". Defaults to "file".
	Backend string `toml:"backend"`

	// Dir is the file backend directory (default: XDG config views dir).
	Dir string `toml:"dir"`

	Mongo MongoConfig `toml:"mongo"`
}

// MongoConfig configures the mongo view backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Listen:  "127.0.0.1:8470",
		Session: SessionConfig{Backend: "memory"},
		Views:   ViewConfig{Backend: "file"},
	}
}

// LoadConfig reads the TOML config from path, or from the default location
// when path is empty. A missing file is not an error - defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
