// Package config loads the optional TOML configuration file. Environment
// overrides are intentionally not applied here; precedence between
// environment, configuration, and lookup lives in the credentials resolver.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/assistkit/gh-skill/internal/credentials"
)

// Config is the host-supplied configuration for the CLI and the HTTP host.
type Config struct {
	Credentials credentials.Credentials `toml:"credentials"`
	GitHub      GitHubConfig            `toml:"github"`
	Server      ServerConfig            `toml:"server"`
	Log         LogConfig               `toml:"log"`
}

// GitHubConfig selects the upstream API host.
type GitHubConfig struct {
	// Host is the GitHub host name, e.g. "github.com" or a GHES host.
	Host string `toml:"host"`
	// APIBaseURL overrides the API root entirely; mainly for tests.
	APIBaseURL string `toml:"api_base_url"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		GitHub: GitHubConfig{Host: credentials.DefaultHost},
		Server: ServerConfig{Addr: ":8876"},
		Log:    LogConfig{Level: "info"},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "gh-skill", "config.toml")
}

// Load reads the config file at path, merged over the defaults. A missing
// file at the default location is not an error; an explicitly requested file
// that does not exist is.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}
