// Package config loads the TOML configuration file and resolves app paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user-adjustable application settings.
type Config struct {
	// APIBaseURL is the remote analysis service, e.g. "http://localhost:5000/api".
	// Empty means every remote call uses its local fallback.
	APIBaseURL string `toml:"api_base_url"`
	UserID     string `toml:"user_id"`
	DBPath     string `toml:"db_path"`
	LogPath    string `toml:"log_path"`
}

// Load reads the TOML config at path. A missing file is not an error;
// defaults are filled in for any unset field.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("stat config: %w", err)
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.UserID == "" {
		c.UserID = "local"
	}
	if c.DBPath == "" {
		if p, err := DefaultDBPath(); err == nil {
			c.DBPath = p
		}
	}
	if c.LogPath == "" {
		if dir, err := appDir(); err == nil {
			c.LogPath = filepath.Join(dir, "emovoice.log")
		}
	}
}

func appDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "emovoice"), nil
}

// DefaultConfigPath returns ~/.config/emovoice/config.toml.
func DefaultConfigPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultDBPath returns ~/.config/emovoice/emovoice.db.
func DefaultDBPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "emovoice.db"), nil
}
