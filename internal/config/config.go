package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const (
	// Env overrides, checked after the config file.
	envToken = "ECOSOLGIS_ADMIN_TOKEN"
	envAddr  = "ECOSOLGIS_ADDR"

	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

type Config struct {
	Listen          string `yaml:"listen"`
	Storage         string `yaml:"storage"`
	DataPath        string `yaml:"data_path,omitempty"`
	AdminToken      string `yaml:"admin_token,omitempty"`
	BackupRetention string `yaml:"backup_retention,omitempty"`
}

// Token returns the resolved admin bearer token (config or env var).
func (c *Config) Token() string {
	if c.AdminToken != "" {
		return c.AdminToken
	}
	return os.Getenv(envToken)
}

// Addr returns the listen address, with the env var taking precedence.
func (c *Config) Addr() string {
	if addr := os.Getenv(envAddr); addr != "" {
		return addr
	}
	if c.Listen == "" {
		return ":8090"
	}
	return c.Listen
}

// RetentionDuration parses backup_retention, supporting "Nd" day
// syntax on top of time.ParseDuration.
func (c *Config) RetentionDuration() time.Duration {
	if c.BackupRetention == "" {
		return 30 * 24 * time.Hour
	}
	if len(c.BackupRetention) > 1 && c.BackupRetention[len(c.BackupRetention)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(c.BackupRetention, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	d, err := time.ParseDuration(c.BackupRetention)
	if err != nil {
		return 30 * 24 * time.Hour
	}
	return d
}

// StorePath returns where the catalog lives on disk: the configured
// override, or a file under the XDG data dir named for the backend.
func (c *Config) StorePath() string {
	if c.DataPath != "" {
		return c.DataPath
	}
	name := "projects.json"
	if c.Storage == StorageSQLite {
		name = "projects.db"
	}
	return filepath.Join(xdg.DataHome, "ecosolgis", name)
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "ecosolgis", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Storage == "" {
		cfg.Storage = defaults.Storage
	}
	if cfg.Listen == "" {
		cfg.Listen = defaults.Listen
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	switch cfg.Storage {
	case StorageJSON, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q (valid: %s, %s)", cfg.Storage, StorageJSON, StorageSQLite)
	}
	return nil
}
