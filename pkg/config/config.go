// Package config loads the engine's YAML configuration, mirroring the
// original fdhandle config.py's dot-path lookups (data.source, data.dest,
// update.timeslot, instruments) while using Go's native struct tags
// instead of runtime path traversal. github.com/joho/godotenv supplies a
// .env-layer for DSN secrets, overriding the YAML connection blocks,
// exactly as the teacher's cmd/pipeline/main.go loads its own secrets.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	yaml "gopkg.in/yaml.v2"
)

// DBConfig describes one Postgres connection target.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN renders the connection target as a libpq connection string.
func (c DBConfig) DSN() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, sslmode,
	)
}

// Config is the top-level configuration document, loaded from
// fundamentals.yaml (or the path named by $FUNDAMENTALS_CONFIG).
type Config struct {
	Data struct {
		Source DBConfig `yaml:"source"`
		Dest   DBConfig `yaml:"dest"`
	} `yaml:"data"`
	Update struct {
		// Timeslot is the number of days of mtime lookback for
		// incremental builds; negative means "full rebuild".
		Timeslot int `yaml:"timeslot"`
	} `yaml:"update"`
	Instruments []string `yaml:"instruments"`
}

// Load first loads any local .env file into the process environment, then
// reads and parses the YAML config at path. The DSN overrides
// (FUNDAMENTALS_SOURCE_DSN, FUNDAMENTALS_DEST_DSN) are applied later, by
// SourceDSN and DestDSN, where they take precedence over the file's
// data.source/data.dest blocks.
func Load(path string) (*Config, error) {
	// Best-effort: a missing .env file is not an error, matching the
	// teacher's godotenv.Load() usage in cmd/pipeline/main.go.
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if len(cfg.Instruments) == 0 {
		return nil, fmt.Errorf("config %s: instruments list is empty", path)
	}

	return &cfg, nil
}

// SourceDSN returns the upstream database connection string, preferring
// $FUNDAMENTALS_SOURCE_DSN over the file's data.source block.
func (c *Config) SourceDSN() string {
	if dsn := os.Getenv("FUNDAMENTALS_SOURCE_DSN"); dsn != "" {
		return dsn
	}
	return c.Data.Source.DSN()
}

// DestDSN returns the destination database connection string, preferring
// $FUNDAMENTALS_DEST_DSN over the file's data.dest block.
func (c *Config) DestDSN() string {
	if dsn := os.Getenv("FUNDAMENTALS_DEST_DSN"); dsn != "" {
		return dsn
	}
	return c.Data.Dest.DSN()
}

// ResolvePath finds the config file per §6.3: the explicit flagPath if
// non-empty, else the $FUNDAMENTALS_CONFIG env var, else "fundamentals.yaml"
// in the current directory.
func ResolvePath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if p := os.Getenv("FUNDAMENTALS_CONFIG"); p != "" {
		return p
	}
	return "fundamentals.yaml"
}
