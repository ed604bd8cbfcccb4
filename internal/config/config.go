// Package config loads and validates startup configuration. The store URL
// and API key are required; the process refuses to start without them.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"

	"github.com/dori/projecthub/internal/db"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvStoreURL = "PROJECTHUB_STORE_URL"
	EnvAPIKey   = "PROJECTHUB_API_KEY"
	EnvDataDir  = "PROJECTHUB_DATA_DIR"
)

// apiKeyPattern is a superficial shape check, not a verification.
var apiKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{20,}$`)

// Config holds the validated startup configuration.
type Config struct {
	// StoreURL locates the backing store. A file: URL (or bare path)
	// selects the embedded SQLite store.
	StoreURL string `yaml:"store_url"`
	// APIKey gates account registration.
	APIKey string `yaml:"api_key"`
	// DataDir holds the lock file and, for relative store paths, the
	// database itself.
	DataDir string `yaml:"data_dir"`
}

// Load builds the configuration from an optional YAML file with environment
// variables taking precedence, then validates it. A missing file at the
// default path is not an error; an explicitly named missing file is.
func Load(path string) (*Config, error) {
	cfg := &Config{
		DataDir: db.DefaultDataDir(),
	}

	explicit := path != ""
	if path == "" {
		path = defaultConfigPath()
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if v := os.Getenv(EnvStoreURL); v != "" {
		cfg.StoreURL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks presence and superficial shape of the required values.
func (c *Config) Validate() error {
	if c.StoreURL == "" {
		return fmt.Errorf("store URL is required (set %s)", EnvStoreURL)
	}
	u, err := url.Parse(c.StoreURL)
	if err != nil {
		return fmt.Errorf("store URL is malformed: %w", err)
	}
	switch u.Scheme {
	case "", "file":
	default:
		return fmt.Errorf("unsupported store URL scheme %q", u.Scheme)
	}

	if c.APIKey == "" {
		return fmt.Errorf("API key is required (set %s)", EnvAPIKey)
	}
	if !apiKeyPattern.MatchString(c.APIKey) {
		return fmt.Errorf("API key does not look like a valid key")
	}

	return nil
}

// DBPath translates the store URL into a filesystem path for the SQLite
// store. Relative paths land inside the data directory.
func (c *Config) DBPath() string {
	u, err := url.Parse(c.StoreURL)
	if err != nil {
		return filepath.Join(c.DataDir, "projecthub.db")
	}

	p := u.Path
	if u.Opaque != "" {
		p = u.Opaque
	}
	if p == "" {
		p = c.StoreURL
	}
	if !filepath.IsAbs(p) {
		return filepath.Join(c.DataDir, p)
	}
	return p
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "projecthub.yaml"
	}
	return filepath.Join(home, ".config", "projecthub", "config.yaml")
}
