// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

const (
	// DefaultConfigDir is the directory name for kin configuration.
	DefaultConfigDir = ".kin"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"

	// BackendSQLite selects the SQLite storage backend.
	BackendSQLite = "sqlite"
	// BackendJSON selects the JSON-file storage backend.
	BackendJSON = "json"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Storage StorageConfig `yaml:"storage,omitempty"`
	Policy  PolicyConfig  `yaml:"policy,omitempty"`
	Layout  LayoutConfig  `yaml:"layout,omitempty"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	// Backend is "sqlite" or "json".
	Backend string `yaml:"backend,omitempty"`
	// Path is the backend file path, relative to the config dir when not
	// absolute.
	Path string `yaml:"path,omitempty"`
}

// PolicyConfig holds the graph constraint knobs.
type PolicyConfig struct {
	// MaxParents caps incoming edges per child; zero or negative lifts the
	// cap.
	MaxParents *int `yaml:"max_parents,omitempty"`
	// Monogamy limits each person to one concurrent spouse link.
	Monogamy *bool `yaml:"monogamy,omitempty"`
}

// LayoutConfig holds the tree layout dimensions. Zero values fall back to
// the shipped defaults.
type LayoutConfig struct {
	CardW       float64 `yaml:"card_w,omitempty"`
	CardH       float64 `yaml:"card_h,omitempty"`
	LevelGapY   float64 `yaml:"level_gap_y,omitempty"`
	SiblingGapX float64 `yaml:"sibling_gap_x,omitempty"`
	Pad         float64 `yaml:"pad,omitempty"`
	MarkW       float64 `yaml:"mark_w,omitempty"`
	CoupleGap   float64 `yaml:"couple_gap,omitempty"`
	TreeGapX    float64 `yaml:"tree_gap_x,omitempty"`
	DropY       float64 `yaml:"drop_y,omitempty"`
	MinCanvas   float64 `yaml:"min_canvas,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    "family.db",
		},
	}
}

// Load loads configuration from the .kin directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'kin init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if backend := os.Getenv("KIN_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}
	if path := os.Getenv("KIN_STORAGE_PATH"); path != "" {
		c.Storage.Path = path
	}
}

// ConfigDir returns the path to the .kin config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// StoragePath resolves the backend file path against the config directory.
func (c *Config) StoragePath(basePath string) string {
	if filepath.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return filepath.Join(basePath, DefaultConfigDir, c.Storage.Path)
}

// Exists checks if a kin config exists in the given path.
func Exists(basePath string) bool {
	configFile := filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
	_, err := os.Stat(configFile)
	return err == nil
}

// DomainPolicy converts the policy section to the domain type, applying
// defaults for unset fields.
func (c *Config) DomainPolicy() entities.Policy {
	p := entities.DefaultPolicy()
	if c.Policy.MaxParents != nil {
		p.MaxParents = *c.Policy.MaxParents
	}
	if c.Policy.Monogamy != nil {
		p.Monogamy = *c.Policy.Monogamy
	}
	return p
}

// DomainMetrics converts the layout section to the domain type, applying
// defaults for unset fields.
func (c *Config) DomainMetrics() entities.Metrics {
	m := entities.DefaultMetrics()
	if c.Layout.CardW > 0 {
		m.CardW = c.Layout.CardW
	}
	if c.Layout.CardH > 0 {
		m.CardH = c.Layout.CardH
	}
	if c.Layout.LevelGapY > 0 {
		m.LevelGapY = c.Layout.LevelGapY
	}
	if c.Layout.SiblingGapX > 0 {
		m.SiblingGapX = c.Layout.SiblingGapX
	}
	if c.Layout.Pad > 0 {
		m.Pad = c.Layout.Pad
	}
	if c.Layout.MarkW > 0 {
		m.MarkW = c.Layout.MarkW
	}
	if c.Layout.CoupleGap > 0 {
		m.CoupleGap = c.Layout.CoupleGap
	}
	if c.Layout.TreeGapX > 0 {
		m.TreeGapX = c.Layout.TreeGapX
	}
	if c.Layout.DropY > 0 {
		m.DropY = c.Layout.DropY
	}
	if c.Layout.MinCanvas > 0 {
		m.MinCanvas = c.Layout.MinCanvas
	}
	return m
}
