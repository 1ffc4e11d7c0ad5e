// Package config provides configuration management for the inventory tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultOutputCSV is the inventory file written when no path is given.
const DefaultOutputCSV = "inventaire_baselines.csv"

// Configuration validation errors.
var (
	ErrMissingOutputPath   = errors.New("inventory.output_csv is required")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat    = errors.New("logging.format must be 'text' or 'json'")
	ErrNoVendors           = errors.New("scoring.vendors must contain at least one vendor")
	ErrVendorMissingName   = errors.New("vendor name is required")
	ErrSuiteMissingName    = errors.New("security suite name is required")
	ErrInvalidBeaconBounds = errors.New("scoring.beacon_interval.min cannot exceed max")
	ErrNegativeBeaconMin   = errors.New("scoring.beacon_interval.min must be non-negative")
)

// Config represents the complete tool configuration.
type Config struct {
	Inventory InventoryConfig `yaml:"inventory"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// InventoryConfig defines export behavior.
type InventoryConfig struct {
	OutputCSV string `yaml:"output_csv"`
	Report    bool   `yaml:"report"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ScoringConfig holds the reference tables of the scorer.
type ScoringConfig struct {
	Vendors        []VendorConfig `yaml:"vendors"`
	SecuritySuites []SuiteConfig  `yaml:"security_suites"`
	BeaconInterval BeaconBounds   `yaml:"beacon_interval"`
}

// VendorConfig maps a vendor name token to its expected MAC prefix.
type VendorConfig struct {
	Name string `yaml:"name"`
	OUI  string `yaml:"oui"`
}

// SuiteConfig maps a security suite to the RSN IE signature it should carry.
type SuiteConfig struct {
	Name      string `yaml:"name"`
	Signature string `yaml:"signature"`
}

// BeaconBounds is the inclusive range of plausible beacon intervals.
type BeaconBounds struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether v lies within the bounds.
func (b BeaconBounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// DefaultVendors returns the built-in vendor table.
func DefaultVendors() []VendorConfig {
	return []VendorConfig{
		{Name: "Aironet", OUI: "00:04:5A"}, // Cisco/Aruba
		{Name: "Ralink", OUI: "00:2B:81"},
	}
}

// DefaultSecuritySuites returns the built-in security suite table.
func DefaultSecuritySuites() []SuiteConfig {
	return []SuiteConfig{
		{Name: "WPA2", Signature: "RSNIE:AuthAlg=CCMP"},
		{Name: "WPA3", Signature: "RSNIE:AuthAlg=OWE"},
		{Name: "WEP", Signature: ""},
		{Name: "WPA/TKIP", Signature: "RSNIE:AuthAlg=TSC"},
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Inventory: InventoryConfig{OutputCSV: DefaultOutputCSV},
		Scoring: ScoringConfig{
			Vendors:        DefaultVendors(),
			SecuritySuites: DefaultSecuritySuites(),
			BeaconInterval: BeaconBounds{Min: 10.000, Max: 10000},
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig loads configuration from YAML file. Sections left out of the
// file keep their defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	// Tables are replaced, not merged, when the file provides them.
	cfg.Scoring.Vendors = nil
	cfg.Scoring.SecuritySuites = nil

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(cfg.Scoring.Vendors) == 0 {
		cfg.Scoring.Vendors = DefaultVendors()
	}

	if len(cfg.Scoring.SecuritySuites) == 0 {
		cfg.Scoring.SecuritySuites = DefaultSecuritySuites()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Inventory.OutputCSV) == "" {
		return ErrMissingOutputPath
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	if len(c.Scoring.Vendors) == 0 {
		return ErrNoVendors
	}

	for i, v := range c.Scoring.Vendors {
		if strings.TrimSpace(v.Name) == "" {
			return fmt.Errorf("%w: vendors[%d]", ErrVendorMissingName, i)
		}
	}

	for i, s := range c.Scoring.SecuritySuites {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("%w: security_suites[%d]", ErrSuiteMissingName, i)
		}
	}

	if c.Scoring.BeaconInterval.Min < 0 {
		return ErrNegativeBeaconMin
	}

	if c.Scoring.BeaconInterval.Min > c.Scoring.BeaconInterval.Max {
		return ErrInvalidBeaconBounds
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Output: %s, Vendors: %d, Suites: %d, Beacon: [%g, %g]}",
		c.Inventory.OutputCSV,
		len(c.Scoring.Vendors),
		len(c.Scoring.SecuritySuites),
		c.Scoring.BeaconInterval.Min,
		c.Scoring.BeaconInterval.Max,
	)
}
