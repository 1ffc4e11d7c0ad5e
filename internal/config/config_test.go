package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

const validConfigYAML = `
inventory:
  output_csv: "./out/inventory.csv"
  report: true
scoring:
  vendors:
    - name: "Aironet"
      oui: "00:04:5A"
    - name: "Ubiquiti"
      oui: "24:A4:3C"
  beacon_interval:
    max: 5000
logging:
  level: "debug"
  format: "json"
`

func TestLoadConfig_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Inventory.OutputCSV != "./out/inventory.csv" {
		t.Errorf("OutputCSV = %s, want ./out/inventory.csv", cfg.Inventory.OutputCSV)
	}

	if !cfg.Inventory.Report {
		t.Error("Expected report to be enabled")
	}

	if len(cfg.Scoring.Vendors) != 2 || cfg.Scoring.Vendors[1].Name != "Ubiquiti" {
		t.Errorf("Vendors = %+v, want file table", cfg.Scoring.Vendors)
	}

	// Not in the file: defaults apply.
	if len(cfg.Scoring.SecuritySuites) != len(DefaultSecuritySuites()) {
		t.Errorf("Expected default security suites, got %d", len(cfg.Scoring.SecuritySuites))
	}

	if cfg.Scoring.BeaconInterval.Min != 10 || cfg.Scoring.BeaconInterval.Max != 5000 {
		t.Errorf("BeaconInterval = %+v, want {10 5000}", cfg.Scoring.BeaconInterval)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadConfig_Empty(t *testing.T) {
	configPath := createTempConfigFile(t, "")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Inventory.OutputCSV != DefaultOutputCSV {
		t.Errorf("OutputCSV = %s, want %s", cfg.Inventory.OutputCSV, DefaultOutputCSV)
	}

	if len(cfg.Scoring.Vendors) != 2 {
		t.Errorf("Expected default vendors, got %d", len(cfg.Scoring.Vendors))
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "invalid: yaml: content: [}")

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestLoadConfig_InvalidLevel(t *testing.T) {
	configPath := createTempConfigFile(t, "logging:\n  level: verbose\n")

	_, err := LoadConfig(configPath)
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Fatalf("Expected ErrInvalidLogLevel, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"Default is valid", func(c *Config) {}, nil},
		{"Missing output", func(c *Config) { c.Inventory.OutputCSV = " " }, ErrMissingOutputPath},
		{"Bad level", func(c *Config) { c.Logging.Level = "trace" }, ErrInvalidLogLevel},
		{"Bad format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidLogFormat},
		{"No vendors", func(c *Config) { c.Scoring.Vendors = nil }, ErrNoVendors},
		{"Unnamed vendor", func(c *Config) { c.Scoring.Vendors[0].Name = "" }, ErrVendorMissingName},
		{"Unnamed suite", func(c *Config) { c.Scoring.SecuritySuites[2].Name = "" }, ErrSuiteMissingName},
		{"Negative min", func(c *Config) { c.Scoring.BeaconInterval.Min = -1 }, ErrNegativeBeaconMin},
		{"Min above max", func(c *Config) { c.Scoring.BeaconInterval = BeaconBounds{Min: 100, Max: 10} }, ErrInvalidBeaconBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}

				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBeaconBounds_Contains(t *testing.T) {
	b := Default().Scoring.BeaconInterval

	tests := []struct {
		value    float64
		expected bool
	}{
		{10.000, true},
		{9.999, false},
		{10000, true},
		{10000.001, false},
		{100, true},
	}

	for _, tt := range tests {
		if got := b.Contains(tt.value); got != tt.expected {
			t.Errorf("Contains(%v) = %v, want %v", tt.value, got, tt.expected)
		}
	}
}

func TestConfig_SaveConfig(t *testing.T) {
	cfg := Default()
	cfg.Inventory.OutputCSV = "saved.csv"

	savePath := filepath.Join(t.TempDir(), "saved_config.yaml")

	if err := cfg.SaveConfig(savePath); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(savePath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loaded.Inventory.OutputCSV != "saved.csv" {
		t.Errorf("OutputCSV = %s, want saved.csv", loaded.Inventory.OutputCSV)
	}

	// The WEP entry has an empty signature and must survive the round trip.
	if len(loaded.Scoring.SecuritySuites) != 4 || loaded.Scoring.SecuritySuites[2].Signature != "" {
		t.Errorf("SecuritySuites = %+v", loaded.Scoring.SecuritySuites)
	}
}

func TestConfig_String(t *testing.T) {
	str := Default().String()
	if !strings.Contains(str, DefaultOutputCSV) {
		t.Errorf("String() = %s, want output path included", str)
	}
}
