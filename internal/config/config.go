// Package config loads SMSGrab configuration with priority:
// defaults → smsgrab.toml → SMSGRAB_* env vars → CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the top-level SMSGrab configuration.
type Config struct {
	Vendor   VendorConfig   `toml:"vendor"`
	Purchase PurchaseConfig `toml:"purchase"`
	Polling  PollingConfig  `toml:"polling"`
	Logging  LoggingConfig  `toml:"logging"`
}

// VendorConfig identifies the SMSHub account and what to rent.
type VendorConfig struct {
	APIKey         string  `toml:"api_key"`
	APIURL         string  `toml:"api_url"`
	CountryCode    string  `toml:"country_code"`
	Service        string  `toml:"service"`
	Operator       string  `toml:"operator"` // optional; empty lets the vendor pick
	Currency       string  `toml:"currency"`
	MaxPrice       float64 `toml:"max_price"`       // per-number price ceiling
	RequestTimeout int     `toml:"request_timeout"` // seconds, default 15
}

// PurchaseConfig sizes the purchase cycle.
type PurchaseConfig struct {
	BatchCap int `toml:"batch_cap"` // most numbers bought per cycle, default 2
}

// PollingConfig controls the OTP refresh loop.
type PollingConfig struct {
	RefreshInterval int `toml:"refresh_interval"` // milliseconds, default 3000
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{
		Vendor: VendorConfig{
			APIURL:         "https://smshub.org/stubs/handler_api.php",
			Currency:       "840",
			RequestTimeout: 15,
		},
		Purchase: PurchaseConfig{
			BatchCap: 2,
		},
		Polling: PollingConfig{
			RefreshInterval: 3000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration with priority: defaults → smsgrab.toml → env
// vars → CLI flags. The flags parameter allows CLI flag overrides to be
// passed in.
func Load(configPath string, flags map[string]string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		configPath = "smsgrab.toml"
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", configPath, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := applyFlags(cfg, flags); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Peek loads defaults → file → env without validating, for inspection
// commands that must work on incomplete configs.
func Peek(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		configPath = "smsgrab.toml"
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", configPath, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for missing or invalid values.
// A missing required vendor field is fatal at startup.
func (c *Config) Validate() error {
	var missing []string
	if c.Vendor.APIKey == "" {
		missing = append(missing, "vendor.api_key")
	}
	if c.Vendor.APIURL == "" {
		missing = append(missing, "vendor.api_url")
	}
	if c.Vendor.CountryCode == "" {
		missing = append(missing, "vendor.country_code")
	}
	if c.Vendor.Service == "" {
		missing = append(missing, "vendor.service")
	}
	if c.Vendor.Currency == "" {
		missing = append(missing, "vendor.currency")
	}
	if c.Vendor.MaxPrice <= 0 {
		missing = append(missing, "vendor.max_price")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration fields: %s", strings.Join(missing, ", "))
	}

	if c.Vendor.RequestTimeout < 1 {
		return fmt.Errorf("vendor.request_timeout must be at least 1 second, got %d", c.Vendor.RequestTimeout)
	}
	if c.Purchase.BatchCap < 1 {
		return fmt.Errorf("purchase.batch_cap must be at least 1, got %d", c.Purchase.BatchCap)
	}
	if c.Polling.RefreshInterval < 100 {
		return fmt.Errorf("polling.refresh_interval must be at least 100ms, got %d", c.Polling.RefreshInterval)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be \"text\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}

// RefreshInterval returns the polling cadence as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Polling.RefreshInterval) * time.Millisecond
}

// RequestTimeout returns the per-call vendor timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Vendor.RequestTimeout) * time.Second
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("SMSGRAB_API_KEY"); v != "" {
		cfg.Vendor.APIKey = v
	}
	if v := os.Getenv("SMSGRAB_API_URL"); v != "" {
		cfg.Vendor.APIURL = v
	}
	if v := os.Getenv("SMSGRAB_COUNTRY_CODE"); v != "" {
		cfg.Vendor.CountryCode = v
	}
	if v := os.Getenv("SMSGRAB_SERVICE"); v != "" {
		cfg.Vendor.Service = v
	}
	if v := os.Getenv("SMSGRAB_OPERATOR"); v != "" {
		cfg.Vendor.Operator = v
	}
	if v := os.Getenv("SMSGRAB_CURRENCY"); v != "" {
		cfg.Vendor.Currency = v
	}
	if err := envFloat("SMSGRAB_MAX_PRICE", &cfg.Vendor.MaxPrice); err != nil {
		return err
	}
	if err := envInt("SMSGRAB_BATCH_CAP", &cfg.Purchase.BatchCap); err != nil {
		return err
	}
	if err := envInt("SMSGRAB_REFRESH_INTERVAL", &cfg.Polling.RefreshInterval); err != nil {
		return err
	}
	if v := os.Getenv("SMSGRAB_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SMSGRAB_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	return nil
}

func envInt(name string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = n
	return nil
}

func envFloat(name string, dst *float64) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = f
	return nil
}

func applyFlags(cfg *Config, flags map[string]string) error {
	for name, value := range flags {
		if value == "" {
			continue
		}
		switch name {
		case "api-key":
			cfg.Vendor.APIKey = value
		case "api-url":
			cfg.Vendor.APIURL = value
		case "country":
			cfg.Vendor.CountryCode = value
		case "service":
			cfg.Vendor.Service = value
		case "operator":
			cfg.Vendor.Operator = value
		case "currency":
			cfg.Vendor.Currency = value
		case "max-price":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("--max-price: %w", err)
			}
			cfg.Vendor.MaxPrice = f
		case "batch-cap":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("--batch-cap: %w", err)
			}
			cfg.Purchase.BatchCap = n
		case "refresh-interval":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("--refresh-interval: %w", err)
			}
			cfg.Polling.RefreshInterval = n
		}
	}
	return nil
}

// GenerateDefault writes a commented default smsgrab.toml to the given path.
func GenerateDefault(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(defaultTOML), 0o644)
}

// ToTOML returns the config serialized as TOML.
func (c *Config) ToTOML() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

const defaultTOML = `# SMSGrab configuration.
# Priority: this file → SMSGRAB_* environment variables → CLI flags.

[vendor]
# SMSHub API key (required). Also settable via SMSGRAB_API_KEY.
api_key = ""
api_url = "https://smshub.org/stubs/handler_api.php"
# Target country code as used by the vendor, e.g. "6".
country_code = ""
# Service code the numbers will receive SMS for, e.g. "wa".
service = ""
# Optional operator code; empty lets the vendor pick.
operator = ""
# ISO 4217 numeric currency code, e.g. "840" for USD.
currency = "840"
# Per-number price ceiling in the configured currency.
max_price = 0.0
# Per-request timeout in seconds.
request_timeout = 15

[purchase]
# Most numbers bought in one purchase cycle, regardless of balance.
batch_cap = 2

[polling]
# OTP polling cadence in milliseconds.
refresh_interval = 3000

[logging]
# debug, info, warn, error
level = "info"
# text or json
format = "text"
`
