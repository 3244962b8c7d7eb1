package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Search   SearchConfig   `mapstructure:"search"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
	Prefs    PrefsConfig    `mapstructure:"prefs"`
}

// DatabaseConfig holds sqlite settings. ":memory:" keeps the catalog in
// memory and reseeds it on every start.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// SearchConfig holds the simulated search latency.
type SearchConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat     string `mapstructure:"date_format"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
	Timezone       string `mapstructure:"timezone"`
}

type LogConfig struct {
	Level  string       `mapstructure:"level"`
	Path   string       `mapstructure:"path"`
	Fluent FluentConfig `mapstructure:"fluent"`
}

// FluentConfig enables forwarding log records to a fluentd/fluent-bit agent.
type FluentConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	TagPrefix string `mapstructure:"tag_prefix"`
}

// PrefsConfig points at the directory holding saved UI state.
type PrefsConfig struct {
	Dir string `mapstructure:"dir"`
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "propdesk")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "propdesk")
}

// Path returns the config file location. PROPDESK_CONFIG overrides it.
func Path() string {
	if p := os.Getenv("PROPDESK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(configDir(), "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", ":memory:")
	v.SetDefault("search.delay", "1s")
	v.SetDefault("ui.date_format", "Jan 2, 2006")
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.timezone", "America/Los_Angeles")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(configDir(), "propdesk.log"))
	v.SetDefault("log.fluent.enabled", false)
	v.SetDefault("log.fluent.host", "127.0.0.1")
	v.SetDefault("log.fluent.port", 24224)
	v.SetDefault("log.fluent.tag_prefix", "propdesk")
	v.SetDefault("prefs.dir", configDir())
}

// Load reads configuration from file and env. A .env file in the working
// directory is loaded first; env var overrides use prefix PROPDESK_.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("PROPDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(Path()); statErr == nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Search.Delay < 0 {
		return Config{}, fmt.Errorf("search.delay must not be negative, got %s", c.Search.Delay)
	}
	return c, nil
}

// Location resolves the configured timezone, falling back to local time.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.UI.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Save writes cfg to Path, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("search.delay", cfg.Search.Delay.String())
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.fluent.enabled", cfg.Log.Fluent.Enabled)
	v.Set("log.fluent.host", cfg.Log.Fluent.Host)
	v.Set("log.fluent.port", cfg.Log.Fluent.Port)
	v.Set("log.fluent.tag_prefix", cfg.Log.Fluent.TagPrefix)
	v.Set("prefs.dir", cfg.Prefs.Dir)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
