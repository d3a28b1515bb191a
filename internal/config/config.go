package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	History   HistoryConfig   `mapstructure:"history"`
	Stopwatch StopwatchConfig `mapstructure:"stopwatch"`
	Converter ConverterConfig `mapstructure:"converter"`
	Rates     RatesConfig     `mapstructure:"rates"`
	Log       LogConfig       `mapstructure:"log"`
	UI        UIConfig        `mapstructure:"ui"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"history_path"`
}

// HistoryConfig toggles the conversion/session journal.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type StopwatchConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"gte=1ms"`
	Layout       string        `mapstructure:"layout" validate:"oneof=centiseconds legacy"`
}

type ConverterConfig struct {
	Variant     string        `mapstructure:"variant" validate:"oneof=static live"`
	DefaultFrom string        `mapstructure:"default_from" validate:"len=3,alpha,uppercase"`
	DefaultTo   string        `mapstructure:"default_to" validate:"len=3,alpha,uppercase"`
	MockDelay   time.Duration `mapstructure:"mock_delay" validate:"gte=0s"`
}

// RatesConfig points the live variant at a rate-table endpoint.
type RatesConfig struct {
	BaseURL       string        `mapstructure:"base_url" validate:"required,url"`
	ReferenceBase string        `mapstructure:"reference_base" validate:"len=3,alpha,uppercase"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0s"`
}

type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	StartView string `mapstructure:"start_view" validate:"oneof=stopwatch converter"`
}

// Load reads configuration from .env, file and env. Env var overrides use prefix TICKRATE_.
func Load() (Config, error) {
	// .env is optional; a missing file is not an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TICKRATE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "tickrate"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TICKRATE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Converter.DefaultFrom = strings.ToUpper(c.Converter.DefaultFrom)
	c.Converter.DefaultTo = strings.ToUpper(c.Converter.DefaultTo)
	c.Rates.ReferenceBase = strings.ToUpper(c.Rates.ReferenceBase)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	home := os.Getenv("HOME")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "tickrate", "tickrate.db"))
	v.SetDefault("history.enabled", true)
	v.SetDefault("stopwatch.tick_interval", "10ms")
	v.SetDefault("stopwatch.layout", "centiseconds")
	v.SetDefault("converter.variant", "static")
	v.SetDefault("converter.default_from", "USD")
	v.SetDefault("converter.default_to", "EUR")
	v.SetDefault("converter.mock_delay", "1s")
	v.SetDefault("rates.base_url", "https://api.exchangerate-api.com/v4/latest")
	v.SetDefault("rates.reference_base", "USD")
	v.SetDefault("rates.timeout", "10s")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "tickrate", "tickrate.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.start_view", "stopwatch")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	err := val.RegisterValidation("history_path", func(fl validator.FieldLevel) bool {
		cfg, ok := fl.Top().Interface().(Config)
		if !ok || !cfg.History.Enabled {
			return true
		}
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	if err != nil {
		panic(fmt.Sprintf("config: register history_path validation: %v", err))
	}
	return val
}

// Validate checks option values and durations.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config %s: failed %q (value %v)", strings.ToLower(fe.Namespace()), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Path is the file Save writes to: $TICKRATE_CONFIG, or the default
// location under the user's config directory.
func Path() string {
	if p := os.Getenv("TICKRATE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "tickrate", "config.toml")
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("history.enabled", cfg.History.Enabled)
	v.Set("stopwatch.tick_interval", cfg.Stopwatch.TickInterval.String())
	v.Set("stopwatch.layout", cfg.Stopwatch.Layout)
	v.Set("converter.variant", cfg.Converter.Variant)
	v.Set("converter.default_from", cfg.Converter.DefaultFrom)
	v.Set("converter.default_to", cfg.Converter.DefaultTo)
	v.Set("converter.mock_delay", cfg.Converter.MockDelay.String())
	v.Set("rates.base_url", cfg.Rates.BaseURL)
	v.Set("rates.reference_base", cfg.Rates.ReferenceBase)
	v.Set("rates.timeout", cfg.Rates.Timeout.String())
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.start_view", cfg.UI.StartView)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
