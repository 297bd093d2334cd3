// Package config provides configuration management for the scenario parser.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "scenario-parser/internal/errors"
	"scenario-parser/internal/logging"
	"scenario-parser/internal/models"
)

// ConfigFileName is the base name of the main configuration file.
const ConfigFileName = "config"

// Config holds all application configuration.
type Config struct {
	Parser  ParserConfig  `mapstructure:"parser" json:"parser"`
	Symbols SymbolsConfig `mapstructure:"symbols" json:"symbols"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging"`
	UI      UIConfig      `mapstructure:"ui" json:"ui"`

	// Path is the file the configuration was read from. Empty when only
	// defaults were applied.
	Path string `mapstructure:"-" json:"path,omitempty"`

	// TemplateErr records why a missing config.toml could not be replaced
	// by the template. Load still succeeds with defaults.
	TemplateErr error `mapstructure:"-" json:"-"`
}

// ParserConfig holds extraction policy.
type ParserConfig struct {
	// DefaultTimeframe is assigned to levels with no timeframe mention.
	// Empty means such levels are dropped.
	DefaultTimeframe string `mapstructure:"default_timeframe" json:"default_timeframe"`
}

// SymbolsConfig holds additional instrument aliases.
type SymbolsConfig struct {
	Aliases map[string]string `mapstructure:"aliases" json:"aliases"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level" json:"level"`
	File       bool   `mapstructure:"file" json:"file"`
	FilePath   string `mapstructure:"file_path" json:"file_path"`
	MaxSize    int    `mapstructure:"max_size" json:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" json:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" json:"max_age"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled" json:"color_enabled"`
	DateFormat   string `mapstructure:"date_format" json:"date_format"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/scenario-parser"
	}
	return filepath.Join(home, ".config", "scenario-parser")
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	v := viper.New()
	setDefaults(v)
	// Unmarshalling defaults into a plain struct cannot fail.
	_ = v.Unmarshal(cfg)
	if cfg.Symbols.Aliases == nil {
		cfg.Symbols.Aliases = map[string]string{}
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	logDefaults := logging.DefaultLogConfig()

	v.SetDefault("parser.default_timeframe", string(models.TimeframeDaily))
	v.SetDefault("symbols.aliases", map[string]string{})
	v.SetDefault("logging.level", logDefaults.Level)
	v.SetDefault("logging.file", logDefaults.File)
	v.SetDefault("logging.file_path", logDefaults.FilePath)
	v.SetDefault("logging.max_size", logDefaults.MaxSize)
	v.SetDefault("logging.max_backups", logDefaults.MaxBackups)
	v.SetDefault("logging.max_age", logDefaults.MaxAge)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "2006-01-02 15:04")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing
// config.toml is replaced by a commented template and defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	// A .env file in the working directory may carry SCENARIO_* overrides.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, apperrors.Wrap(err, "loading .env")
	}

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v)

	cfg := &Config{}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("%w: reading config.toml: %v", apperrors.ErrConfigInvalid, err)
		}
		// Defaults still apply; the caller decides how to report this.
		if err := createTemplateConfig(configDir); err != nil {
			cfg.TemplateErr = err
		}
	} else {
		cfg.Path = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: decoding config: %v", apperrors.ErrConfigInvalid, err)
	}
	if cfg.Symbols.Aliases == nil {
		cfg.Symbols.Aliases = map[string]string{}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrap(err, "validating config")
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("SCENARIO_LOG_LEVEL"); ok && v != "" {
		cfg.Logging.Level = v
	}
	// Present-but-empty is meaningful: it selects the drop policy.
	if v, ok := os.LookupEnv("SCENARIO_DEFAULT_TIMEFRAME"); ok {
		cfg.Parser.DefaultTimeframe = strings.TrimSpace(v)
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if tf := c.Parser.DefaultTimeframe; tf != "" && !models.Timeframe(tf).Valid() {
		return fmt.Errorf("%w: default_timeframe %q (must be daily, weekly, monthly or empty)",
			apperrors.ErrConfigInvalid, tf)
	}

	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("%w: logging level %q", apperrors.ErrConfigInvalid, c.Logging.Level)
	}
	if c.Logging.MaxSize < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAge < 0 {
		return fmt.Errorf("%w: log rotation values must be non-negative", apperrors.ErrConfigInvalid)
	}

	for alias, symbol := range c.Symbols.Aliases {
		if strings.TrimSpace(alias) == "" || strings.TrimSpace(symbol) == "" {
			return fmt.Errorf("%w: alias %q -> %q must both be non-empty",
				apperrors.ErrConfigInvalid, alias, symbol)
		}
	}

	return nil
}

// Timeframe returns the configured default timeframe.
func (c *Config) Timeframe() models.Timeframe {
	return models.Timeframe(c.Parser.DefaultTimeframe)
}

// LogConfig converts the logging section into a logger configuration.
func (c *Config) LogConfig() logging.LogConfig {
	lc := logging.DefaultLogConfig()
	lc.Level = c.Logging.Level
	lc.File = c.Logging.File
	if c.Logging.FilePath != "" {
		lc.FilePath = c.Logging.FilePath
	}
	lc.MaxSize = c.Logging.MaxSize
	lc.MaxBackups = c.Logging.MaxBackups
	lc.MaxAge = c.Logging.MaxAge
	return lc
}
