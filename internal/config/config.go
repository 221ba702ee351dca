// Package config provides Viper-based configuration loading for the console.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ConsoleConfig holds console backend settings.
type ConsoleConfig struct {
	// ConfigDir is the directory .cfg batch files are resolved under.
	ConfigDir string `mapstructure:"config_dir"`
	// HistorySize is the command history ring capacity.
	HistorySize int `mapstructure:"history_size"`
	// Mode is the run mode: "offline", "client", or "server".
	Mode string `mapstructure:"mode"`
	// Headless skips graphics-only commands and variables.
	Headless bool `mapstructure:"headless"`
	// Autoexec is the batch file run at startup; empty disables it.
	Autoexec string `mapstructure:"autoexec"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Console ConsoleConfig `mapstructure:"console"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateConsole(c.Console); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateConsole(c ConsoleConfig) error {
	var errs []string
	if c.ConfigDir == "" {
		errs = append(errs, "console.config_dir must not be empty")
	}
	if c.HistorySize < 2 {
		errs = append(errs, fmt.Sprintf("console.history_size must be >= 2, got %d", c.HistorySize))
	}
	validModes := map[string]bool{"offline": true, "client": true, "server": true}
	if !validModes[c.Mode] {
		errs = append(errs, fmt.Sprintf("console.mode must be one of [offline, client, server], got %q", c.Mode))
	}
	if strings.ContainsAny(c.Autoexec, `/\`) {
		errs = append(errs, fmt.Sprintf("console.autoexec must be a bare file name, got %q", c.Autoexec))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path loads defaults and
// environment overrides only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with TCCONSOLE_ prefix
	v.SetEnvPrefix("TCCONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("console.config_dir", "Cfg")
	v.SetDefault("console.history_size", 50)
	v.SetDefault("console.mode", "offline")
	v.SetDefault("console.headless", false)
	v.SetDefault("console.autoexec", "autoexec")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
