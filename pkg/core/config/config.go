// ============================================================================
// thing - Lexer, Pratt Parser and Diagnostics Toolchain
// ============================================================================
//
// Package:     config
// Description: TOML and YAML configuration for the CLI, workbench and watcher
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	thingerror "github.com/msto63/thing/foundation/core/error"
)

// EnvConfigPath names the environment variable holding the config path
const EnvConfigPath = "THING_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General     GeneralConfig     `toml:"general" yaml:"general"`
	Parser      ParserConfig      `toml:"parser" yaml:"parser"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics" yaml:"diagnostics"`
	Server      ServerConfig      `toml:"server" yaml:"server"`
	Watch       WatchConfig       `toml:"watch" yaml:"watch"`

	// Path is the file the configuration was loaded from, empty for defaults
	Path string `toml:"-" yaml:"-"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Environment string `toml:"environment" yaml:"environment"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	LogFormat   string `toml:"log_format" yaml:"log_format"`
}

// ParserConfig holds grammar entry point and resource limits
type ParserConfig struct {
	Mode           string `toml:"mode" yaml:"mode"`
	MaxDepth       int    `toml:"max_depth" yaml:"max_depth"`
	MaxInputLength int    `toml:"max_input_length" yaml:"max_input_length"`
}

// DiagnosticsConfig holds diagnostic rendering settings
type DiagnosticsConfig struct {
	NoColor   bool `toml:"no_color" yaml:"no_color"`
	MaxErrors int  `toml:"max_errors" yaml:"max_errors"`
}

// ServerConfig holds workbench service configuration
type ServerConfig struct {
	Port            int      `toml:"port" yaml:"port"`
	Host            string   `toml:"host" yaml:"host"`
	ReadTimeout     Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
	CacheTTL        Duration `toml:"cache_ttl" yaml:"cache_ttl"`
	CacheMaxEntries int      `toml:"cache_max_entries" yaml:"cache_max_entries"`
	AllowedOrigins  []string `toml:"allowed_origins" yaml:"allowed_origins"`
}

// WatchConfig holds file watcher settings
type WatchConfig struct {
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// MarshalYAML formats the duration as a string
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		code := thingerror.CodeConfigError
		if os.IsNotExist(err) {
			code = thingerror.CodeNotFound
		}
		return nil, thingerror.Wrap(err, "config file not readable").
			WithCode(code).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &cfg)
	default:
		_, err = toml.Decode(string(content), &cfg)
	}
	if err != nil {
		return nil, thingerror.Wrap(err, "failed to parse config").
			WithCode(thingerror.CodeInvalidConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from THING_CONFIG or the first existing
// default location. Without any file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		defaultPaths := []string{
			"./configs/config.toml",
			"./config.toml",
			"./config.yaml",
		}
		if home, err := os.UserHomeDir(); err == nil {
			defaultPaths = append(defaultPaths, filepath.Join(home, ".config", "thing", "config.toml"))
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "thing"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Parser
	if c.Parser.Mode == "" {
		c.Parser.Mode = "program"
	}
	if c.Parser.MaxDepth == 0 {
		c.Parser.MaxDepth = 10000
	}
	if c.Parser.MaxInputLength == 0 {
		c.Parser.MaxInputLength = 1 << 20
	}

	// Diagnostics
	if c.Diagnostics.MaxErrors == 0 {
		c.Diagnostics.MaxErrors = 50
	}

	// Server
	if c.Server.Port == 0 {
		c.Server.Port = 8470
	}
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 15 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 30 * time.Second
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 10 * time.Second
	}
	if c.Server.CacheTTL.Duration == 0 {
		c.Server.CacheTTL.Duration = 5 * time.Minute
	}
	if c.Server.CacheMaxEntries == 0 {
		c.Server.CacheMaxEntries = 512
	}

	// Watch
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 150 * time.Millisecond
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.Server.Host = os.ExpandEnv(c.Server.Host)
	for i, origin := range c.Server.AllowedOrigins {
		c.Server.AllowedOrigins[i] = os.ExpandEnv(origin)
	}
}

// Validate checks value ranges after defaults are applied
func (c *Config) Validate() error {
	invalid := func(field string, value interface{}) error {
		return thingerror.Newf("invalid value for %s: %v", field, value).
			WithCode(thingerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("field", field)
	}

	switch c.Parser.Mode {
	case "expression", "statement", "program":
	default:
		return invalid("parser.mode", c.Parser.Mode)
	}
	if c.Parser.MaxDepth < 0 {
		return invalid("parser.max_depth", c.Parser.MaxDepth)
	}
	if c.Parser.MaxInputLength < 0 {
		return invalid("parser.max_input_length", c.Parser.MaxInputLength)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port", c.Server.Port)
	}
	if c.Server.CacheMaxEntries < 0 {
		return invalid("server.cache_max_entries", c.Server.CacheMaxEntries)
	}
	return nil
}

// Address returns the listen address of the workbench service
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
