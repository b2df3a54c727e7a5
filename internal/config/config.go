// Package config loads the windisplay TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"
)

const (
	cfgDirName  = "windisplay"
	cfgFileName = "config.toml"

	defaultBackend       = "auto"
	defaultLogLevel      = "warn"
	defaultScriptTimeout = 10 * time.Second
)

type Config struct {
	path string
	// Backend is auto, hardware or fake.
	Backend  string `toml:"backend"`
	LogLevel string `toml:"log_level"`
	// ScriptTimeout bounds each PowerShell query, e.g. "10s".
	ScriptTimeout string `toml:"script_timeout"`
}

// InitConfig reads the config at path, or at the default location when path
// is empty, creating it with defaults if it does not exist.
func InitConfig(path string) (*Config, error) {
	if path == "" {
		uc, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("getting user config directory path: %w", err)
		}
		path = filepath.Join(uc, cfgDirName, cfgFileName)
	}

	return readConfig(path)
}

func defaultCfg(path string) *Config {
	return &Config{
		path:          path,
		Backend:       defaultBackend,
		LogLevel:      defaultLogLevel,
		ScriptTimeout: defaultScriptTimeout.String(),
	}
}

func readConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		logrus.WithField("path", path).Infoln("no config file found; creating default")
		if err := defaultCfg(path).Write(); err != nil {
			return nil, fmt.Errorf("creating default config file: %w", err)
		}
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(file, cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling toml: %w", err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg.path = path
	return cfg, nil
}

func (c *Config) fillDefaults() {
	def := defaultCfg(c.path)
	if c.Backend == "" {
		c.Backend = def.Backend
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.ScriptTimeout == "" {
		c.ScriptTimeout = def.ScriptTimeout
	}
}

func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	return nil
}

// Timeout parses ScriptTimeout; an empty value means the default.
func (c *Config) Timeout() (time.Duration, error) {
	if c.ScriptTimeout == "" {
		return defaultScriptTimeout, nil
	}
	d, err := time.ParseDuration(c.ScriptTimeout)
	if err != nil {
		return 0, fmt.Errorf("script_timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("script_timeout must be positive, got %s", d)
	}
	return d, nil
}

// Path is the file the config was read from.
func (c *Config) Path() string {
	return c.path
}

func (c *Config) Write() error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("checking and/or creating config directory: %w", err)
	}

	b, err := toml.Marshal(*c)
	if err != nil {
		return fmt.Errorf("marshaling toml: %w", err)
	}

	if err := os.WriteFile(c.path, b, 0o644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}
