package main

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings, loaded from a YAML file.
type Config struct {
	// Server we connect to
	Server   string `yaml:"server"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	Password string `yaml:"password"` // server password, optional

	// Our identity
	Nick     string `yaml:"nick"`
	User     string `yaml:"user"`
	RealName string `yaml:"realname"`

	// Behavior
	Channels     []string `yaml:"channels"`
	Prefix       string   `yaml:"prefix"`
	Superusers   []string `yaml:"superusers"` // regexps matched against nick!user@host
	AccountsFile string   `yaml:"accounts_file"`
	LogLevel     string   `yaml:"log_level"` // debug|info|warn|error

	// Compiled at load
	superusers []*regexp.Regexp
}

// LoadConfig reads, defaults and validates the YAML config at path. The
// NEWBOT_PASSWORD environment variable overrides the server password so it
// can stay out of the file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if pass := os.Getenv("NEWBOT_PASSWORD"); pass != "" {
		cfg.Password = pass
	}

	// Defaults
	if cfg.Port == 0 {
		cfg.Port = 6667
	}
	if cfg.User == "" {
		cfg.User = cfg.Nick
	}
	if cfg.RealName == "" {
		cfg.RealName = cfg.Nick
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "!"
	}
	if cfg.AccountsFile == "" {
		cfg.AccountsFile = "accounts.json"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	// Validation
	if cfg.Server == "" {
		return nil, fmt.Errorf("server is required")
	}
	if cfg.Nick == "" {
		return nil, fmt.Errorf("nick is required")
	}
	if len(cfg.Prefix) != 1 {
		return nil, fmt.Errorf("prefix must be exactly one character, got %q", cfg.Prefix)
	}
	if err := cfg.compileSuperusers(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// compileSuperusers turns the configured patterns into matchers.
func (c *Config) compileSuperusers() error {
	c.superusers = c.superusers[:0]
	for _, pat := range c.Superusers {
		re, err := regexp.Compile(pat)
		if err != nil {
			return fmt.Errorf("superuser pattern %q: %w", pat, err)
		}
		c.superusers = append(c.superusers, re)
	}
	return nil
}
