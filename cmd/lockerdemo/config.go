package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/hfsm/internal/production"
)

// Config is the demo configuration file.
type Config struct {
	Name     string   `yaml:"name"`
	LogLevel string   `yaml:"log_level"`
	Journal  string   `yaml:"journal"`
	Format   string   `yaml:"format"`
	Script   []string `yaml:"script"`
}

// DefaultConfig runs one full rental cycle against an in-memory journal.
func DefaultConfig() Config {
	return Config{
		Name:     "locker",
		LogLevel: "info",
		Journal:  "memory",
		Format:   "text",
		Script: []string{
			"PressRental",
			"PressReturn",
			"PressUnlock",
			"PressLock",
			"PressUnlock",
			"PressLock:return",
		},
	}
}

// LoadConfig reads path over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("yaml unmarshal %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

var formats = map[string]bool{"text": true, "dot": true, "json": true, "yaml": true, "none": true}

func (c Config) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if !formats[c.Format] {
		errs = append(errs, fmt.Errorf("unknown format %q", c.Format))
	}
	if _, _, err := splitJournal(c.Journal); err != nil {
		errs = append(errs, err)
	}
	for _, line := range c.Script {
		if _, err := parseEvent(line); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

func splitJournal(spec string) (kind, target string, err error) {
	kind, target, _ = strings.Cut(spec, ":")
	switch kind {
	case "memory":
		return kind, "", nil
	case "yaml", "sqlite":
		if target == "" {
			return "", "", fmt.Errorf("journal %q: missing location", spec)
		}
		return kind, target, nil
	}
	return "", "", fmt.Errorf("unknown journal %q", spec)
}

// OpenJournal opens the journal named by spec: "memory", "yaml:<dir>" or
// "sqlite:<dsn>".
func OpenJournal(spec string) (production.Journal, error) {
	kind, target, err := splitJournal(spec)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "yaml":
		return production.NewYAMLJournal(target)
	case "sqlite":
		return production.OpenSQLiteJournal(target)
	}
	return production.NewMemoryJournal(), nil
}
