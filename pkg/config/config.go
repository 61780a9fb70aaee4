// Package config loads Retrier parameters from YAML.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jzx17/goretry/pkg/retry"
	"github.com/jzx17/goretry/pkg/types"
)

// Config holds Retrier parameters as duration strings
type Config struct {
	Timeout      string `yaml:"timeout"`
	MaxDelay     string `yaml:"max_delay"`
	BackoffFloor string `yaml:"backoff_floor"`
}

// Default returns the built-in retrier parameters
func Default() Config {
	return Config{
		Timeout:      "6s",
		MaxDelay:     "1s",
		BackoffFloor: "1s",
	}
}

// Load reads configuration from a YAML file. Environment variables in the
// file are expanded before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into a Config. Fields left empty keep their defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// an explicit empty string still means default
	defaults := Default()
	if cfg.Timeout == "" {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.MaxDelay == "" {
		cfg.MaxDelay = defaults.MaxDelay
	}
	if cfg.BackoffFloor == "" {
		cfg.BackoffFloor = defaults.BackoffFloor
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every duration parses and is positive
func (c Config) Validate() error {
	_, err := c.durations()
	return err
}

// Options converts the configuration into retrier options
func (c Config) Options() ([]retry.Option, error) {
	d, err := c.durations()
	if err != nil {
		return nil, err
	}
	return []retry.Option{
		retry.WithTimeout(d.timeout),
		retry.WithMaxDelay(d.maxDelay),
		retry.WithBackoffFloor(d.floor),
	}, nil
}

type durations struct {
	timeout  time.Duration
	maxDelay time.Duration
	floor    time.Duration
}

func (c Config) durations() (durations, error) {
	var d durations
	fields := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"timeout", c.Timeout, &d.timeout},
		{"max_delay", c.MaxDelay, &d.maxDelay},
		{"backoff_floor", c.BackoffFloor, &d.floor},
	}

	for _, f := range fields {
		v, err := ParseDuration(f.value)
		if err != nil {
			return d, fmt.Errorf("%s: %w", f.name, err)
		}
		if v <= 0 {
			return d, fmt.Errorf("%w: %s must be positive, got %v", types.ErrInvalidInput, f.name, v)
		}
		*f.dst = v
	}
	return d, nil
}

// ParseDuration parses a duration string such as "6s" or "250ms". A bare
// integer is read as milliseconds.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty duration", types.ErrInvalidInput)
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", types.ErrInvalidInput, err)
	}
	return d, nil
}
