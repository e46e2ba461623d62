// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// duration makes time.Duration parseable from YAML strings like "250ms".
type duration time.Duration

func (d *duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = duration(parsed)
	return nil
}

// serveConfig configures the demo server. Every field has a default; a
// YAML file given via --config overrides the defaults and flags override
// the file.
type serveConfig struct {
	Port          uint16   `yaml:"port"`
	MetricsListen string   `yaml:"metrics_listen"`
	LogLevel      string   `yaml:"log_level"`
	Count         int      `yaml:"count"`
	Interval      duration `yaml:"interval"`
	Farewell      string   `yaml:"farewell"`
}

func defaultServeConfig() serveConfig {
	return serveConfig{
		Port:     12345,
		LogLevel: "info",
		Count:    30,
		Interval: duration(time.Second),
		Farewell: "thank you for travelling with Deutsche Bahn",
	}
}

func loadServeConfig(path string) (serveConfig, error) {
	cfg := defaultServeConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
