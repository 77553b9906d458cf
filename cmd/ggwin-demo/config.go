package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/ggwin"
)

// config is the demo's YAML configuration.
type config struct {
	Backend      string         `yaml:"backend"`
	SwapInterval *int           `yaml:"swap_interval"`
	LogLevel     string         `yaml:"log_level"`
	Windows      []windowConfig `yaml:"windows"`
}

type windowConfig struct {
	Title       string `yaml:"title"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	X           int    `yaml:"x"`
	Y           int    `yaml:"y"`
	Background  string `yaml:"background"`
	Transparent bool   `yaml:"transparent"`
}

func defaultConfig() config {
	return config{
		Backend:  "auto",
		LogLevel: "info",
		Windows: []windowConfig{
			{Title: "ggwin demo", Width: 640, Height: 480, Background: "#1e2430"},
			{Title: "ggwin demo (second window)", Width: 400, Height: 300, Background: "#30241e"},
		},
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (config, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Windows) == 0 {
		return cfg, fmt.Errorf("config: no windows")
	}
	if _, err := cfg.backend(); err != nil {
		return cfg, err
	}
	if _, err := cfg.level(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c config) backend() (ggwin.Backend, error) {
	switch strings.ToLower(c.Backend) {
	case "", "auto":
		return ggwin.BackendUninitialized, nil
	case "software":
		return ggwin.BackendSoftware, nil
	default:
		return 0, fmt.Errorf("config: unknown backend %q (want auto or software)", c.Backend)
	}
}

func (c config) level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log level: %w", err)
	}
	return l, nil
}

func (c config) options(logger *slog.Logger) []ggwin.Option {
	opts := []ggwin.Option{ggwin.WithLogger(logger)}
	// auto keeps the GGWIN_BACKEND override.
	if b, _ := c.backend(); b != ggwin.BackendUninitialized {
		opts = append(opts, ggwin.WithBackend(b))
	}
	if c.SwapInterval != nil {
		opts = append(opts, ggwin.WithSwapInterval(*c.SwapInterval))
	}
	return opts
}

func (w windowConfig) spec() ggwin.WindowSpec {
	return ggwin.WindowSpec{
		Title:       w.Title,
		X:           w.X,
		Y:           w.Y,
		Width:       w.Width,
		Height:      w.Height,
		Transparent: w.Transparent,
	}
}
