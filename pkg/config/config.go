package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mchmarny/slidemenu/pkg/drawer"
	"github.com/mchmarny/slidemenu/pkg/schedule"
	"github.com/mchmarny/slidemenu/pkg/slider"
)

const (
	// DefaultPath is where the configuration is looked for when no path is given.
	DefaultPath = "slidemenu.yaml"

	// EnvPrefix marks environment overrides, e.g. SLIDEMENU_MODE=inline.
	EnvPrefix = "SLIDEMENU_"
)

// Config is the top-level slidemenu configuration, corresponding to slidemenu.yaml.
type Config struct {
	Menu        string `yaml:"menu" koanf:"menu"`
	Mode        string `yaml:"mode" koanf:"mode"`
	Title       string `yaml:"title" koanf:"title"`
	CloseLabel  string `yaml:"close_label" koanf:"close_label"`
	LogLevel    string `yaml:"log_level" koanf:"log_level"`
	LogFile     string `yaml:"log_file" koanf:"log_file"`
	MetricsPort int    `yaml:"metrics_port" koanf:"metrics_port"`
	Padding     int    `yaml:"padding" koanf:"padding"`
	DrawerWidth int    `yaml:"drawer_width" koanf:"drawer_width"`

	LeadDelay      time.Duration `yaml:"lead_delay" koanf:"lead_delay"`
	SlideDuration  time.Duration `yaml:"slide_duration" koanf:"slide_duration"`
	ShowDelay      time.Duration `yaml:"show_delay" koanf:"show_delay"`
	DrawerDuration time.Duration `yaml:"drawer_duration" koanf:"drawer_duration"`
	ResizeDebounce time.Duration `yaml:"resize_debounce" koanf:"resize_debounce"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Menu:           "menu.yaml",
		Mode:           string(slider.ModeDrawer),
		CloseLabel:     drawer.DefaultCloseLabel,
		LogLevel:       "info",
		LogFile:        "slidemenu.log",
		Padding:        slider.DefaultPadding,
		DrawerWidth:    drawer.DefaultWidth,
		LeadDelay:      slider.DefaultLeadDelay,
		SlideDuration:  slider.DefaultSlideDuration,
		ShowDelay:      drawer.DefaultShowDelay,
		DrawerDuration: drawer.DefaultDuration,
		ResizeDebounce: schedule.DefaultDebounce,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SLIDEMENU_*). A missing file is not an
// error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// SLIDEMENU_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// DisplayMode returns the parsed mode.
func (c *Config) DisplayMode() (slider.DisplayMode, error) {
	return slider.ParseMode(c.Mode)
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	var errs []error

	if c.Menu == "" {
		errs = append(errs, errors.New("menu is required"))
	}
	if _, err := c.DisplayMode(); err != nil {
		errs = append(errs, err)
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		errs = append(errs, fmt.Errorf("metrics_port %d out of range", c.MetricsPort))
	}
	if c.Padding < 0 {
		errs = append(errs, errors.New("padding must be non-negative"))
	}
	if c.DrawerWidth < 1 {
		errs = append(errs, errors.New("drawer_width must be positive"))
	}

	for name, d := range map[string]time.Duration{
		"lead_delay":      c.LeadDelay,
		"slide_duration":  c.SlideDuration,
		"show_delay":      c.ShowDelay,
		"drawer_duration": c.DrawerDuration,
		"resize_debounce": c.ResizeDebounce,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must be non-negative", name))
		}
	}

	return errors.Join(errs...)
}
