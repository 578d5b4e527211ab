package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bft-labs/composite/internal/app"
	"github.com/bft-labs/composite/internal/compose"
	"github.com/bft-labs/composite/internal/domain"
)

// Config holds CLI configuration for composite.
type Config struct {
	BackgroundDir string
	ForegroundDir string
	OutputDir     string

	// FileTypeToken is the raw file type argument; FileType is resolved from
	// it by Validate.
	FileTypeToken string
	FileType      domain.FileType

	Size   int
	Filter string
	Kernel compose.Kernel

	OnError string
	Policy  app.ErrorPolicy

	CacheForegrounds bool
	Watch            bool
	WatchDebounce    time.Duration

	ReportPath string
	LogLevel   string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		FileType:      domain.DefaultFileType,
		Filter:        string(compose.DefaultKernel),
		OnError:       string(app.PolicyAbort),
		WatchDebounce: app.DefaultDebounce,
		LogLevel:      "info",
	}
}

// Validate checks the configuration and resolves the enumerated settings.
func (c *Config) Validate() error {
	if c.BackgroundDir == "" {
		return fmt.Errorf("%w: background-directory is required", domain.ErrInvalidConfig)
	}
	if c.ForegroundDir == "" {
		return fmt.Errorf("%w: foreground-directory is required", domain.ErrInvalidConfig)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output-directory is required", domain.ErrInvalidConfig)
	}

	ft, err := domain.ParseFileType(c.FileTypeToken)
	if err != nil {
		return err
	}
	c.FileType = ft

	if c.Size < 0 {
		return fmt.Errorf("%w: size must be positive, got %d", domain.ErrInvalidConfig, c.Size)
	}

	if c.Kernel, err = compose.ParseKernel(c.Filter); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	if c.Policy, err = app.ParseErrorPolicy(c.OnError); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}

	if c.WatchDebounce <= 0 {
		c.WatchDebounce = app.DefaultDebounce
	}
	return nil
}

// Options converts a validated Config into run options.
func (c Config) Options() app.Options {
	return app.Options{
		Dirs: app.Directories{
			Background: c.BackgroundDir,
			Foreground: c.ForegroundDir,
			Output:     c.OutputDir,
		},
		FileType: c.FileType,
		Pipeline: app.PipelineConfig{
			Size:             c.Size,
			Kernel:           c.Kernel,
			Policy:           c.Policy,
			CacheForegrounds: c.CacheForegrounds,
		},
		Watch:         c.Watch,
		WatchDebounce: c.WatchDebounce,
	}
}

// configSetter applies configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses an environment string; non-positive values are ignored.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
