package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML-friendly types.
type FileConfig struct {
	BackgroundDir    string `toml:"background_directory"`
	ForegroundDir    string `toml:"foreground_directory"`
	OutputDir        string `toml:"output_directory"`
	FileType         string `toml:"file_type"`
	Size             int    `toml:"size"`
	Filter           string `toml:"filter"`
	OnError          string `toml:"on_error"`
	CacheForegrounds *bool  `toml:"cache_foregrounds"`
	Watch            *bool  `toml:"watch"`
	WatchDebounce    string `toml:"watch_debounce"`
	ReportPath       string `toml:"report"`
	LogLevel         string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.composite/config.toml, or "" without a home directory.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".composite", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies values from a config file, skipping any flag in changed.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("background-directory", fc.BackgroundDir, &cfg.BackgroundDir)
	s.setString("foreground-directory", fc.ForegroundDir, &cfg.ForegroundDir)
	s.setString("output-directory", fc.OutputDir, &cfg.OutputDir)
	s.setString("file-type", fc.FileType, &cfg.FileTypeToken)
	s.setString("filter", fc.Filter, &cfg.Filter)
	s.setString("on-error", fc.OnError, &cfg.OnError)
	s.setString("report", fc.ReportPath, &cfg.ReportPath)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setInt("size", fc.Size, &cfg.Size)

	if err := s.setDuration("watch-debounce", fc.WatchDebounce, &cfg.WatchDebounce); err != nil {
		return err
	}

	s.setBool("cache-foregrounds", fc.CacheForegrounds, &cfg.CacheForegrounds)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
