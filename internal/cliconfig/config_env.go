package cliconfig

import "os"

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "COMPOSITE_"

// ApplyEnvConfig applies COMPOSITE_* environment variables, skipping any flag
// in changed. Returns an error if a variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)
	env := func(name string) string { return os.Getenv(EnvPrefix + name) }

	s.setString("background-directory", env("BACKGROUND_DIRECTORY"), &cfg.BackgroundDir)
	s.setString("foreground-directory", env("FOREGROUND_DIRECTORY"), &cfg.ForegroundDir)
	s.setString("output-directory", env("OUTPUT_DIRECTORY"), &cfg.OutputDir)
	s.setString("file-type", env("FILE_TYPE"), &cfg.FileTypeToken)
	s.setString("filter", env("FILTER"), &cfg.Filter)
	s.setString("on-error", env("ON_ERROR"), &cfg.OnError)
	s.setString("report", env("REPORT"), &cfg.ReportPath)
	s.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("size", env("SIZE"), &cfg.Size); err != nil {
		return err
	}
	if err := s.setDuration("watch-debounce", env("WATCH_DEBOUNCE"), &cfg.WatchDebounce); err != nil {
		return err
	}

	s.setBoolFromString("cache-foregrounds", env("CACHE_FOREGROUNDS"), &cfg.CacheForegrounds)
	s.setBoolFromString("watch", env("WATCH"), &cfg.Watch)

	return nil
}
