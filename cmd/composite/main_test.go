package main

import (
	"testing"

	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/composite/pkg/log"
)

type levelLogger struct {
	levels []string
}

func (l *levelLogger) Debug(msg string, fields ...log.Field) { l.levels = append(l.levels, "debug") }
func (l *levelLogger) Info(msg string, fields ...log.Field)  { l.levels = append(l.levels, "info") }
func (l *levelLogger) Warn(msg string, fields ...log.Field)  { l.levels = append(l.levels, "warn") }
func (l *levelLogger) Error(msg string, fields ...log.Field) { l.levels = append(l.levels, "error") }

func TestHideFlag(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Duration("watch-debounce", 0, "")

	logger := &levelLogger{}
	hideFlag(flags, "watch-debounce", logger)
	if !flags.Lookup("watch-debounce").Hidden {
		t.Fatal("flag should be hidden")
	}
	if len(logger.levels) != 0 {
		t.Fatalf("unexpected log output: %v", logger.levels)
	}

	hideFlag(flags, "no-such-flag", logger)
	if len(logger.levels) != 1 || logger.levels[0] != "warn" {
		t.Fatalf("levels = %v, want a single warn", logger.levels)
	}
}
