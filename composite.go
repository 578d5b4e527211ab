// Package composite overlays every foreground image centered onto every
// background image and writes one artifact per pair.
//
// Example usage:
//
//	cfg := composite.DefaultConfig()
//	cfg.BackgroundDir = "backgrounds"
//	cfg.ForegroundDir = "foregrounds"
//	cfg.OutputDir = "out"
//	report, err := composite.Run(context.Background(), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Written, "images written")
package composite

import (
	"context"

	fsadapter "github.com/bft-labs/composite/internal/adapters/fs"
	"github.com/bft-labs/composite/internal/app"
	"github.com/bft-labs/composite/internal/cliconfig"
	"github.com/bft-labs/composite/internal/domain"
	"github.com/bft-labs/composite/pkg/log"
)

// Config holds the run configuration.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// Report summarizes a run.
type Report = domain.Report

// DefaultConfig returns a Config with default values. The three directories
// must be set before calling Run.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Option configures optional behavior of Run.
type Option func(*options)

type options struct {
	logger log.Logger
}

// WithLogger sets the logger. Without it Run logs nothing.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Run validates cfg and composites the full cross product of background and
// foreground images. With cfg.Watch it keeps running until ctx is canceled.
func Run(ctx context.Context, cfg Config, opts ...Option) (Report, error) {
	o := options{logger: log.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	deps := app.Deps{
		Enumerator: fsadapter.NewEnumerator(),
		Store:      fsadapter.NewImageStore(),
		Checker:    fsadapter.DirChecker{},
		Logger:     o.logger,
	}
	if cfg.ReportPath != "" {
		deps.Reports = fsadapter.NewReportFileRepository(cfg.ReportPath)
	}

	return app.Run(ctx, cfg.Options(), deps)
}
