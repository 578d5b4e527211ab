package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bft-labs/composite/internal/domain"
	"github.com/bft-labs/composite/internal/ports"
	"github.com/bft-labs/composite/pkg/log"
)

// Options describes one invocation.
type Options struct {
	Dirs     Directories
	FileType domain.FileType
	Pipeline PipelineConfig

	// Watch keeps running after the initial batch and composites new files.
	Watch         bool
	WatchDebounce time.Duration
}

// Deps are the adapters a run needs. Reports may be nil.
type Deps struct {
	Enumerator ports.Enumerator
	Store      ports.ImageStore
	Checker    ports.DirChecker
	Reports    ports.ReportRepository
	Logger     ports.Logger
}

// Run validates the directories, composites the full cross product and, if
// asked, keeps watching for new inputs until ctx is canceled.
//
// Precondition failures return before anything is read or written,
// including the report.
func Run(ctx context.Context, opts Options, deps Deps) (domain.Report, error) {
	job, err := ResolvePaths(opts.Dirs, opts.FileType, deps.Checker, deps.Logger)
	if err != nil {
		return domain.Report{}, err
	}

	if deps.Reports != nil {
		checkPrevious(ctx, deps.Reports, deps.Logger)
	}

	pipeline := NewPipeline(opts.Pipeline, deps.Enumerator, deps.Store, deps.Logger)

	var watcher *Watcher
	if opts.Watch {
		if watcher, err = NewWatcher(pipeline, deps.Enumerator, job, deps.Logger, opts.WatchDebounce); err != nil {
			return domain.Report{Job: job}, err
		}
		if err := watcher.Start(); err != nil {
			return domain.Report{Job: job}, err
		}
		defer watcher.Close()
	}

	report, runErr := pipeline.Run(ctx, job)

	if deps.Reports != nil {
		if err := deps.Reports.Save(ctx, report); err != nil {
			deps.Logger.Error("failed to save report", log.Err(err))
			if runErr == nil {
				runErr = fmt.Errorf("save report: %w", err)
			}
		}
	}

	if watcher == nil || (runErr != nil && !errors.Is(runErr, domain.ErrPairsFailed)) {
		return report, runErr
	}
	if err := watcher.Run(ctx); err != nil {
		return report, err
	}
	return report, runErr
}

// checkPrevious warns when the report left by the last run shows it never
// completed, since its output directory may hold a partial set of artifacts.
func checkPrevious(ctx context.Context, reports ports.ReportRepository, logger ports.Logger) {
	prev, err := reports.Load(ctx)
	if err != nil {
		logger.Warn("failed to read previous report", log.Err(err))
		return
	}
	if prev.StartedAt.IsZero() || prev.Completed {
		return
	}
	logger.Warn("previous run did not complete",
		log.String("output", prev.Job.OutputDir),
		log.Int("written", prev.Written),
		log.String("abort", prev.Abort))
}
