package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/composite/internal/domain"
	"github.com/bft-labs/composite/internal/ports"
	"github.com/bft-labs/composite/pkg/log"
)

// DefaultDebounce is the quiet period after the last event for a path before
// that path is composited.
const DefaultDebounce = 250 * time.Millisecond

// Watcher composites images added to the background or foreground trees
// after the initial run.
type Watcher struct {
	pipeline *Pipeline
	enum     ports.Enumerator
	job      domain.Job
	logger   ports.Logger
	debounce time.Duration
	pattern  string

	fsw *fsnotify.Watcher
}

// NewWatcher creates a Watcher for job. The output directory may not be one
// of the watched directories, or every artifact would be picked up as input.
func NewWatcher(pipeline *Pipeline, enum ports.Enumerator, job domain.Job, logger ports.Logger, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	var err error
	for _, dir := range []*string{&job.BackgroundDir, &job.ForegroundDir, &job.OutputDir} {
		if *dir, err = filepath.Abs(*dir); err != nil {
			return nil, err
		}
	}
	if job.OutputDir == job.BackgroundDir || job.OutputDir == job.ForegroundDir {
		return nil, fmt.Errorf("%w: watch mode needs an output directory separate from the input directories", domain.ErrInvalidConfig)
	}
	return &Watcher{
		pipeline: pipeline,
		enum:     enum,
		job:      job,
		logger:   logger,
		debounce: debounce,
		pattern:  "*." + job.Ext,
	}, nil
}

// Start registers the watches. Calling it before the initial run means files
// added while that run is in progress are still picked up.
func (w *Watcher) Start() error {
	if w.fsw != nil {
		return nil
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	for _, root := range []string{w.job.BackgroundDir, w.job.ForegroundDir} {
		if err := w.addTree(fsw, root); err != nil {
			fsw.Close()
			return fmt.Errorf("watch %s: %w", root, err)
		}
	}
	w.fsw = fsw
	return nil
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	if w.fsw == nil {
		return nil
	}
	err := w.fsw.Close()
	w.fsw = nil
	return err
}

// Run watches until ctx is canceled. Compositing failures are logged and do
// not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Close()
	watcher := w.fsw

	w.logger.Info("watching for new images",
		log.String("background", w.job.BackgroundDir),
		log.String("foreground", w.job.ForegroundDir))

	// pending maps each queued path to the end of its own quiet period.
	pending := make(map[string]time.Time)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	rearm := func() {
		if next, ok := nextDeadline(pending); ok {
			timer.Reset(time.Until(next))
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(watcher, event, pending) {
				rearm()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", log.Err(err))

		case <-timer.C:
			w.flush(ctx, due(pending, time.Now()))
			rearm()
		}
	}
}

// handleEvent updates pending and reports whether anything was queued.
func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event, pending map[string]time.Time) bool {
	path := event.Name
	if w.isOutput(path) {
		return false
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		delete(pending, path)
		w.pipeline.Forget(path)
		return false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		if !event.Has(fsnotify.Create) {
			return false
		}
		if err := w.addTree(watcher, path); err != nil {
			w.logger.Warn("failed to watch new directory", log.Path(path), log.Err(err))
		}
		// Files may have landed before the directory was added.
		queued := false
		for p, err := range w.enum.Enumerate(context.Background(), path, w.job.Ext) {
			if err != nil {
				w.logger.Warn("failed to scan new directory", log.Path(path), log.Err(err))
				break
			}
			pending[p] = time.Now().Add(w.debounce)
			queued = true
		}
		return queued
	}

	if ok, _ := filepath.Match(w.pattern, filepath.Base(path)); !ok || !info.Mode().IsRegular() {
		return false
	}
	pending[path] = time.Now().Add(w.debounce)
	return true
}

// due removes the paths whose quiet period ended by now and returns them
// sorted.
func due(pending map[string]time.Time, now time.Time) []string {
	var paths []string
	for p, deadline := range pending {
		if !deadline.After(now) {
			paths = append(paths, p)
			delete(pending, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// nextDeadline returns the earliest deadline in pending.
func nextDeadline(pending map[string]time.Time) (time.Time, bool) {
	var next time.Time
	for _, deadline := range pending {
		if next.IsZero() || deadline.Before(next) {
			next = deadline
		}
	}
	return next, !next.IsZero()
}

// flush composites each path against the current opposite set.
func (w *Watcher) flush(ctx context.Context, paths []string) {
	for _, path := range paths {
		w.pipeline.Forget(path)
		report := domain.Report{Job: w.job, StartedAt: time.Now()}

		if within(w.job.ForegroundDir, path) {
			err := w.pipeline.cross(ctx, w.job, w.enum.Enumerate(ctx, w.job.BackgroundDir, w.job.Ext), []string{path}, &report)
			w.logResult("new foreground", path, report, err)
		}
		if within(w.job.BackgroundDir, path) {
			foregrounds, err := ports.Collect(w.enum.Enumerate(ctx, w.job.ForegroundDir, w.job.Ext))
			if err == nil {
				err = w.pipeline.cross(ctx, w.job, one(path), foregrounds, &report)
			}
			w.logResult("new background", path, report, err)
		}
	}
}

func (w *Watcher) logResult(msg, path string, report domain.Report, err error) {
	if err != nil {
		w.logger.Error(msg, log.Path(path), log.Int("written", report.Written), log.Err(err))
		return
	}
	w.logger.Info(msg, log.Path(path), log.Int("written", report.Written), log.Int("failed", report.Failed()))
}

// addTree watches root and every directory below it, skipping the output
// tree. Symlinked directories are followed; each real directory is added once.
func (w *Watcher) addTree(watcher *fsnotify.Watcher, root string) error {
	return w.addDir(watcher, root, root, make(map[string]struct{}))
}

func (w *Watcher) addDir(watcher *fsnotify.Watcher, root, dir string, visited map[string]struct{}) error {
	if dir != root && w.isOutput(dir) {
		return nil
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	if _, seen := visited[resolved]; seen {
		return nil
	}
	visited[resolved] = struct{}{}

	if err := watcher.Add(dir); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, d := range entries {
		path := filepath.Join(dir, d.Name())
		if d.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(path); err != nil || !info.IsDir() {
				continue
			}
		} else if !d.IsDir() {
			continue
		}
		if err := w.addDir(watcher, root, path, visited); err != nil {
			return err
		}
	}
	return nil
}

// isOutput reports whether path is in an output directory nested inside one
// of the watched trees.
func (w *Watcher) isOutput(path string) bool {
	nested := within(w.job.BackgroundDir, w.job.OutputDir) || within(w.job.ForegroundDir, w.job.OutputDir)
	return nested && within(w.job.OutputDir, path)
}

// within reports whether path is root or lies below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
