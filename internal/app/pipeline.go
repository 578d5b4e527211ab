package app

import (
	"context"
	"fmt"
	"image"
	"iter"
	"time"

	"github.com/bft-labs/composite/internal/compose"
	"github.com/bft-labs/composite/internal/domain"
	"github.com/bft-labs/composite/internal/ports"
	"github.com/bft-labs/composite/pkg/log"
)

// PipelineConfig tunes a Pipeline.
type PipelineConfig struct {
	// Size, when positive, scales every background to a Size x Size canvas.
	Size   int
	Kernel compose.Kernel

	Policy ErrorPolicy

	// CacheForegrounds keeps decoded foregrounds across backgrounds.
	CacheForegrounds bool
}

// Pipeline composites every foreground onto every background of a job.
// It runs sequentially and is not safe for concurrent use.
type Pipeline struct {
	config PipelineConfig
	enum   ports.Enumerator
	store  ports.ImageStore
	logger ports.Logger
	now    func() time.Time

	fgCache map[string]image.Image
}

// NewPipeline creates a Pipeline.
func NewPipeline(config PipelineConfig, enum ports.Enumerator, store ports.ImageStore, logger ports.Logger) *Pipeline {
	if config.Policy == "" {
		config.Policy = PolicyAbort
	}
	if config.Kernel == "" {
		config.Kernel = compose.DefaultKernel
	}
	return &Pipeline{
		config:  config,
		enum:    enum,
		store:   store,
		logger:  logger,
		now:     time.Now,
		fgCache: make(map[string]image.Image),
	}
}

// Run processes the full cross product of the job. The returned report is
// always populated; Completed is false if the run was aborted.
//
// With PolicyContinue a run that skipped pairs returns an error wrapping
// domain.ErrPairsFailed.
func (p *Pipeline) Run(ctx context.Context, job domain.Job) (domain.Report, error) {
	report := domain.Report{Job: job, StartedAt: p.now()}

	err := p.run(ctx, job, &report)
	report.FinishedAt = p.now()
	if err != nil {
		report.Abort = err.Error()
		p.logger.Error("run aborted",
			log.Int("written", report.Written),
			log.Int("attempted", report.Attempted),
			log.Err(err))
		return report, err
	}

	report.Completed = true
	p.logger.Info("run complete",
		log.Int("backgrounds", report.Backgrounds),
		log.Int("foregrounds", report.Foregrounds),
		log.Int("written", report.Written),
		log.Int("failed", report.Failed()),
		log.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)))

	if report.Failed() > 0 {
		return report, fmt.Errorf("%w: %d failures across %d pairs", domain.ErrPairsFailed, report.Failed(), report.Attempted)
	}
	return report, nil
}

func (p *Pipeline) run(ctx context.Context, job domain.Job, report *domain.Report) error {
	// The foreground set is assumed stable for the run, so it is listed once
	// instead of once per background.
	foregrounds, err := ports.Collect(p.enum.Enumerate(ctx, job.ForegroundDir, job.Ext))
	if err != nil {
		return fmt.Errorf("enumerate foregrounds: %w", err)
	}
	report.Foregrounds = len(foregrounds)
	p.logger.Info("foregrounds found", log.Path(job.ForegroundDir), log.Int("count", len(foregrounds)))

	return p.cross(ctx, job, p.enum.Enumerate(ctx, job.BackgroundDir, job.Ext), foregrounds, report)
}

// cross composites each background from backgrounds with every path in
// foregrounds. Backgrounds are decoded once and reused for the inner loop.
func (p *Pipeline) cross(ctx context.Context, job domain.Job, backgrounds iter.Seq2[string, error], foregrounds []string, report *domain.Report) error {
	for bgPath, err := range backgrounds {
		if err != nil {
			return fmt.Errorf("enumerate backgrounds: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		report.Backgrounds++
		if len(foregrounds) == 0 {
			continue
		}

		bg, err := p.store.Load(bgPath)
		if err != nil {
			// Every pair of this background fails at the same stage.
			for _, fgPath := range foregrounds {
				report.Attempted++
				pe := &domain.PairError{Background: bgPath, Foreground: fgPath, Stage: domain.StageDecodeBackground, Err: err}
				if err := p.fail(report, pe); err != nil {
					return err
				}
			}
			continue
		}
		canvas := compose.Canvas(bg, p.config.Size, p.config.Kernel)
		p.logger.Debug("background decoded", log.Path(bgPath), log.Any("bounds", canvas.Bounds().Size()))

		for _, fgPath := range foregrounds {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.Attempted++
			if pe := p.composePair(job, canvas, bgPath, fgPath); pe != nil {
				if err := p.fail(report, pe); err != nil {
					return err
				}
				continue
			}
			report.Written++
		}
	}
	return nil
}

func (p *Pipeline) composePair(job domain.Job, canvas image.Image, bgPath, fgPath string) *domain.PairError {
	pairErr := func(stage domain.Stage, err error) *domain.PairError {
		return &domain.PairError{Background: bgPath, Foreground: fgPath, Stage: stage, Err: err}
	}

	fg, err := p.foreground(fgPath)
	if err != nil {
		return pairErr(domain.StageDecodeForeground, err)
	}

	out, err := domain.OutputPath(job.OutputDir, bgPath, fgPath, job.Ext)
	if err != nil {
		return pairErr(domain.StageName, err)
	}

	img := compose.Composite(canvas, fg)
	if err := p.store.Save(img, out); err != nil {
		return pairErr(domain.StageWrite, err)
	}

	p.logger.Debug("wrote",
		log.Path(out),
		log.Any("offset", compose.Offset(canvas.Bounds(), fg.Bounds())))
	return nil
}

func (p *Pipeline) foreground(path string) (image.Image, error) {
	if img, ok := p.fgCache[path]; ok {
		return img, nil
	}
	img, err := p.store.Load(path)
	if err != nil {
		return nil, err
	}
	if p.config.CacheForegrounds {
		p.fgCache[path] = img
	}
	return img, nil
}

// Forget drops any cached decode of path.
func (p *Pipeline) Forget(path string) {
	delete(p.fgCache, path)
}

func (p *Pipeline) fail(report *domain.Report, pe *domain.PairError) error {
	if err := p.config.Policy.handle(report, pe); err != nil {
		return err
	}
	p.logger.Warn("pair skipped", log.String("stage", string(pe.Stage)), log.Err(pe.Err),
		log.String("background", pe.Background), log.String("foreground", pe.Foreground))
	return nil
}

// one is a sequence holding a single path.
func one(path string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		yield(path, nil)
	}
}
