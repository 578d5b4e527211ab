package app

import (
	"fmt"

	"github.com/bft-labs/composite/internal/domain"
	"github.com/bft-labs/composite/internal/ports"
	"github.com/bft-labs/composite/pkg/log"
)

// Directories holds the user-supplied directory arguments.
type Directories struct {
	Background string
	Foreground string
	Output     string
}

// ResolvePaths checks the three directories in order and returns the job they
// describe. The first missing directory aborts with a *domain.PreconditionError;
// nothing has been enumerated or decoded at that point.
func ResolvePaths(dirs Directories, ft domain.FileType, checker ports.DirChecker, logger ports.Logger) (domain.Job, error) {
	checks := []struct {
		role string
		path string
	}{
		{"background", dirs.Background},
		{"foreground", dirs.Foreground},
		{"output", dirs.Output},
	}

	for _, c := range checks {
		if err := checker.CheckDir(c.path); err != nil {
			logger.Error(fmt.Sprintf("ERR: %q is not a directory", c.path),
				log.String("role", c.role), log.Err(err))
			return domain.Job{}, &domain.PreconditionError{Role: c.role, Path: c.path, Err: err}
		}
		logger.Info(fmt.Sprintf("OK: %q is a directory", c.path), log.String("role", c.role))
	}

	return domain.Job{
		BackgroundDir: dirs.Background,
		ForegroundDir: dirs.Foreground,
		OutputDir:     dirs.Output,
		Ext:           ft.Ext(),
	}, nil
}
