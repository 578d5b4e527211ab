package ports

import (
	"context"

	"github.com/bft-labs/composite/internal/domain"
)

// ReportRepository persists the run report.
type ReportRepository interface {
	// Load returns the last saved report, or an empty one if none exists.
	Load(ctx context.Context) (domain.Report, error)

	// Save persists the report atomically.
	Save(ctx context.Context, report domain.Report) error
}
