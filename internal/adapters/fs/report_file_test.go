package fs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bft-labs/composite/internal/domain"
)

func TestReportFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := NewReportFileRepository(filepath.Join(dir, "reports", "run.json"))

	empty, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load on missing file returned error: %v", err)
	}
	if empty.Completed || empty.Written != 0 {
		t.Fatalf("expected empty report, got %+v", empty)
	}

	want := domain.Report{
		Job:        domain.Job{BackgroundDir: "bg", ForegroundDir: "fg", OutputDir: "out", Ext: "png"},
		StartedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		FinishedAt: time.Date(2024, 1, 2, 3, 4, 6, 0, time.UTC),
		Completed:  true,
		Attempted:  2,
		Written:    1,
	}
	want.RecordFailure(&domain.PairError{Background: "bg/a.png", Foreground: "fg/b.png", Stage: domain.StageWrite, Err: errors.New("disk full")})

	if err := repo.Save(context.Background(), want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.Job != want.Job || got.Written != 1 || got.Attempted != 2 || !got.Completed {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.StartedAt.Equal(want.StartedAt) {
		t.Fatalf("StartedAt = %v, want %v", got.StartedAt, want.StartedAt)
	}
	if got.Failed() != 1 || got.Failures[0].Error != "disk full" {
		t.Fatalf("failures = %+v", got.Failures)
	}
}
