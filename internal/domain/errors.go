package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the compositing run. Check them with errors.Is.
var (
	// ErrPrecondition is returned when one of the three directories is missing.
	ErrPrecondition = errors.New("composite: precondition failed")

	// ErrPattern is returned when the file match pattern is malformed.
	ErrPattern = errors.New("composite: malformed match pattern")

	// ErrPathAccess is returned when a matched entry cannot be read during enumeration.
	ErrPathAccess = errors.New("composite: path access failed")

	// ErrDecode is returned when a file cannot be decoded as an image.
	ErrDecode = errors.New("composite: decode failed")

	// ErrStemExtraction is returned when a path has no usable base name.
	ErrStemExtraction = errors.New("composite: no file stem")

	// ErrWrite is returned when an output artifact cannot be written.
	ErrWrite = errors.New("composite: write failed")

	// ErrInvalidFileType is returned for an unknown file type token.
	ErrInvalidFileType = errors.New("composite: invalid file type")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("composite: invalid configuration")

	// ErrPairsFailed is returned at the end of a run that skipped failing pairs.
	ErrPairsFailed = errors.New("composite: some pairs failed")
)

// PreconditionError reports which directory failed validation.
type PreconditionError struct {
	Role string // "background", "foreground" or "output"
	Path string
	Err  error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s directory %q: %v", e.Role, e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *PreconditionError) Unwrap() []error {
	return []error{ErrPrecondition, e.Err}
}

// Stage names the pipeline step a pair failed in.
type Stage string

const (
	StageDecodeBackground Stage = "decode-background"
	StageDecodeForeground Stage = "decode-foreground"
	StageName             Stage = "name"
	StageWrite            Stage = "write"
)

// PairError wraps a failure that happened while processing one pair.
// Foreground is empty when the background itself could not be decoded.
type PairError struct {
	Background string
	Foreground string
	Stage      Stage
	Err        error
}

func (e *PairError) Error() string {
	if e.Foreground == "" {
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Background, e.Err)
	}
	return fmt.Sprintf("%s %s + %s: %v", e.Stage, e.Background, e.Foreground, e.Err)
}

func (e *PairError) Unwrap() error {
	return e.Err
}
