package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/bft-labs/composite/internal/domain"
)

// Enumerator walks a directory tree and yields files matching "*.<ext>".
type Enumerator struct{}

// NewEnumerator creates an Enumerator.
func NewEnumerator() *Enumerator {
	return &Enumerator{}
}

// Pattern returns the file name pattern for ext, or an error wrapping
// domain.ErrPattern if ext cannot form a literal suffix match.
func Pattern(ext string) (string, error) {
	pattern := "*." + ext
	if ext == "" || strings.ContainsAny(ext, `*?[]\/`) {
		return "", fmt.Errorf("%w: %q", domain.ErrPattern, pattern)
	}
	if _, err := filepath.Match(pattern, pattern); err != nil {
		return "", fmt.Errorf("%w: %q: %w", domain.ErrPattern, pattern, err)
	}
	return pattern, nil
}

// Enumerate yields regular files under dir at any depth whose name matches
// "*.<ext>" case-sensitively. Symlinks are followed, both for dir itself and
// for entries below it; a directory reached twice through links is walked
// once. The walk is lazy: nothing is read until the sequence is ranged over,
// and breaking out of the range stops the walk.
func (e *Enumerator) Enumerate(ctx context.Context, dir, ext string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		pattern, err := Pattern(ext)
		if err != nil {
			yield("", err)
			return
		}

		w := &walker{ctx: ctx, pattern: pattern, yield: yield, visited: make(map[string]struct{})}
		if err := w.walk(dir); err != nil && !errors.Is(err, errStopped) {
			yield("", err)
		}
	}
}

var errStopped = errors.New("enumeration stopped")

type walker struct {
	ctx     context.Context
	pattern string
	yield   func(string, error) bool
	visited map[string]struct{}
}

// walk lists dir in lexical order, yielding matches and descending into
// subdirectories. Yielded paths keep dir's spelling, links unresolved.
func (w *walker) walk(dir string) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrPathAccess, dir, err)
	}
	if _, seen := w.visited[resolved]; seen {
		return nil
	}
	w.visited[resolved] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrPathAccess, dir, err)
	}

	for _, d := range entries {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, d.Name())
		matched, _ := filepath.Match(w.pattern, d.Name())

		mode := d.Type()
		if mode&iofs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				// A dangling link only matters if it would have been yielded.
				if matched {
					return fmt.Errorf("%w: %s: %w", domain.ErrPathAccess, path, err)
				}
				continue
			}
			mode = info.Mode().Type()
		}

		switch {
		case mode.IsDir():
			if err := w.walk(path); err != nil {
				return err
			}
		case mode.IsRegular() && matched:
			if !w.yield(path, nil) {
				return errStopped
			}
		}
	}
	return nil
}
