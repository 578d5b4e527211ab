package ports

import (
	"context"
	"iter"
)

// Enumerator lists the files under dir whose name ends in ".<ext>", at any depth.
type Enumerator interface {
	// Enumerate returns a lazy sequence of matching paths. An error ends
	// the sequence; an empty sequence is not an error.
	Enumerate(ctx context.Context, dir, ext string) iter.Seq2[string, error]
}

// Collect drains seq into a slice, stopping at the first error.
func Collect(seq iter.Seq2[string, error]) ([]string, error) {
	var paths []string
	for path, err := range seq {
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
