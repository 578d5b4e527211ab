package fs

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotDirectory is returned by CheckDir for a path that exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// DirChecker implements ports.DirChecker on the local file system.
type DirChecker struct{}

// CheckDir reports whether path exists and is a directory.
func (DirChecker) CheckDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrNotDirectory)
	}
	return nil
}
