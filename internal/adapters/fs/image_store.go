package fs

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/bft-labs/composite/internal/domain"
)

// ImageStore implements ports.ImageStore with imaging's codecs.
type ImageStore struct{}

// NewImageStore creates an ImageStore.
func NewImageStore() *ImageStore {
	return &ImageStore{}
}

// Load decodes the image at path.
func (s *ImageStore) Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDecode, path, err)
	}
	return img, nil
}

// Save encodes img into a temp file next to path and renames it into place,
// so a failed write never leaves a truncated artifact under the final name.
func (s *ImageStore) Save(img image.Image, path string) error {
	format, err := imaging.FormatFromExtension(filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrWrite, path, err)
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrWrite, path, err)
	}
	tmp := f.Name()

	if err := imaging.Encode(f, img, format); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: encode %s: %w", domain.ErrWrite, path, err)
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: %s: %w", domain.ErrWrite, path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %s: %w", domain.ErrWrite, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %s: %w", domain.ErrWrite, path, err)
	}
	return nil
}
