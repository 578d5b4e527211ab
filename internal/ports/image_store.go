package ports

import "image"

// ImageStore decodes input images and persists composited output.
type ImageStore interface {
	// Load decodes the image at path.
	Load(path string) (image.Image, error)

	// Save encodes img in the format implied by path's extension and writes
	// it, replacing any existing file. It does not create directories.
	Save(img image.Image, path string) error
}

// DirChecker verifies a directory precondition.
type DirChecker interface {
	CheckDir(path string) error
}
