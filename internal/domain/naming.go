package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Stem returns the file name of path without its final extension.
// A leading-dot name with no other dot (".png") is its own stem.
func Stem(path string) (string, error) {
	if path == "" || strings.HasSuffix(path, string(os.PathSeparator)) || strings.HasSuffix(path, "/") {
		return "", fmt.Errorf("%w: %q", ErrStemExtraction, path)
	}
	base := filepath.Base(path)
	if base == "." || base == ".." || base == string(os.PathSeparator) {
		return "", fmt.Errorf("%w: %q", ErrStemExtraction, path)
	}
	if strings.LastIndex(base, ".") <= 0 {
		return base, nil
	}
	return strings.TrimSuffix(base, filepath.Ext(base)), nil
}

// OutputPath derives <outputDir>/<bgStem>-<fgStem>.<ext>.
// Distinct inputs sharing stems map to the same path; the later write wins.
func OutputPath(outputDir, bgPath, fgPath, ext string) (string, error) {
	bg, err := Stem(bgPath)
	if err != nil {
		return "", err
	}
	fg, err := Stem(fgPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(outputDir, bg+"-"+fg+"."+ext), nil
}
