package domain

import (
	"fmt"
	"strings"
)

// FileType selects the image extension used for both enumerations and the
// output artifacts of a run.
type FileType int

const (
	FileTypePNG FileType = iota
)

// DefaultFileType applies when no file type token is given.
const DefaultFileType = FileTypePNG

var fileTypeNames = map[FileType]string{
	FileTypePNG: "png",
}

// ParseFileType resolves a case-insensitive token. The empty token resolves
// to DefaultFileType.
func ParseFileType(token string) (FileType, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return DefaultFileType, nil
	}
	for ft, name := range fileTypeNames {
		if name == t {
			return ft, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidFileType, token, strings.Join(FileTypes(), ", "))
}

// FileTypes lists the accepted tokens.
func FileTypes() []string {
	return []string{FileTypePNG.String()}
}

// Ext returns the extension without the leading dot.
func (t FileType) Ext() string {
	return t.String()
}

func (t FileType) String() string {
	if name, ok := fileTypeNames[t]; ok {
		return name
	}
	return "unknown"
}
