package domain

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestStem(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"forest.png", "forest", false},
		{"/a/b/forest.png", "forest", false},
		{"nested/dir/tree.big.png", "tree.big", false},
		{"noext", "noext", false},
		{".png", ".png", false},
		{"trailing.", "trailing", false},
		{"", "", true},
		{".", "", true},
		{"..", "", true},
		{"/", "", true},
		{"dir/", "", true},
	}

	for _, tt := range tests {
		got, err := Stem(tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrStemExtraction) {
				t.Errorf("Stem(%q) error = %v, want ErrStemExtraction", tt.path, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Stem(%q) unexpected error: %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	got, err := OutputPath("/out", "forest.png", "tree.png", "png")
	if err != nil {
		t.Fatalf("OutputPath returned error: %v", err)
	}
	if got != "/out/forest-tree.png" {
		t.Fatalf("OutputPath = %q, want /out/forest-tree.png", got)
	}

	got, err = OutputPath("out", "bg/sub/a.png", "fg/b.png", "png")
	if err != nil {
		t.Fatalf("OutputPath returned error: %v", err)
	}
	if want := filepath.Join("out", "a-b.png"); got != want {
		t.Fatalf("OutputPath = %q, want %q", got, want)
	}

	if _, err := OutputPath("/out", "bg/", "tree.png", "png"); !errors.Is(err, ErrStemExtraction) {
		t.Fatalf("OutputPath with empty background stem: error = %v, want ErrStemExtraction", err)
	}
	if _, err := OutputPath("/out", "forest.png", "", "png"); !errors.Is(err, ErrStemExtraction) {
		t.Fatalf("OutputPath with empty foreground path: error = %v, want ErrStemExtraction", err)
	}
}
