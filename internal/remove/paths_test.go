package remove

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePaths_RejectsOverlap(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	parent := filepath.Join(dir, "parent")
	child := filepath.Join(parent, "child")
	if err := os.MkdirAll(child, 0755); err != nil {
		t.Fatalf("failed to create test dirs: %v", err)
	}

	tests := []struct {
		name  string
		paths []string
	}{
		{name: "parent first", paths: []string{parent, child}},
		{name: "child first", paths: []string{child, parent}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidatePaths(tt.paths)
			if err == nil {
				t.Fatal("ValidatePaths() expected overlap error, got nil")
			}
			var overlap *PathOverlapError
			if !errors.As(err, &overlap) {
				t.Fatalf("ValidatePaths() error = %v, want *PathOverlapError", err)
			}
			if overlap.Inner != child || overlap.Outer != parent {
				t.Errorf("overlap = %q inside %q, want %q inside %q", overlap.Inner, overlap.Outer, child, parent)
			}
		})
	}
}

func TestValidatePaths_Deduplicates(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	got, err := ValidatePaths([]string{file, file})
	if err != nil {
		t.Fatalf("ValidatePaths() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("ValidatePaths() returned %d paths, want 1", len(got))
	}
}

func TestValidatePaths_SymlinkResolvesToSamePath(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real")
	if err := os.Mkdir(real, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	got, err := ValidatePaths([]string{real, link})
	if err != nil {
		t.Fatalf("ValidatePaths() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("ValidatePaths() returned %d paths, want 1 (link and target are the same tree)", len(got))
	}
}

func TestValidatePaths_SiblingPrefixIsNotOverlap(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data")
	database := filepath.Join(dir, "database")
	for _, d := range []string{data, database} {
		if err := os.Mkdir(d, 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
	}

	got, err := ValidatePaths([]string{data, database})
	if err != nil {
		t.Fatalf("ValidatePaths() error = %v (string prefix is not path ancestry)", err)
	}
	if len(got) != 2 {
		t.Errorf("ValidatePaths() returned %d paths, want 2", len(got))
	}
}

func TestValidatePaths_Empty(t *testing.T) {
	if _, err := ValidatePaths(nil); !errors.Is(err, ErrNoPaths) {
		t.Errorf("ValidatePaths(nil) error = %v, want ErrNoPaths", err)
	}
}

func TestIsAncestor(t *testing.T) {
	tests := []struct {
		name     string
		ancestor string
		child    string
		want     bool
	}{
		{name: "direct child", ancestor: "/a", child: "/a/b", want: true},
		{name: "deep descendant", ancestor: "/a", child: "/a/b/c/d", want: true},
		{name: "identical", ancestor: "/a", child: "/a", want: false},
		{name: "sibling prefix", ancestor: "/a", child: "/ab", want: false},
		{name: "reversed", ancestor: "/a/b", child: "/a", want: false},
		{name: "root", ancestor: "/", child: "/a", want: true},
		{name: "unrelated", ancestor: "/a", child: "/b/a", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isAncestor(tt.ancestor, tt.child); got != tt.want {
				t.Errorf("isAncestor(%q, %q) = %v, want %v", tt.ancestor, tt.child, got, tt.want)
			}
		})
	}
}
