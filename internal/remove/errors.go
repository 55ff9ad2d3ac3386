package remove

import (
	"errors"
	"fmt"
)

// Sentinel errors for package remove.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// ErrUnsupportedType marks entries that are neither a regular file,
	// a symlink, nor a directory (sockets, fifos, devices).
	ErrUnsupportedType = errors.New("not a file, directory, or symlink that can be removed")

	// ErrNoPaths is returned when validation receives an empty input set.
	ErrNoPaths = errors.New("no paths to remove")
)

// Op names the filesystem operation that produced a RemoveError.
type Op string

const (
	OpMetadata  Op = "metadata"
	OpReadDir   Op = "readdir"
	OpRemove    Op = "remove"
	OpRemoveDir Op = "rmdir"
)

// RemoveError wraps a failed operation with the path it failed on.
type RemoveError struct {
	Op   Op
	Path string
	Err  error
}

func (e *RemoveError) Error() string {
	switch e.Op {
	case OpMetadata:
		return fmt.Sprintf("failed to get metadata for %s: %v", e.Path, e.Err)
	case OpReadDir:
		return fmt.Sprintf("failed to read directory %s: %v", e.Path, e.Err)
	case OpRemoveDir:
		return fmt.Sprintf("failed to remove directory %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("failed to remove %s: %v", e.Path, e.Err)
	}
}

func (e *RemoveError) Unwrap() error { return e.Err }

// PathOverlapError is returned by ValidatePaths when one requested path is
// an ancestor of another. It is always fatal and raised before any worker
// starts.
type PathOverlapError struct {
	Inner string
	Outer string
}

func (e *PathOverlapError) Error() string {
	return fmt.Sprintf("path overlap detected: %s is inside %s; removing both concurrently could race", e.Inner, e.Outer)
}

// errorPath extracts the subject path from err, falling back when err does
// not carry one.
func errorPath(err error, fallback string) string {
	var re *RemoveError
	if errors.As(err, &re) {
		return re.Path
	}
	return fallback
}
