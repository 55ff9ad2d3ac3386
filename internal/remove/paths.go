package remove

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ValidatePaths canonicalizes and deduplicates the user-supplied paths and
// rejects any pair where one path is an ancestor of the other. It runs
// single-threaded, before any worker starts, and has no side effects on
// failure.
//
// Canonicalization resolves each input to an absolute, symlink-resolved
// form so equivalent spellings compare equal. When symlink resolution fails
// (the path may be a broken link, or a component may be unreadable) the
// absolute path is used as-is with a warning, matching plain `rm` behavior
// of still attempting the removal.
func ValidatePaths(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}

	canonical := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))

	for _, p := range paths {
		c, err := canonicalize(p)
		if err != nil {
			log.Warn().Str("path", p).Err(err).Msg("failed to canonicalize, using absolute path")
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		canonical = append(canonical, c)
	}

	for i := 0; i < len(canonical); i++ {
		for j := i + 1; j < len(canonical); j++ {
			if isAncestor(canonical[i], canonical[j]) {
				return nil, &PathOverlapError{Inner: canonical[j], Outer: canonical[i]}
			}
			if isAncestor(canonical[j], canonical[i]) {
				return nil, &PathOverlapError{Inner: canonical[i], Outer: canonical[j]}
			}
		}
	}

	return canonical, nil
}

// canonicalize returns the absolute, symlink-resolved form of path. The
// returned path is always usable even when err is non-nil.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path), err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs, err
	}
	return resolved, nil
}

// isAncestor reports whether ancestor strictly contains child in the path
// hierarchy. It is separator-aware: /a is not an ancestor of /ab.
func isAncestor(ancestor, child string) bool {
	if ancestor == child {
		return false
	}
	if ancestor == string(os.PathSeparator) {
		return strings.HasPrefix(child, ancestor)
	}
	return strings.HasPrefix(child, ancestor+string(os.PathSeparator))
}
