package remove

import "runtime"

// Verbosity controls how much the display layer shows. The core engine only
// carries it; counters and behavior are identical at every level.
type Verbosity int

const (
	VerbositySimple Verbosity = iota
	VerbosityStandard
	VerbosityDetailed
)

// VerbosityFromCount maps a counted -v flag to a level.
func VerbosityFromCount(n int) Verbosity {
	switch {
	case n <= 0:
		return VerbositySimple
	case n == 1:
		return VerbosityStandard
	default:
		return VerbosityDetailed
	}
}

// Verbose reports whether per-item activity should be shown.
func (v Verbosity) Verbose() bool { return v >= VerbosityStandard }

func (v Verbosity) String() string {
	switch v {
	case VerbosityStandard:
		return "standard"
	case VerbosityDetailed:
		return "detailed"
	default:
		return "simple"
	}
}

// Config holds the options a single run is driven by.
type Config struct {
	// DryRun performs all scanning and accounting but no filesystem
	// mutation.
	DryRun bool

	// ContinueOnError counts and skips recoverable failures instead of
	// aborting the run.
	ContinueOnError bool

	// ScanThreads sizes the scanner pool; 0 means runtime.NumCPU().
	ScanThreads int

	// DeleteThreads sizes the deleter pool; 0 means runtime.NumCPU().
	DeleteThreads int

	// Verbosity is carried for the display layer.
	Verbosity Verbosity
}

// withDefaults fills zero values with usable ones.
func (c Config) withDefaults() Config {
	if c.ScanThreads <= 0 {
		c.ScanThreads = runtime.NumCPU()
	}
	if c.DeleteThreads <= 0 {
		c.DeleteThreads = runtime.NumCPU()
	}
	return c
}
