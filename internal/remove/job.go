package remove

// JobKind tags a Job with the kind of filesystem entry it removes, so a
// deleter can dispatch without re-querying metadata.
type JobKind int

const (
	// KindFile is a regular file, removed with unlink.
	KindFile JobKind = iota
	// KindSymlink is a symbolic link, removed with unlink and never
	// dereferenced.
	KindSymlink
	// KindDir is a directory whose contents have already been enqueued,
	// removed with rmdir.
	KindDir
)

func (k JobKind) String() string {
	switch k {
	case KindSymlink:
		return "symlink"
	case KindDir:
		return "directory"
	default:
		return "file"
	}
}

// Job is one unit of deletion work. A job is produced by exactly one
// scanner, travels through the queue once, and is consumed by exactly one
// deleter. Requeues counts how many times a directory job has been put back
// on the queue after a not-empty removal attempt.
type Job struct {
	Kind     JobKind
	Path     string
	Requeues int
}
