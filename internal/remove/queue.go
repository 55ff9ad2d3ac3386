package remove

import (
	"context"
	"sync/atomic"
	"time"
)

// queueFloor is the minimum queue capacity regardless of pool size.
const queueFloor = 10000

// QueueCapacity returns the bounded queue size for a scanner pool of the
// given width: large enough to absorb short-term rate mismatch between
// scanning and deleting, bounded to cap memory on very large trees.
func QueueCapacity(scanThreads int) int {
	if c := scanThreads * 1000; c > queueFloor {
		return c
	}
	return queueFloor
}

// Queue is the bounded multi-producer/multi-consumer job channel between
// the scanner and deleter pools, with live depth tracking.
//
// Ordering contract: a single scanner enqueues a directory's job strictly
// after the jobs for that directory's contents. Across scanners, and across
// the interleaving of concurrent consumers, no relative order is
// guaranteed; directory removal tolerates that (see deleter.go).
type Queue struct {
	jobs chan Job

	// enqueued and dequeued are kept on separate cache lines; both sides
	// of the pipeline hammer their own counter.
	enqueued atomic.Int64
	_        [56]byte
	dequeued atomic.Int64
	_        [56]byte
}

// NewQueue creates a queue with the given capacity.
func NewQueue(capacity int) *Queue {
	return &Queue{jobs: make(chan Job, capacity)}
}

// Enqueue adds a job, blocking while the queue is full. This backpressure
// is what keeps a fast scanner from outrunning slow deleters. It returns
// the context error if the run is cancelled while blocked.
func (q *Queue) Enqueue(ctx context.Context, job Job) error {
	select {
	case q.jobs <- job:
		q.enqueued.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryEnqueue adds a job without blocking and reports whether it fit. Used
// by deleters to requeue a not-yet-empty directory.
func (q *Queue) TryEnqueue(job Job) bool {
	select {
	case q.jobs <- job:
		q.enqueued.Add(1)
		return true
	default:
		return false
	}
}

// Dequeue waits up to timeout for a job. The timeout exists so idle
// consumers can re-check the shutdown predicate instead of blocking
// indefinitely.
func (q *Queue) Dequeue(timeout time.Duration) (Job, bool) {
	select {
	case job := <-q.jobs:
		q.dequeued.Add(1)
		return job, true
	case <-time.After(timeout):
		return Job{}, false
	}
}

// Depth returns enqueued minus dequeued, the live count of outstanding
// work. The two counters are read independently, not as one snapshot, so a
// racing read can be momentarily stale; negative intermediate values are
// clamped rather than surfaced.
func (q *Queue) Depth() int64 {
	d := q.enqueued.Load() - q.dequeued.Load()
	if d < 0 {
		return 0
	}
	return d
}

// Capacity returns the fixed queue capacity.
func (q *Queue) Capacity() int { return cap(q.jobs) }
