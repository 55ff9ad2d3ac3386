package remove

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avast/retry-go"
)

const (
	// pollInterval bounds how long an idle deleter blocks before
	// re-checking the shutdown predicate.
	pollInterval = 100 * time.Millisecond

	// Not-empty directory removals are retried with backoff before the
	// job is requeued, and requeued at most dirMaxRequeues times before
	// the failure is surfaced.
	dirRetryAttempts = 6
	dirRetryDelay    = 2 * time.Millisecond
	dirRetryMaxDelay = 250 * time.Millisecond
	dirMaxRequeues   = 3
)

// removeOps are the mutating filesystem calls a deleter performs, held as
// fields so dry-run (and tests) can swap them out while every other code
// path stays identical.
type removeOps struct {
	file    func(string) error
	symlink func(string) error
	dir     func(string) error
}

func liveOps() removeOps {
	return removeOps{file: os.Remove, symlink: os.Remove, dir: os.Remove}
}

func dryRunOps() removeOps {
	noop := func(string) error { return nil }
	return removeOps{file: noop, symlink: noop, dir: noop}
}

// deleter is the consumer pool. Each worker runs an independent receive
// loop against the shared queue; stop cancels the run context when a fatal
// error occurs with ContinueOnError off.
type deleter struct {
	cfg   Config
	queue *Queue
	prog  *Progress
	ops   removeOps

	// scanDone is the one-shot completion signal, raised by the
	// orchestrator only after the whole scanner pool has joined.
	scanDone *atomic.Bool
	stop     context.CancelFunc

	mu       sync.Mutex
	firstErr error
}

func newDeleter(cfg Config, queue *Queue, prog *Progress, ops removeOps, scanDone *atomic.Bool, stop context.CancelFunc) *deleter {
	return &deleter{
		cfg:      cfg,
		queue:    queue,
		prog:     prog,
		ops:      ops,
		scanDone: scanDone,
		stop:     stop,
	}
}

// run is one worker's receive loop. It exits when the run context is
// cancelled, or when at a single polling instant the completion signal is
// set and the queue depth is zero. The signal is only raised after all
// scanning has finished, so that predicate is final once true.
func (d *deleter) run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		job, ok := d.queue.Dequeue(pollInterval)
		if !ok {
			if d.scanDone.Load() && d.queue.Depth() == 0 {
				return
			}
			continue
		}
		d.process(ctx, job)
	}
}

func (d *deleter) process(ctx context.Context, job Job) {
	if job.Kind == KindDir {
		d.processDir(ctx, job)
		return
	}

	op := d.ops.file
	if job.Kind == KindSymlink {
		op = d.ops.symlink
	}
	if err := op(job.Path); err != nil {
		d.fail(&RemoveError{Op: OpRemove, Path: job.Path, Err: err})
		return
	}
	d.prog.IncDeleted(job.Path)
}

// processDir removes a directory job. Its children's jobs were enqueued
// before it, but with many consumers they may not have finished executing
// yet, so a not-empty failure here is transient by design: retry with
// backoff, then put the job back on the queue, and only surface the error
// once both are exhausted.
func (d *deleter) processDir(ctx context.Context, job Job) {
	err := retry.Do(
		func() error { return d.ops.dir(job.Path) },
		retry.RetryIf(isDirNotEmpty),
		retry.Attempts(dirRetryAttempts),
		retry.Delay(dirRetryDelay),
		retry.MaxDelay(dirRetryMaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err == nil {
		d.prog.IncDeleted(job.Path)
		return
	}
	if isCancel(err) {
		return
	}
	if isDirNotEmpty(err) && job.Requeues < dirMaxRequeues {
		job.Requeues++
		if d.queue.TryEnqueue(job) {
			return
		}
	}
	d.fail(&RemoveError{Op: OpRemoveDir, Path: job.Path, Err: err})
}

// fail applies the failure policy: count and publish always, and with
// ContinueOnError off remember the first error and cancel the run.
func (d *deleter) fail(err *RemoveError) {
	d.prog.IncError(err.Path, err)
	if d.cfg.ContinueOnError {
		return
	}
	d.mu.Lock()
	if d.firstErr == nil {
		d.firstErr = err
	}
	d.mu.Unlock()
	d.stop()
}

// err returns the first fatal deleter error, if any.
func (d *deleter) err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.firstErr
}

// isDirNotEmpty reports whether err is rmdir failing on a directory that
// still has entries. EEXIST is included because some systems report it in
// place of ENOTEMPTY.
func isDirNotEmpty(err error) bool {
	return errors.Is(err, syscall.ENOTEMPTY) || errors.Is(err, syscall.EEXIST)
}
