package remove

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Result is the final aggregate handed to the summary layer.
type Result struct {
	Scanned int64
	Deleted int64
	Errors  int64
	Aborted bool
	Elapsed time.Duration
}

// Remover wires the validator, queue, scanner pool, deleter pool, and
// progress accounting together for one run.
type Remover struct {
	cfg  Config
	prog *Progress
	ops  removeOps

	// scanDone is the completion signal: set exactly once, after the
	// entire scanner pool has joined, including on the abort path.
	scanDone atomic.Bool
}

// New creates a Remover for the given configuration.
func New(cfg Config) *Remover {
	cfg = cfg.withDefaults()
	ops := liveOps()
	if cfg.DryRun {
		ops = dryRunOps()
	}
	return &Remover{cfg: cfg, prog: NewProgress(), ops: ops}
}

// Progress exposes the shared counters and activity channels for the
// display layer. Reads never block and never slow the workers.
func (r *Remover) Progress() *Progress { return r.prog }

// Run validates paths, then starts both pools against the shared queue and
// drives them to completion. It returns the aggregate result and, when the
// run aborted, the error that caused it. Validation failures are returned
// before any worker starts and have no side effects.
func (r *Remover) Run(ctx context.Context, paths []string) (Result, error) {
	start := time.Now()

	validated, err := ValidatePaths(paths)
	if err != nil {
		return Result{}, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := NewQueue(QueueCapacity(r.cfg.ScanThreads))
	scan := newScanner(r.cfg, queue, r.prog)
	del := newDeleter(r.cfg, queue, r.prog, r.ops, &r.scanDone, cancel)

	var workers sync.WaitGroup
	workers.Add(r.cfg.DeleteThreads)
	for i := 0; i < r.cfg.DeleteThreads; i++ {
		go func() {
			defer workers.Done()
			del.run(runCtx)
		}()
	}

	scanErr := scan.run(runCtx, validated)
	if scanErr != nil {
		// Coordinated abort: stop the deleters too. The completion
		// signal below is still raised so nobody waits forever.
		cancel()
	}
	r.scanDone.Store(true)
	workers.Wait()

	aborted := scanErr != nil || del.err() != nil || ctx.Err() != nil

	stats := r.prog.Stats()
	res := Result{
		Scanned: stats.Scanned,
		Deleted: stats.Deleted,
		Errors:  stats.Errors,
		Aborted: aborted,
		Elapsed: time.Since(start),
	}

	switch {
	case scanErr != nil && !isCancel(scanErr):
		return res, scanErr
	case del.err() != nil:
		return res, del.err()
	case ctx.Err() != nil:
		return res, ctx.Err()
	default:
		return res, nil
	}
}
