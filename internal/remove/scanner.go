package remove

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// scanner is the producer pool. It walks each validated root depth-first
// and enqueues a Job for every entry, with a directory's job enqueued only
// after the jobs for all of its contents (postorder).
//
// Parallelism is bounded by a single errgroup shared by the whole pool: top
// level roots and directory children all fan out into it. When the group is
// saturated the submitting goroutine scans the child inline instead, so
// recursion can never deadlock on the pool limit.
type scanner struct {
	cfg   Config
	queue *Queue
	prog  *Progress

	grp *errgroup.Group
	ctx context.Context
}

func newScanner(cfg Config, queue *Queue, prog *Progress) *scanner {
	return &scanner{cfg: cfg, queue: queue, prog: prog}
}

// run scans all roots and returns after the entire pool has joined. The
// returned error is nil unless the run must abort: with ContinueOnError set
// only context cancellation is returned, otherwise the first failure is.
func (s *scanner) run(ctx context.Context, roots []string) error {
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(s.cfg.ScanThreads)
	s.grp = grp
	s.ctx = gctx

	for _, root := range roots {
		grp.Go(func() error { return s.scanRoot(root) })
	}
	return grp.Wait()
}

// scanRoot scans one top-level validated path and applies the failure
// policy to errors that bubble all the way up.
func (s *scanner) scanRoot(root string) error {
	err := s.scanPath(root)
	switch {
	case err == nil:
		return nil
	case isCancel(err):
		return err
	case s.cfg.ContinueOnError:
		s.prog.IncError(errorPath(err, root), err)
		return nil
	default:
		return err
	}
}

// scanPath classifies one entry and enqueues its job. For directories the
// contents are scanned first so the directory's own job lands behind
// theirs.
func (s *scanner) scanPath(path string) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}

	// Counted exactly once per discovered entry, failures included.
	s.prog.IncScanned()

	// Lstat, not Stat: a broken or cyclic symlink must classify as a
	// symlink instead of failing or recursing through its target.
	info, err := os.Lstat(path)
	if err != nil {
		return &RemoveError{Op: OpMetadata, Path: path, Err: err}
	}

	mode := info.Mode()
	var kind JobKind
	switch {
	case mode&fs.ModeSymlink != 0:
		kind = KindSymlink
	case mode.IsRegular():
		kind = KindFile
	case mode.IsDir():
		if err := s.scanDir(path); err != nil {
			return err
		}
		kind = KindDir
	default:
		return &RemoveError{Op: OpRemove, Path: path, Err: ErrUnsupportedType}
	}

	return s.queue.Enqueue(s.ctx, Job{Kind: kind, Path: path})
}

// scanDir fans the directory's children out across the pool and waits for
// all of them before returning, which is what makes the parent's enqueue
// postorder. Child failures are absorbed (counted and published) under
// ContinueOnError, otherwise the first one is returned.
func (s *scanner) scanDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &RemoveError{Op: OpReadDir, Path: dir, Err: err}
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	for _, entry := range entries {
		if s.ctx.Err() != nil {
			break
		}
		child := filepath.Join(dir, entry.Name())
		wg.Add(1)
		scan := func() error {
			defer wg.Done()
			record(s.scanPath(child))
			return nil
		}
		if !s.grp.TryGo(scan) {
			_ = scan()
		}
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	for _, err := range errs {
		if isCancel(err) {
			return err
		}
	}
	if len(errs) == 0 {
		return nil
	}
	if !s.cfg.ContinueOnError {
		return errs[0]
	}
	for _, err := range errs {
		s.prog.IncError(errorPath(err, dir), err)
	}
	return nil
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
