package remove

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// seedTree creates dirs subdirectories under base, each holding filesPerDir
// small files, and returns the subdirectory paths.
func seedTree(t *testing.T, base string, dirs, filesPerDir int) []string {
	t.Helper()
	roots := make([]string, 0, dirs)
	for d := 0; d < dirs; d++ {
		dir := filepath.Join(base, fmt.Sprintf("dir-%02d", d))
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		for f := 0; f < filesPerDir; f++ {
			name := filepath.Join(dir, fmt.Sprintf("file-%03d.txt", f))
			if err := os.WriteFile(name, []byte("payload"), 0644); err != nil {
				t.Fatalf("failed to create file: %v", err)
			}
		}
		roots = append(roots, dir)
	}
	return roots
}

func checkAccounting(t *testing.T, res Result) {
	t.Helper()
	if res.Scanned != res.Deleted+res.Errors {
		t.Errorf("accounting broken: scanned %d != deleted %d + errors %d",
			res.Scanned, res.Deleted, res.Errors)
	}
}

func TestRemoverFlatTree(t *testing.T) {
	base := t.TempDir()
	roots := seedTree(t, base, 10, 50)

	r := New(Config{ScanThreads: 4, DeleteThreads: 4})
	res, err := r.Run(context.Background(), roots)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.Scanned != 510 || res.Deleted != 510 || res.Errors != 0 {
		t.Errorf("result = %+v, want 510 scanned, 510 deleted, 0 errors", res)
	}
	if res.Aborted {
		t.Error("Aborted = true on a clean run")
	}
	checkAccounting(t, res)

	for _, root := range roots {
		if _, err := os.Lstat(root); !os.IsNotExist(err) {
			t.Errorf("%s still exists after the run", root)
		}
	}
}

func TestRemoverDryRunMatchesLive(t *testing.T) {
	base := t.TempDir()
	dryRoots := seedTree(t, filepath.Join(base, "dry"), 4, 10)
	liveRoots := seedTree(t, filepath.Join(base, "live"), 4, 10)

	dry, err := New(Config{DryRun: true, ScanThreads: 2, DeleteThreads: 2}).
		Run(context.Background(), dryRoots)
	if err != nil {
		t.Fatalf("dry Run() error = %v", err)
	}
	live, err := New(Config{ScanThreads: 2, DeleteThreads: 2}).
		Run(context.Background(), liveRoots)
	if err != nil {
		t.Fatalf("live Run() error = %v", err)
	}

	if dry.Scanned != live.Scanned || dry.Deleted != live.Deleted || dry.Errors != live.Errors {
		t.Errorf("dry result %+v differs from live result %+v", dry, live)
	}
	for _, root := range dryRoots {
		if _, err := os.Lstat(root); err != nil {
			t.Errorf("dry run touched %s: %v", root, err)
		}
	}
	for _, root := range liveRoots {
		if _, err := os.Lstat(root); !os.IsNotExist(err) {
			t.Errorf("live run left %s behind", root)
		}
	}
}

func TestRemoverRejectsOverlapWithoutSideEffects(t *testing.T) {
	base := t.TempDir()
	parent := filepath.Join(base, "parent")
	child := filepath.Join(parent, "child")
	if err := os.MkdirAll(child, 0755); err != nil {
		t.Fatalf("failed to create dirs: %v", err)
	}
	file := filepath.Join(child, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	r := New(Config{})
	res, err := r.Run(context.Background(), []string{parent, child})

	var overlap *PathOverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("Run() error = %v, want *PathOverlapError", err)
	}
	if res.Scanned != 0 || res.Deleted != 0 {
		t.Errorf("result = %+v, want zero work on a rejected run", res)
	}
	if _, err := os.Lstat(file); err != nil {
		t.Errorf("rejected run touched the tree: %v", err)
	}
}

func TestRemoverContinueOnErrorPartial(t *testing.T) {
	base := t.TempDir()
	roots := seedTree(t, base, 2, 5)
	stubborn := filepath.Join(roots[0], "file-002.txt")

	r := New(Config{ContinueOnError: true, ScanThreads: 2, DeleteThreads: 2})
	realFile := r.ops.file
	r.ops.file = func(path string) error {
		if path == stubborn {
			return errors.New("operation not permitted")
		}
		return realFile(path)
	}

	res, err := r.Run(context.Background(), roots)
	if err != nil {
		t.Fatalf("Run() error = %v, want nil under continue-on-error", err)
	}

	// 10 files + 2 dirs scanned; the stubborn file and its parent dir fail.
	if res.Errors < 1 {
		t.Errorf("Errors = %d, want at least 1", res.Errors)
	}
	checkAccounting(t, res)
	if _, err := os.Lstat(stubborn); err != nil {
		t.Errorf("stubborn file vanished: %v", err)
	}
	if _, err := os.Lstat(roots[1]); !os.IsNotExist(err) {
		t.Errorf("healthy root %s not removed", roots[1])
	}
}

func TestRemoverAbortsOnFirstError(t *testing.T) {
	base := t.TempDir()
	roots := seedTree(t, base, 2, 20)

	r := New(Config{ScanThreads: 2, DeleteThreads: 2})
	r.ops.file = func(string) error { return errors.New("boom") }

	done := make(chan struct{})
	var res Result
	var err error
	go func() {
		res, err = r.Run(context.Background(), roots)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after a fatal error")
	}

	if err == nil {
		t.Fatal("Run() error = nil, want the fatal error")
	}
	if !res.Aborted {
		t.Error("Aborted = false after a fatal error")
	}
	if !r.scanDone.Load() {
		t.Error("completion signal not raised on the abort path")
	}
}

func TestRemoverCancelledContext(t *testing.T) {
	base := t.TempDir()
	roots := seedTree(t, base, 1, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(Config{ScanThreads: 1, DeleteThreads: 1})
	res, err := r.Run(ctx, roots)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if !res.Aborted {
		t.Error("Aborted = false on a cancelled run")
	}
}

func TestRemoverDeepChainPostorder(t *testing.T) {
	base := t.TempDir()
	const depth = 50
	const filesPerLevel = 3

	// One chain of nested directories, a few files at every level.
	cur := filepath.Join(base, "chain")
	if err := os.Mkdir(cur, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	root := cur
	for level := 0; level < depth; level++ {
		for f := 0; f < filesPerLevel; f++ {
			name := filepath.Join(cur, fmt.Sprintf("f%d.txt", f))
			if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
				t.Fatalf("failed to create file: %v", err)
			}
		}
		next := filepath.Join(cur, "deeper")
		if err := os.Mkdir(next, 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		cur = next
	}

	r := New(Config{ScanThreads: 4, DeleteThreads: 4})

	// Record every successful removal in completion order.
	var mu sync.Mutex
	var events []string
	record := func(inner func(string) error) func(string) error {
		return func(path string) error {
			err := inner(path)
			if err == nil {
				mu.Lock()
				events = append(events, path)
				mu.Unlock()
			}
			return err
		}
	}
	r.ops.file = record(r.ops.file)
	r.ops.symlink = record(r.ops.symlink)
	r.ops.dir = record(r.ops.dir)

	res, err := r.Run(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Errors != 0 {
		t.Errorf("Errors = %d, want 0", res.Errors)
	}
	checkAccounting(t, res)
	if _, err := os.Lstat(root); !os.IsNotExist(err) {
		t.Error("chain root still exists")
	}

	idx := make(map[string]int, len(events))
	for i, e := range events {
		idx[e] = i
	}
	sep := string(os.PathSeparator)
	for _, e := range events {
		for _, other := range events {
			if strings.HasPrefix(other, e+sep) && idx[other] > idx[e] {
				t.Fatalf("directory %s removed before its descendant %s", e, other)
			}
		}
	}
}

func TestRemoverNoPaths(t *testing.T) {
	r := New(Config{})
	if _, err := r.Run(context.Background(), nil); !errors.Is(err, ErrNoPaths) {
		t.Errorf("Run(nil) error = %v, want ErrNoPaths", err)
	}
}
