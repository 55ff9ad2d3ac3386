package remove

import (
	"sync/atomic"
	"time"
)

const (
	recentChanCap = 1000
	errorChanCap  = 100
	drainKeep     = 50
)

// ErrorEntry is one recent failure published for the display layer.
type ErrorEntry struct {
	Path string
	Msg  string
}

// Progress is the lock-free accounting structure shared by every worker.
// The three counters are monotonically non-decreasing for the life of a
// run; at clean completion scanned == deleted + errors. Each counter sits
// on its own cache line so concurrent increments from many goroutines do
// not false-share.
//
// The activity channels are bounded and best-effort: publishes never block
// and entries are silently dropped when the display cannot keep up. Dropped
// entries are acceptable, lost counter increments are not.
type Progress struct {
	scanned atomic.Int64
	_       [56]byte
	deleted atomic.Int64
	_       [56]byte
	errs    atomic.Int64
	_       [56]byte

	recent   chan string
	errorLog chan ErrorEntry
	start    time.Time
}

// NewProgress creates a Progress with its start time set to now.
func NewProgress() *Progress {
	return &Progress{
		recent:   make(chan string, recentChanCap),
		errorLog: make(chan ErrorEntry, errorChanCap),
		start:    time.Now(),
	}
}

// IncScanned records one discovered entry.
func (p *Progress) IncScanned() { p.scanned.Add(1) }

// IncDeleted records one successful (or simulated) removal and publishes
// the path for the display layer, dropping it if the channel is full.
func (p *Progress) IncDeleted(path string) {
	p.deleted.Add(1)
	select {
	case p.recent <- path:
	default:
	}
}

// IncError records one failure and publishes it for the display layer,
// dropping it if the channel is full.
func (p *Progress) IncError(path string, err error) {
	p.errs.Add(1)
	select {
	case p.errorLog <- ErrorEntry{Path: path, Msg: err.Error()}:
	default:
	}
}

// Stats is a point-in-time sample of the counters plus derived rates.
type Stats struct {
	Scanned int64
	Deleted int64
	Errors  int64
	Elapsed time.Duration
	// Rate is deleted items per second since the run started.
	Rate float64
	// ETA estimates the time to finish the already-scanned backlog at the
	// current rate; zero when unknown.
	ETA time.Duration
}

// Stats samples the counters. The three loads are independent, not one
// atomic snapshot: a reader can observe a state no single instant had
// (e.g. deleted momentarily ahead of a stale scanned). Such skew is
// transient and self-correcting and must not be treated as an error.
func (p *Progress) Stats() Stats {
	s := Stats{
		Scanned: p.scanned.Load(),
		Deleted: p.deleted.Load(),
		Errors:  p.errs.Load(),
		Elapsed: time.Since(p.start),
	}
	if secs := s.Elapsed.Seconds(); secs > 0 {
		s.Rate = float64(s.Deleted) / secs
	}
	if s.Rate > 0 && s.Scanned > s.Deleted {
		s.ETA = time.Duration(float64(s.Scanned-s.Deleted) / s.Rate * float64(time.Second))
	}
	return s
}

// DrainRecent empties the recent-deletion channel without blocking and
// returns at most the newest drainKeep paths.
func (p *Progress) DrainRecent() []string {
	var out []string
	for {
		select {
		case path := <-p.recent:
			out = append(out, path)
			if len(out) > drainKeep {
				out = out[1:]
			}
		default:
			return out
		}
	}
}

// DrainErrors empties the error channel without blocking and returns at
// most the newest drainKeep entries.
func (p *Progress) DrainErrors() []ErrorEntry {
	var out []ErrorEntry
	for {
		select {
		case e := <-p.errorLog:
			out = append(out, e)
			if len(out) > drainKeep {
				out = out[1:]
			}
		default:
			return out
		}
	}
}
