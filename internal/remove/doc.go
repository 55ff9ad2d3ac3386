// Package remove implements the concurrent directory-tree deletion engine.
//
// The engine is built around two independently sized worker pools coupled by
// a bounded work queue:
//
// Scanner pool:
//   - Traverses each validated root depth-first, classifying every entry
//     with Lstat so symlinks (including broken ones) are never followed.
//   - Enqueues a deletion Job per entry. A directory's own job is enqueued
//     only after the jobs for everything beneath it, so consumers normally
//     see children before parents (postorder).
//
// Deleter pool:
//   - Drains the queue and applies the matching removal: unlink for files
//     and symlinks, rmdir for directories.
//   - Because consumption order across workers is not enqueue order, a
//     directory job can be picked up before its children have finished
//     deleting. "Directory not empty" is therefore treated as a transient
//     condition and resolved with backoff retries and bounded requeues,
//     never reported as an error on first occurrence.
//
// Coordination:
//   - The queue is the only job hand-off; Enqueue blocks when it is full,
//     which is what keeps a fast scanner from outrunning slow deleters.
//   - Progress counters (scanned, deleted, errors) are padded atomics shared
//     by every worker; at clean completion scanned == deleted + errors.
//   - A one-shot completion flag is raised only after the entire scanner
//     pool has joined. A deleter exits when it observes the flag set and the
//     queue depth at zero, or when the run context is cancelled.
//   - There is no forcible shutdown. Fatal errors (continue-on-error off)
//     cancel the run context and both pools unwind at loop boundaries.
//
// Validation happens before any worker starts: input paths are
// canonicalized, deduplicated, and rejected if one is an ancestor of
// another, since deleting overlapping trees from independent scan branches
// races.
//
// Dry-run mode swaps the removal calls for no-ops while keeping every other
// code path identical, so its accounting is a faithful preview of a live
// run.
package remove
