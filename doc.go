// Package main provides the reap command-line interface.
//
// reap is a fast, concurrent file and directory remover. It scans and
// deletes trees with two independently sized worker pools coupled by a
// bounded queue, showing live progress and tolerating partial failures.
//
// The main binary supports multiple subcommands:
//   - reap PATH...: remove the given files and directory trees
//   - seed: generate randomized test trees for exercising the remover
//   - count: count entries in directory trees
package main
