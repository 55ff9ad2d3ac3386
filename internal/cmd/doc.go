// Package cmd provides the command-line interface implementation for reap.
//
// The root command is the remover itself: it validates the requested paths,
// runs the concurrent scan/delete pipeline from internal/remove, and prints
// a final summary. It uses the Cobra library for command structure and Fang
// for styling. Utility subcommands help when working with large trees:
//   - seed: generate a randomized test tree for exercising the remover
//   - count: count the entries a removal of a tree would report as scanned
//
// Every root-command flag can also be supplied through a REAP_* environment
// variable (REAP_DRY_RUN, REAP_THREADS, ...); explicit flags win.
package cmd
