package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/reapfs/reap/internal/display"
	"github.com/reapfs/reap/internal/remove"
	"github.com/reapfs/reap/version"
)

// NewRootCmd creates and returns the root cobra command for the reap CLI.
// The root command performs the removal; subcommands cover utilities.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reap [flags] PATH...",
		Short: "A fast, concurrent file and directory remover",
		Long: `reap removes files and directory trees using two independently sized
worker pools: one pool scans the trees and discovers work, the other
performs the deletions, coupled by a bounded queue. Progress is shown
live while the run is in flight.

Paths are canonicalized and checked before anything starts: requesting
both a directory and something inside it is rejected, since deleting
overlapping trees concurrently races.`,
		Args:    cobra.MinimumNArgs(1),
		Version: version.GetFullVersion(),
		Run: func(cmd *cobra.Command, args []string) {
			runRemove(cmd.Context(), cmd, args)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolP("dry-run", "n", false, "Do not remove anything, only show what would be done")
	flags.BoolP("continue-on-error", "c", false, "Count and skip recoverable errors instead of aborting")
	flags.IntP("threads", "j", 0, "Worker threads for both pools (default: number of CPU cores)")
	flags.Int("scan-threads", 0, "Scanner pool size (overrides --threads)")
	flags.Int("delete-threads", 0, "Deleter pool size (overrides --threads)")
	flags.CountP("verbose", "v", "Verbosity: -v for standard, -vv for detailed")
	flags.Bool("no-progress", false, "Disable the live progress display")

	rootCmd.AddCommand(NewSeedCmd())
	rootCmd.AddCommand(NewCountCmd())

	return rootCmd
}

// bindConfig merges flags with REAP_* environment variables (flags win)
// and produces the engine configuration.
func bindConfig(cmd *cobra.Command) (remove.Config, bool, error) {
	v := viper.New()
	v.SetEnvPrefix("REAP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return remove.Config{}, false, err
	}

	scan := v.GetInt("scan-threads")
	del := v.GetInt("delete-threads")
	if threads := v.GetInt("threads"); threads > 0 {
		if scan == 0 {
			scan = threads
		}
		if del == 0 {
			del = threads
		}
	}

	cfg := remove.Config{
		DryRun:          v.GetBool("dry-run"),
		ContinueOnError: v.GetBool("continue-on-error"),
		ScanThreads:     scan,
		DeleteThreads:   del,
		Verbosity:       remove.VerbosityFromCount(v.GetInt("verbose")),
	}
	return cfg, v.GetBool("no-progress"), nil
}

func setupLogging(verbosity remove.Verbosity) {
	level := zerolog.WarnLevel
	switch verbosity {
	case remove.VerbosityStandard:
		level = zerolog.InfoLevel
	case remove.VerbosityDetailed:
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func runRemove(ctx context.Context, cmd *cobra.Command, args []string) {
	cfg, noProgress, err := bindConfig(cmd)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg.Verbosity)

	if cfg.DryRun {
		fmt.Println("Dry run mode activated. No files will be deleted.")
	}

	r := remove.New(cfg)

	useTUI := !noProgress && term.IsTerminal(int(os.Stdout.Fd()))
	var res remove.Result
	if useTUI {
		res, err = display.Run(ctx, r, args, cfg)
	} else {
		res, err = display.RunPlain(ctx, r, args, cfg)
	}

	var overlap *remove.PathOverlapError
	switch {
	case errors.As(err, &overlap), errors.Is(err, remove.ErrNoPaths):
		// Validation failures happen before any worker starts; there is
		// nothing to summarize.
		log.Error().Msg(err.Error())
		os.Exit(1)
	case err != nil:
		log.Error().Msg(err.Error())
	}

	fmt.Print(display.Summary(res, cfg))

	if err != nil || res.Errors > 0 {
		os.Exit(1)
	}
}
