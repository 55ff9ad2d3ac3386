package display

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/reapfs/reap/internal/remove"
)

// RunPlain drives a removal without the terminal UI, logging drained
// activity through zerolog instead. At Simple verbosity only errors are
// logged; Standard and above also log each removed path, the way verbose
// rm output reads.
func RunPlain(ctx context.Context, r *remove.Remover, paths []string, cfg remove.Config) (remove.Result, error) {
	prog := r.Progress()
	stop := make(chan struct{})
	drained := make(chan struct{})

	go func() {
		defer close(drained)
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			logActivity(prog, cfg)
			select {
			case <-ticker.C:
			case <-stop:
				// Final drain so nothing published late is lost.
				logActivity(prog, cfg)
				return
			}
		}
	}()

	res, err := r.Run(ctx, paths)
	close(stop)
	<-drained
	return res, err
}

func logActivity(prog *remove.Progress, cfg remove.Config) {
	if cfg.Verbosity.Verbose() {
		verb := "removed"
		if cfg.DryRun {
			verb = "would remove"
		}
		for _, path := range prog.DrainRecent() {
			log.Info().Str("path", path).Msg(verb)
		}
	}
	for _, e := range prog.DrainErrors() {
		log.Error().Str("path", e.Path).Msg(e.Msg)
	}
}
