package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"

	"github.com/reapfs/reap/internal/cmd"
)

func main() {
	// Interrupts trigger the cooperative abort: workers stop at loop
	// boundaries and the final summary still reflects what happened.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := fang.Execute(ctx, cmd.NewRootCmd()); err != nil {
		os.Exit(1)
	}
}
