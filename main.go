// texrack manages folder-based texture rack projects.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lazyvibe/texrack/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
