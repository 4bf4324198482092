// Command drawwatch collects daily lottery draw results.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	// Draw times are interpreted in IANA zones; embed the database so
	// minimal containers without /usr/share/zoneinfo still resolve them.
	_ "time/tzdata"

	"github.com/custodia-labs/drawwatch/internal/adapters/driving/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
