package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/altuslabsxyz/arbctl/cmd/arbctl/commands"
	"github.com/altuslabsxyz/arbctl/internal/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := commands.NewRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		commands.PrintError(output.NewLogger(), err)
		os.Exit(commands.ExitCode(err))
	}
}
