package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"marquee/internal/services"
)

// Exit codes: 1 for runtime failures, 2 for bad input or configuration.
const (
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root, state := newRootCommand()
	err := execute(ctx, root, state)
	stop()
	if err == nil {
		return
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "marquee:", err)
	}
	if services.IsUserError(err) {
		os.Exit(exitUsage)
	}
	os.Exit(exitFailure)
}
