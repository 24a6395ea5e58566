package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bennypowers.dev/svls/internal/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}
