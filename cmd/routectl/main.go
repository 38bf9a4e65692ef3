package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/anoideaopen/pluginhost/core/logger"
	"github.com/anoideaopen/pluginhost/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		logger.Logger().Error(err)
		stop()
		os.Exit(1)
	}
}
