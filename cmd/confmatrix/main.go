// Command confmatrix turns matrix descriptions into batched dvc configuration strings
// and experiment documents into chart reports
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"confmatrix/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Get().Error().Err(err).Msg("confmatrix failed")
		stop()
		os.Exit(1)
	}
}
