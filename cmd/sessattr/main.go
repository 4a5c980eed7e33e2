// Command sessattr edits expiring session attributes in a configured session store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/sessionattrs/core/config"
	"github.com/dmitrymomot/sessionattrs/core/logger"
)

func main() {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithOutput(os.Stderr),
		logger.WithAttr(logger.Component("sessattr")),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(func(ctx context.Context) (*backend, error) {
		return openBackend(ctx, cfg, log)
	}, log)

	if err := root.ExecuteContext(ctx); err != nil {
		log.Error("command failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}
