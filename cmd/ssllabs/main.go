package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adda-Baaj/ssll-wrapper/internal/app"
	"github.com/Adda-Baaj/ssll-wrapper/internal/config"
	"github.com/Adda-Baaj/ssll-wrapper/internal/logger"
)

func main() {
	ok, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ssllabs failed: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}

func run() (bool, error) {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return false, fmt.Errorf("load config: %w", err)
	}

	sugar, err := logger.Init(cfg)
	if err != nil {
		return false, fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()
	log := logger.New(sugar)

	log.DebugObj("ssllabs starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := app.NewRunner(ctx, cfg, log, os.Stdout)
	if err != nil {
		log.ErrorObj("failed to initialize runner", "error", err)
		return false, err
	}

	ok, err := runner.Run(ctx)
	if err != nil {
		return ok, fmt.Errorf("run %s: %w", cfg.Operation, err)
	}
	return ok, nil
}
