package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adda-Baaj/pocket-sync/internal/app"
	"github.com/Adda-Baaj/pocket-sync/internal/config"
	"github.com/Adda-Baaj/pocket-sync/internal/logger"
)

func main() {
	once := flag.Bool("once", false, "run a single sync pass and exit")
	flag.Parse()

	if err := run(*once); err != nil {
		fmt.Fprintf(os.Stderr, "pocketsync start failed: %v\n", err)
		os.Exit(1)
	}
}

func run(once bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := logger.Init(cfg.LogLevel); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()
	log := logger.Default()

	log.InfoObj("pocketsync starting", "config", cfg.LogFields())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	syncer, err := app.NewSyncer(ctx, cfg, log)
	if err != nil {
		log.ErrorObj("failed to initialize syncer", "error", err.Error())
		return err
	}

	if once {
		if err := syncer.RunOnce(ctx); err != nil {
			return fmt.Errorf("sync pass: %w", err)
		}
		return nil
	}
	if err := syncer.Run(ctx); err != nil {
		return fmt.Errorf("syncer run: %w", err)
	}
	return nil
}
