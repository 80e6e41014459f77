package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/user/rera-scraper/internal/app"
	"github.com/user/rera-scraper/pkg/config"
	"github.com/user/rera-scraper/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, prometheus.NewRegistry(), os.Stdout, log)
	if err != nil {
		log.Fatal("could not initialise scraper", zap.Error(err))
	}
	defer a.Close()

	log.Info("starting scrape", zap.String("list_url", cfg.ListURL()), zap.Int("max_projects", cfg.MaxProjects))

	// Fetch and parse problems never fail the run; only an unwritable
	// output file does.
	if _, err := a.Pipeline.Execute(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("scrape run failed", zap.Error(err))
		a.Close()
		os.Exit(1)
	}
}
