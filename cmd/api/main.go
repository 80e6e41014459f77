package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/user/rera-scraper/internal/app"
	"github.com/user/rera-scraper/internal/delivery/http/handler"
	"github.com/user/rera-scraper/internal/delivery/http/router"
	"github.com/user/rera-scraper/pkg/config"
	"github.com/user/rera-scraper/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// --- Components ---
	a, err := app.New(context.Background(), cfg, prometheus.DefaultRegisterer, io.Discard, log)
	if err != nil {
		log.Fatal("could not initialise scraper", zap.Error(err))
	}
	defer a.Close()

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(a.Pipeline, a.Projects, a.Failures, a.Pingers, log)
	httpRouter := router.New(apiHandler, a.Metrics, prometheus.DefaultGatherer, log)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 6 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("could not start server", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("port", cfg.ServerPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	log.Info("server exiting")
}
