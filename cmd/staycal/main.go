package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"staycal/internal/infra/config"
	ginserver "staycal/internal/infra/http/gin"
	"staycal/internal/infra/obs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	defer app.close(logger)

	if err := app.loadRecordFixtures(ctx, cfg.RecordsFixtures, logger); err != nil {
		logger.Warn("availability fixtures load failed", "error", err, "path", cfg.RecordsFixtures)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Checks: app.checks}, app.handlers)

	g, gctx := errgroup.WithContext(ctx)
	for _, run := range app.background {
		run := run
		g.Go(func() error {
			if err := run.fn(gctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("background worker stopped", "worker", run.name, "error", err)
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "mongo", cfg.UseMongo(), "kafka", cfg.UseKafka())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("service stopped with error", "error", err)
		app.close(logger)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
