package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/ortan-league/internal/app"
	"github.com/riskibarqy/ortan-league/internal/config"
	"github.com/riskibarqy/ortan-league/internal/observability"
	"github.com/riskibarqy/ortan-league/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return 1
	}
	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, cleanup, err := app.NewHTTPServer(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "env", cfg.AppEnv, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err, ok := <-serveErr:
		if ok {
			logger.Error("http server failed", "error", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	p := pool.New().WithErrors()
	p.Go(func() error { return srv.Shutdown(shutdownCtx) })
	p.Go(func() error { return observability.StopPprofServer(shutdownCtx, pprofSrv, logger) })
	p.Go(stopPyroscope)
	if err := p.Wait(); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		exitCode = 1
	}

	if err := cleanup(); err != nil {
		logger.Error("release storage", "error", err)
		exitCode = 1
	}
	// Flushed last so spans from the shutdown above are exported.
	if err := shutdownUptrace(shutdownCtx); err != nil {
		logger.Error("shutdown uptrace", "error", err)
		exitCode = 1
	}

	logger.Info("http server stopped")
	return exitCode
}
