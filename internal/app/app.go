package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/ortan-league/internal/config"
	"github.com/riskibarqy/ortan-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/ortan-league/internal/platform/logging"
	"github.com/riskibarqy/ortan-league/internal/usecase"
)

// NewHTTPServer wires storage, the leaderboard use case and the router. The
// returned cleanup releases storage resources and must run after the server
// has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repo, cleanup, err := newLeaderboardRepository(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	leaderboardSvc := usecase.NewLeaderboardService(repo, logger)
	handler := httpapi.NewHandler(leaderboardSvc, logger)
	router := httpapi.NewRouter(handler, httpapi.RouterOptions{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Admin:              cfg.Admin,
		StaticDir:          cfg.StaticDir,
	}, logger)

	if !cfg.Admin.Enabled() {
		logger.Warn("ADMIN_USER/ADMIN_PASS not set, POST /api/result is unauthenticated")
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}
