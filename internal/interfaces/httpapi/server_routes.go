package httpapi

import (
	"net/http"
	"os"

	"github.com/riskibarqy/ortan-league/internal/config"
	"github.com/riskibarqy/ortan-league/internal/platform/logging"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerLeaderboardRoutes(mux *http.ServeMux, handler *Handler, admin config.AdminCredentials, logger *logging.Logger) {
	mux.HandleFunc("GET /api/leaderboards", handler.GetLeaderboards)
	mux.Handle("POST /api/result", RequireAdminBasicAuth(admin, logger, http.HandlerFunc(handler.PostResult)))
}

func registerStaticRoutes(mux *http.ServeMux, dir string, logger *logging.Logger) {
	if dir == "" {
		return
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Info("static directory not found, static files disabled", "dir", dir)
		return
	}

	mux.Handle("GET /", http.FileServer(http.Dir(dir)))
}
