package httpapi

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/felixge/httpsnoop"
	"github.com/riskibarqy/ortan-league/internal/config"
	"github.com/riskibarqy/ortan-league/internal/platform/logging"
	"github.com/riskibarqy/ortan-league/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	corsAllowedMethods = "GET,POST,OPTIONS"
	corsAllowedHeaders = "Content-Type,Authorization"
)

// RequireAdminBasicAuth guards next with HTTP Basic credentials. When creds
// are not fully configured every request passes and a warning is logged.
func RequireAdminBasicAuth(creds config.AdminCredentials, logger *logging.Logger, next http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	challenge := fmt.Sprintf("Basic realm=%q", creds.Realm)
	expectedUser := []byte(creds.User)
	expectedPass := []byte(creds.Password)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequireAdminBasicAuth")
		defer span.End()

		if !creds.Enabled() {
			logger.WarnContext(ctx, "admin credentials not configured, accepting unauthenticated write",
				"method", r.Method,
				"path", r.URL.Path,
			)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		user, pass, ok := r.BasicAuth()
		userMatch := subtle.ConstantTimeCompare([]byte(user), expectedUser)
		passMatch := subtle.ConstantTimeCompare([]byte(pass), expectedPass)
		if !ok || userMatch&passMatch != 1 {
			w.Header().Set("WWW-Authenticate", challenge)
			writeError(ctx, w, fmt.Errorf("%w: invalid admin credentials", usecase.ErrUnauthorized), "")
			return
		}

		next.ServeHTTP(w, r.WithContext(withAdminUser(ctx, user)))
	})
}

func RequestLogging(logger *logging.Logger, next http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequestLogging")
		defer span.End()

		metrics := httpsnoop.CaptureMetrics(next, w, r.WithContext(ctx))

		logger.InfoContext(ctx, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", metrics.Code,
			"bytes", metrics.Written,
			"remote_addr", r.RemoteAddr,
			"duration_ms", metrics.Duration.Milliseconds(),
		)
	})
}

func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "ortan-league-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.URL.Path)
		}),
	)
}

func shouldTraceRequest(path string) bool {
	normalized := strings.ToLower(strings.TrimSpace(path))
	switch normalized {
	case "/healthz", "/health", "/livez", "/readyz":
		return false
	default:
		return true
	}
}

// CORS answers every OPTIONS request itself with 200 and an empty body, so
// preflights never reach routing or auth.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := false
	allowMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		candidate := strings.TrimSpace(origin)
		if candidate == "" {
			continue
		}
		if candidate == "*" {
			allowAll = true
			continue
		}
		allowMap[candidate] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.CORS")
		defer span.End()

		header := w.Header()
		if allowAll {
			header.Set("Access-Control-Allow-Origin", "*")
		} else if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
			header.Add("Vary", "Origin")
			if _, ok := allowMap[origin]; ok {
				header.Set("Access-Control-Allow-Origin", origin)
			}
		}
		if header.Get("Access-Control-Allow-Origin") != "" {
			header.Set("Access-Control-Allow-Methods", corsAllowedMethods)
			header.Set("Access-Control-Allow-Headers", corsAllowedHeaders)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
