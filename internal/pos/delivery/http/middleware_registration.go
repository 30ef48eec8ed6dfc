package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/tair/tiffin-pos/pkg/logger"
)

const (
	headerRequestID = "X-Request-ID"

	defaultRequestTimeout = 30 * time.Second

	// timeoutBody is the envelope written when a request exceeds its deadline
	timeoutBody = `{"success":false,"error":"Request timeout"}`
)

// MiddlewareConfig holds the knobs of the POS middleware chain
type MiddlewareConfig struct {
	RequestTimeout time.Duration
	AllowedOrigins []string
}

// DefaultMiddlewareConfig fills zero values with the service defaults
func DefaultMiddlewareConfig(timeout time.Duration, allowedOrigins []string) *MiddlewareConfig {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &MiddlewareConfig{
		RequestTimeout: timeout,
		AllowedOrigins: allowedOrigins,
	}
}

// RegisterMiddlewares installs the chain on router, outermost first: recovery,
// tracing, logging, metrics, timeout, request id, security headers.
// Tracing runs before logging so request log lines carry the trace id.
func RegisterMiddlewares(router *mux.Router, config *MiddlewareConfig) {
	router.Use(
		RecoveryMiddleware(),
		func(next http.Handler) http.Handler {
			return TracingMiddleware("pos-http-request", next)
		},
		LoggingMiddleware,
		MetricsMiddleware,
		TimeoutMiddleware(config.RequestTimeout),
		RequestIDMiddleware(),
		SecurityHeadersMiddleware(),
	)

	logger.Logger.Info().
		Dur("request_timeout", config.RequestTimeout).
		Strs("allowed_origins", config.AllowedOrigins).
		Msg("HTTP middlewares registered")
}

// RecoveryMiddleware turns a handler panic into a 500 envelope
func RecoveryMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error(r.Context()).
						Interface("panic", rec).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("request_id", r.Header.Get(headerRequestID)).
						Msg("Panic recovered")

					respondJSON(w, http.StatusInternalServerError, Response{
						Success: false,
						Error:   "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// TimeoutMiddleware bounds each request. A store call still in flight sees the
// cancelled context; an Update that already committed is not rolled back.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, timeoutBody)
	}
}

// RequestIDMiddleware keeps a caller's X-Request-ID or assigns one
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerRequestID)
			if id == "" {
				id = uuid.NewString()
				r.Header.Set(headerRequestID, id)
			}
			w.Header().Set(headerRequestID, id)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware sets browser hardening headers. The swagger UI
// needs inline scripts, so it is served without a CSP.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if !strings.HasPrefix(r.URL.Path, "/swagger/") {
				h.Set("Content-Security-Policy", "default-src 'self'")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SetupCORS wraps the whole router so preflight requests never reach mux
func SetupCORS(config *MiddlewareConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{headerRequestID},
		AllowCredentials: true,
	}).Handler
}
