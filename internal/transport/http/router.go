// Package httptransport assembles the HTTP surface. Handlers stay thin and
// delegate to domain services; this package only decides which routes are
// public and which middleware wraps them.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"backoffice/internal/platform/metrics"
	"backoffice/pkg/platform/httputil"
	authmw "backoffice/pkg/platform/middleware/auth"
	"backoffice/pkg/platform/middleware/request"
	"backoffice/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by every feature handler.
type Registrar interface {
	Register(r chi.Router)
}

// Config is everything the router needs.
type Config struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	Validator      authmw.JWTValidator

	// Public handlers are reachable without a session (login, logout).
	Public []Registrar
	// Protected handlers require a valid session token.
	Protected []Registrar
}

func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(cfg.Logger))
	r.Use(requesttime.Middleware)
	r.Use(metrics.LatencyMiddleware(cfg.Metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", request.HeaderRequestID},
		ExposedHeaders:   []string{request.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	for _, h := range cfg.Public {
		h.Register(r)
	}

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(cfg.Validator, cfg.Logger))
		for _, h := range cfg.Protected {
			h.Register(r)
		}
	})

	return r
}
