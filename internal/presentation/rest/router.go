package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hearthloan/prequal/pkg/auth"
)

type RouterConfig struct {
	API            *Handler
	Health         *HealthHandler
	Metrics        http.Handler
	JWT            *auth.JWTService
	RateLimitRPS   float64
	RateLimitBurst int
	Logger         *slog.Logger
}

// NewRouter assembles the HTTP surface. Probes and /metrics are public; /v1
// requires a bearer token and is rate limited per client.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(cfg.Logger))
	r.Use(middleware.Recoverer)

	cfg.Health.Register(r)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	limiter := newClientLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	r.Route("/v1", func(r chi.Router) {
		r.Use(auth.HTTPMiddleware(cfg.JWT, nil))
		r.Use(limiter.middleware)
		cfg.API.Register(r)
	})
	return r
}
