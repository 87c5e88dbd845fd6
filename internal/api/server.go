package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/payment-service/internal/config"
)

type Server struct {
	httpServer *http.Server
}

func New(cfg *config.ServerConfig, svc PaymentService, auth *Authenticator) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      NewRouter(cfg, svc, auth),
			WriteTimeout: cfg.WriteTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

func NewRouter(cfg *config.ServerConfig, svc PaymentService, auth *Authenticator) http.Handler {
	h := &handlers{svc: svc}
	limiter := newKeyLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(traceMiddleware)
	r.Use(metricsMiddleware)

	r.Get("/healthcheck", h.healthcheck)

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(limiter.middleware)

			r.Get("/config", h.getConfig)
			r.Get("/shares/{address}", h.getShares)
			r.Get("/events", h.listEvents)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.requireCaller)
			r.Use(limiter.middleware)

			r.Post("/deposits", h.deposit)
			r.Put("/streaming-time", h.setStreamingTime)
			r.Post("/shares", h.addShares)
			r.Get("/shares/me", h.getMyShares)
			r.Get("/withdrawals/preview", h.previewWithdraw)
			r.Post("/withdrawals", h.withdraw)
		})
	})

	return r
}

// Start blocks serving requests until the server is shut down.
func (s *Server) Start() error {
	log.Info().Msgf("Starting API server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
