package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/fluidstake/liquid-staking-pool/internal/config"
	"github.com/fluidstake/liquid-staking-pool/internal/services"
)

// Server serves the pool HTTP API.
type Server struct {
	httpServer *http.Server
	handler    *Handler
}

// New builds the API server. dev may be nil, in which case the dev endpoints
// are not mounted even if the configuration asks for them.
func New(cfg *config.ServerConfig, service *services.Service, dev *DevTools) *Server {
	h := NewHandler(service, dev)

	return &Server{
		handler: h,
		httpServer: &http.Server{
			Addr:         cfg.Address(),
			Handler:      h.Router(cfg.DevMode),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// Router returns the route tree. Exposed so tests can drive it through
// httptest without binding a port.
func (h *Handler) Router(devMode bool) http.Handler {
	r := chi.NewRouter()
	r.Use(traceMiddleware, contentTypeMiddleware)

	r.Get("/healthcheck", h.Healthcheck)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/pool/initialize", registerHandler(h.InitializePool))
		r.Get("/pool", registerHandler(h.GetPool))

		r.Get("/validators", registerHandler(h.GetValidators))
		r.Post("/validators", registerHandler(h.RegisterValidator))
		r.Post("/validators/{index}/deactivate", registerHandler(h.DeactivateValidator))
		r.Post("/validators/{index}/activate", registerHandler(h.ActivateValidator))
		r.Post("/validators/{index}/harvest", registerHandler(h.HarvestRewards))

		r.Post("/deposits", registerHandler(h.Deposit))
		r.Post("/withdrawals", registerHandler(h.Withdraw))
		r.Post("/delegations", registerHandler(h.Delegate))
		r.Post("/rewards", registerHandler(h.UpdateRewards))
		r.Post("/rebalance", registerHandler(h.Rebalance))
		r.Post("/fees/withdraw", registerHandler(h.WithdrawFees))

		r.Get("/events", registerHandler(h.GetLedgerEvents))

		if devMode && h.dev != nil {
			r.Route("/dev", func(r chi.Router) {
				r.Get("/accounts/{account}", registerHandler(h.GetAccount))
				r.Post("/accounts/{account}/credit", registerHandler(h.CreditAccount))
				r.Post("/delegations/accrue", registerHandler(h.AccrueDelegation))
			})
		}
	})

	return r
}

// Start blocks serving requests until the server is stopped.
func (s *Server) Start() error {
	log.Info().Str("address", s.httpServer.Addr).Msg("starting api server")
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
