package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/stakeflow-labs/stakeflow-engine/internal/config"
	"github.com/stakeflow-labs/stakeflow-engine/internal/db"
	"github.com/stakeflow-labs/stakeflow-engine/internal/services"
)

// Server exposes the protocol operations and read views over HTTP. All
// mutating routes delegate to the service, which serializes them; the
// server itself holds no protocol state.
type Server struct {
	service *services.Service
	db      db.DbInterface
	srv     *http.Server
}

func New(cfg *config.ApiConfig, service *services.Service, dbClient db.DbInterface) *Server {
	s := &Server{
		service: service,
		db:      dbClient,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthcheck", s.handleHealthcheck)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/referrer/bind", s.handleBindReferrer)
		r.Post("/ticket/buy", s.handleBuyTicket)
		r.Post("/stake", s.handleStakeLiquidity)
		r.Post("/stake/redeem", s.handleRedeem)
		r.Post("/swap/buy", s.handleSwapAToB)
		r.Post("/swap/sell", s.handleSwapBToA)
		r.Post("/burn", s.handleDailyBurn)

		r.Get("/accounts/{address}", s.handleGetAccount)
		r.Get("/accounts/{address}/stakes", s.handleGetStakes)
		r.Get("/pool", s.handleGetPool)
		r.Get("/tiers", s.handleGetTiers)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/status", s.handleSetOperationalStatus)
			r.Post("/wallets", s.handleSetWallets)
			r.Post("/distribution", s.handleSetDistributionConfig)
			r.Post("/levels", s.handleSetLevelConfigs)
			r.Post("/taxes", s.handleSetSwapTaxes)
			r.Post("/liquidity", s.handleAddLiquidity)
			r.Post("/treasury/fund", s.handleFundTreasury)
			r.Post("/treasury/withdraw", s.handleWithdrawTreasury)
		})
	})

	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

func (s *Server) Start() error {
	log.Info().Str("addr", s.srv.Addr).Msg("starting api server")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
