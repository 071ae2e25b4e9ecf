package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fluidstake/liquid-staking-pool/internal/api"
	"github.com/fluidstake/liquid-staking-pool/internal/db"
	dbmodel "github.com/fluidstake/liquid-staking-pool/internal/db/model"
	"github.com/fluidstake/liquid-staking-pool/internal/observability/metrics"
	"github.com/fluidstake/liquid-staking-pool/internal/observability/tracing"
	"github.com/fluidstake/liquid-staking-pool/internal/queue"
)

const shutdownTimeout = 10 * time.Second

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the liquid staking pool API server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error while loading config")
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up pool db model")
	}

	// create new db client
	dbConn, err := db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	defer func() {
		if err := dbConn.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("error while closing db client")
		}
	}()
	var dbClient db.DbInterface = db.NewDbWithMetrics(dbConn)

	// Create a basic zap logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating zap logger")
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	publisher, err := queue.NewQueueManager(&cfg.Queue, zapLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize ledger event publisher")
	}
	defer publisher.Shutdown()

	service, collab, err := newService(ctx, cfg, dbClient, publisher)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating service")
	}

	state, _ := service.GetPoolState()
	if err := reseedCollaborators(ctx, dbClient, &cfg.Pool, state, collab); err != nil {
		log.Fatal().Err(err).Msg("error while reseeding collaborators")
	}

	if !state.Initialized && cfg.Pool.Authority != "" {
		if err := service.InitializePool(ctx, cfg.Pool.Authority); err != nil {
			log.Fatal().Err(err).Msg("error while initializing pool")
		}
	}

	// initialize metrics with the metrics port from config
	metrics.Init(cfg.Metrics.GetMetricsPort())

	service.StartStatsPoller(ctx)

	var dev *api.DevTools
	if cfg.Server.DevMode {
		log.Warn().Msg("dev mode enabled: account funding and reward accrual endpoints are exposed")
		dev = &api.DevTools{Custody: collab.custody, Receipts: collab.issuer, Stake: collab.stake}
	}
	server := api.New(&cfg.Server, service, dev)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Stop(shutdownCtx)
}
