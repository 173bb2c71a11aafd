package cli

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stakeflow-labs/stakeflow-engine/internal/api"
	"github.com/stakeflow-labs/stakeflow-engine/internal/config"
	"github.com/stakeflow-labs/stakeflow-engine/internal/db"
	dbmodel "github.com/stakeflow-labs/stakeflow-engine/internal/db/model"
	"github.com/stakeflow-labs/stakeflow-engine/internal/observability/metrics"
	"github.com/stakeflow-labs/stakeflow-engine/internal/observability/tracing"
	"github.com/stakeflow-labs/stakeflow-engine/internal/queue"
	"github.com/stakeflow-labs/stakeflow-engine/internal/services"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the Stakeflow protocol engine server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up protocol db model")
	}

	// create new db client
	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	// Create a basic zap logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating zap logger")
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			log.Fatal().Err(err).Msg("error while syncing zap logger")
		}
	}()

	queueManager, err := queue.NewQueueManager(&cfg.Queue, zapLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize event publisher")
	}
	defer queueManager.Shutdown()

	service := services.NewService(cfg, dbClient, queueManager, clockwork.NewRealClock())
	if err := service.Restore(ctx); err != nil {
		log.Fatal().Err(err).Msg("error while restoring ledger from journal")
	}

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	return api.New(&cfg.Api, service, dbClient).Start()
}
