package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/babylonlabs-io/payment-service/internal/api"
	"github.com/babylonlabs-io/payment-service/internal/clients/transferclient"
	"github.com/babylonlabs-io/payment-service/internal/config"
	"github.com/babylonlabs-io/payment-service/internal/db"
	dbmodel "github.com/babylonlabs-io/payment-service/internal/db/model"
	"github.com/babylonlabs-io/payment-service/internal/observability/metrics"
	"github.com/babylonlabs-io/payment-service/internal/observability/tracing"
	"github.com/babylonlabs-io/payment-service/internal/queue"
	"github.com/babylonlabs-io/payment-service/internal/services"
)

const shutdownTimeout = 10 * time.Second

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the payment service API",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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
		log.Fatal().Err(err).Msg("error while setting up payment db model")
	}

	// create new db client
	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	var transferClient transferclient.TransferInterface
	transferClient = transferclient.NewClient(&cfg.Transfer)
	transferClient = transferclient.NewTransferClientWithMetrics(transferClient)

	var publisher queue.EventPublisher = queue.NopPublisher{}
	if cfg.Queue != nil {
		// Create a basic zap logger
		zapLogger, err := zap.NewProduction()
		if err != nil {
			log.Fatal().Err(err).Msg("error while creating zap logger")
		}
		defer func() {
			if err := zapLogger.Sync(); err != nil {
				log.Warn().Err(err).Msg("error while syncing zap logger")
			}
		}()

		queueManager, err := queue.NewQueueManager(cfg.Queue, zapLogger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize event publisher")
		}
		defer queueManager.Shutdown()
		publisher = queueManager
	} else {
		log.Info().Msg("no queue configured, events are only stored")
	}

	service := services.NewService(cfg, dbClient, transferClient, publisher)
	if err := service.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("error while loading ledger")
	}

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	auth := api.NewAuthenticator(cfg.Server.JWTSecret, cfg.Server.JWTIssuer)
	server := api.New(&cfg.Server, service, auth)

	var wg conc.WaitGroup
	wg.Go(func() {
		service.StartStatsPoller(ctx)
	})
	wg.Go(func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("API server stopped")
			stop()
		}
	})

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error while shutting down API server")
	}

	wg.Wait()
	return nil
}
