package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/payment-service/internal/config"
	"github.com/babylonlabs-io/payment-service/internal/db"
	dbmodel "github.com/babylonlabs-io/payment-service/internal/db/model"
	"github.com/babylonlabs-io/payment-service/internal/ledger"
	"github.com/babylonlabs-io/payment-service/internal/observability/tracing"
	"github.com/babylonlabs-io/payment-service/internal/queue"
	"github.com/babylonlabs-io/payment-service/internal/services"
)

// deploymentRecord is written after a deployment so other tooling can find
// the instance and its owner.
type deploymentRecord struct {
	Address string `json:"address"`
	Owner   string `json:"owner"`
}

func DeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Creates the ledger owned by the configured administrator and writes the deployment record",
		Args:  cobra.ExactArgs(0),
		RunE:  deploy,
	}

	cmd.Flags().String("output", "", "deployment record path (defaults to ledger.deployment-record-path)")

	return cmd
}

func deploy(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return err
	}

	if err := dbmodel.Setup(ctx, &cfg.Db); err != nil {
		return fmt.Errorf("failed to setup db model: %w", err)
	}

	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbClient.Disconnect(ctx); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to disconnect from db")
		}
	}()

	service := services.NewService(cfg, dbClient, nil, queue.NopPublisher{})
	state, err := service.Deploy(ctx)
	if err != nil {
		return err
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if output == "" {
		output = cfg.Ledger.DeploymentRecordPath
	}

	if err := writeDeploymentRecord(output, state); err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Str("address", state.InstanceID).
		Str("owner", state.Administrator).
		Str("path", output).
		Msg("deployment record written")
	return nil
}

func writeDeploymentRecord(path string, state *ledger.State) error {
	record := deploymentRecord{
		Address: state.InstanceID,
		Owner:   state.Administrator,
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write deployment record: %w", err)
	}
	return nil
}
