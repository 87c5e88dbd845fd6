package cli

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/payment-service/internal/config"
	"github.com/babylonlabs-io/payment-service/internal/db"
	"github.com/babylonlabs-io/payment-service/internal/observability/tracing"
)

func DumpStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump-state",
		Short: "Prints the persisted ledger",
		Args:  cobra.ExactArgs(0),
		RunE:  dumpState,
	}

	return cmd
}

func dumpState(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return err
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

	doc, err := dbClient.GetLedger(ctx)
	if err != nil {
		return err
	}

	state, err := doc.ToLedgerState()
	if err != nil {
		return err
	}
	if err := state.Validate(); err != nil {
		return fmt.Errorf("persisted ledger is inconsistent: %w", err)
	}

	dumper := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	dumper.Fdump(cmd.OutOrStdout(), doc)
	return nil
}
