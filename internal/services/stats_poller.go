package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/payment-service/internal/observability/metrics"
	"github.com/babylonlabs-io/payment-service/internal/utils/poller"
)

// StartStatsPoller publishes ledger gauges on the configured interval until ctx is done.
func (s *Service) StartStatsPoller(ctx context.Context) {
	statsPoller := poller.NewPoller(
		"stats",
		s.cfg.Poller.StatsPollingInterval,
		metrics.RecordPollerDuration("stats", s.updateStats),
	)
	statsPoller.Start(ctx)
}

// updateStats refreshes the ledger gauges and re-checks the share invariant
// against the committed snapshot.
func (s *Service) updateStats(ctx context.Context) error {
	state, err := s.snapshot()
	if err != nil {
		return err
	}

	if err := state.Validate(); err != nil {
		return fmt.Errorf("ledger invariant violated: %w", err)
	}

	metrics.RecordLedgerStats(state.BenefitAmount, state.TotalShares, len(state.Beneficiaries))

	log.Ctx(ctx).Debug().
		Str("benefit_amount", state.BenefitAmount.String()).
		Str("total_shares", state.TotalShares.String()).
		Int("beneficiaries", len(state.Beneficiaries)).
		Msg("Updated ledger stats")

	return nil
}
