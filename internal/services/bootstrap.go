package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/payment-service/internal/db"
	"github.com/babylonlabs-io/payment-service/internal/db/model"
	"github.com/babylonlabs-io/payment-service/internal/ledger"
)

var ErrAdministratorMismatch = errors.New("deployed ledger has a different administrator")

// Deploy creates the ledger of a new payment instance owned by the configured
// administrator. Deploying over an existing ledger of the same administrator
// returns that ledger unchanged.
func (s *Service) Deploy(ctx context.Context) (*ledger.State, error) {
	state := ledger.NewState(uuid.NewString(), s.cfg.Ledger.Name, s.cfg.Ledger.Administrator)

	err := s.db.InsertLedger(ctx, model.FromLedgerState(state, s.now().UnixMilli()))
	if err != nil {
		if !db.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("failed to insert ledger: %w", err)
		}

		existing, loadErr := s.load(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		log.Ctx(ctx).Info().
			Str("instance_id", existing.InstanceID).
			Msg("ledger already deployed")
		return existing, nil
	}

	log.Ctx(ctx).Info().
		Str("instance_id", state.InstanceID).
		Str("administrator", state.Administrator).
		Str("name", state.Name).
		Msg("ledger deployed")

	s.state.Store(state)
	return state.Clone(), nil
}

// Bootstrap loads the persisted ledger, deploying a new one on first start.
func (s *Service) Bootstrap(ctx context.Context) error {
	_, err := s.load(ctx)
	if err == nil {
		return nil
	}
	if !db.IsNotFoundError(err) {
		return err
	}

	log.Ctx(ctx).Info().Msg("no ledger found, deploying a new one")
	_, err = s.Deploy(ctx)
	return err
}

func (s *Service) load(ctx context.Context) (*ledger.State, error) {
	doc, err := s.db.GetLedger(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	state, err := doc.ToLedgerState()
	if err != nil {
		return nil, fmt.Errorf("failed to decode ledger: %w", err)
	}

	if state.Administrator != s.cfg.Ledger.Administrator {
		return nil, fmt.Errorf("%w: %s", ErrAdministratorMismatch, state.Administrator)
	}

	s.state.Store(state)
	log.Ctx(ctx).Info().
		Str("instance_id", state.InstanceID).
		Int("beneficiaries", len(state.Beneficiaries)).
		Str("benefit_amount", state.BenefitAmount.String()).
		Msg("ledger loaded")

	return state.Clone(), nil
}
