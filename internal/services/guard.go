package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/payment-service/internal/db/model"
	"github.com/babylonlabs-io/payment-service/internal/ledger"
	"github.com/babylonlabs-io/payment-service/internal/types"
)

type transferInFlightKey struct{}

// begin takes the ledger lock for a mutating operation. Calls made from inside
// a transfer, or by the counterparty of the transfer in flight, are rejected
// instead of waiting on the lock they would never get.
//
// The returned context is detached from the caller's cancellation: once the
// lock is held the operation either commits or rolls back.
func (s *Service) begin(ctx context.Context, caller, operation string) (context.Context, func(), *types.Error) {
	if ctx.Value(transferInFlightKey{}) != nil {
		return nil, nil, types.NewReentrantCallError(operation)
	}
	if payee := s.payee.Load(); payee != nil && *payee == caller {
		return nil, nil, types.NewReentrantCallError(operation)
	}

	s.mu.Lock()
	ctx = context.WithoutCancel(ctx)
	return ctx, func() { s.release(ctx) }, nil
}

// release unlocks the ledger, then stores and publishes the events the
// operation emitted.
func (s *Service) release(ctx context.Context) {
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, event := range pending {
		s.dispatch(ctx, event)
	}
}

// runTransfer marks account as the counterparty of the transfer for the
// duration of fn.
func (s *Service) runTransfer(ctx context.Context, account string, fn func(ctx context.Context) error) error {
	s.payee.Store(&account)
	defer s.payee.Store(nil)

	return fn(context.WithValue(ctx, transferInFlightKey{}, account))
}

func (s *Service) persist(ctx context.Context, state *ledger.State) *types.Error {
	doc := model.FromLedgerState(state, s.now().UnixMilli())
	if err := s.db.SaveLedger(ctx, doc); err != nil {
		return types.NewInternalServiceError(fmt.Errorf("failed to save ledger: %w", err))
	}
	return nil
}

// compensate writes prev back after the transfer following a persisted change failed.
func (s *Service) compensate(ctx context.Context, prev *ledger.State, transferErr error) *types.Error {
	failure := types.NewTransferFailureError(transferErr)

	if err := s.persist(ctx, prev); err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			AnErr("transfer_error", transferErr).
			Msg("failed to restore ledger after failed transfer")
		return types.NewInternalServiceError(fmt.Errorf("%w: restoring ledger: %w", failure, err))
	}

	return failure
}

// validateCaller rejects identities that could never have been issued.
func validateCaller(caller string) *types.Error {
	if err := validateIdentity(caller); err != nil {
		return types.NewValidationFailedError(fmt.Errorf("caller: %w", err))
	}
	return nil
}
