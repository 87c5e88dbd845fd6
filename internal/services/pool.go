package services

import (
	"context"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/payment-service/internal/ledger"
	"github.com/babylonlabs-io/payment-service/internal/observability/metrics"
	"github.com/babylonlabs-io/payment-service/internal/types"
)

// DepositBenefitAmount collects value from caller into the pool.
func (s *Service) DepositBenefitAmount(ctx context.Context, caller string, value sdkmath.Uint) *types.Error {
	start := time.Now()
	err := s.depositBenefitAmount(ctx, caller, value)
	s.track(ctx, "deposit_benefit_amount", start, err)
	return err
}

func (s *Service) depositBenefitAmount(ctx context.Context, caller string, value sdkmath.Uint) *types.Error {
	if err := validateCaller(caller); err != nil {
		return err
	}
	if !ledger.IsPositive(value) {
		return types.NewInvalidAmountError("value")
	}

	ctx, release, err := s.begin(ctx, caller, "deposit benefit amount")
	if err != nil {
		return err
	}
	defer release()

	prev, err := s.snapshot()
	if err != nil {
		return err
	}

	next := prev.Clone()
	if depositErr := next.Deposit(value); depositErr != nil {
		return types.NewInvalidAmountError("value")
	}

	// Value is credited only once it has been collected.
	reference := uuid.NewString()
	transferErr := s.runTransfer(ctx, caller, func(ctx context.Context) error {
		return s.transfer.Collect(ctx, caller, value, reference)
	})
	if transferErr != nil {
		return types.NewTransferFailureError(transferErr)
	}

	if err := s.persist(ctx, next); err != nil {
		return s.refund(ctx, caller, value, reference, err)
	}
	s.state.Store(next)

	metrics.RecordDepositedAmount(value)
	log.Ctx(ctx).Info().
		Str("depositor", caller).
		Str("value", value.String()).
		Str("benefit_amount", next.BenefitAmount.String()).
		Str("reference", reference).
		Msg("benefit amount deposited")

	s.emit(next, types.EventDepositBenefitAmount, &types.DepositBenefitAmountEvent{
		Depositor: caller,
		Value:     value,
	})
	return nil
}

// refund returns a collected deposit whose credit could not be saved. A failed
// refund leaves the value held by the pool operator and is logged with the
// collect reference for reconciliation.
func (s *Service) refund(ctx context.Context, depositor string, value sdkmath.Uint, reference string, saveErr *types.Error) *types.Error {
	refundReference := reference + "-refund"
	err := s.runTransfer(ctx, depositor, func(ctx context.Context) error {
		return s.transfer.Payout(ctx, depositor, value, refundReference)
	})
	if err != nil {
		metrics.RecordUnreconciledDeposit()
		log.Ctx(ctx).Error().
			Err(err).
			AnErr("save_error", saveErr).
			Str("depositor", depositor).
			Str("value", value.String()).
			Str("reference", reference).
			Msg("collected deposit is neither credited nor refunded")
		return types.NewInternalServiceError(fmt.Errorf("%w: refunding deposit %s: %w", saveErr, reference, err))
	}

	log.Ctx(ctx).Warn().
		Err(saveErr).
		Str("depositor", depositor).
		Str("reference", refundReference).
		Msg("deposit refunded after failed save")
	return saveErr
}
