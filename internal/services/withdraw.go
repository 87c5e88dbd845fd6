package services

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/payment-service/internal/observability/metrics"
	"github.com/babylonlabs-io/payment-service/internal/types"
)

// WithdrawResult mirrors the Withdraw event of a committed withdrawal.
type WithdrawResult struct {
	User                string       `json:"user"`
	TotalAmount         sdkmath.Uint `json:"totalAmount"`
	PossibleAmount      sdkmath.Uint `json:"possibleAmount"`
	CurrentWithdrawTime int64        `json:"currentWithdrawTime"`
	LastWithdrawTime    int64        `json:"lastWithdrawTime"`
}

// WithdrawPreview is what Withdraw would pay out if called now.
type WithdrawPreview struct {
	User           string       `json:"user"`
	TotalAmount    sdkmath.Uint `json:"totalAmount"`
	PossibleAmount sdkmath.Uint `json:"possibleAmount"`
	Elapsed        uint64       `json:"elapsed"`
	Now            int64        `json:"now"`
}

// Withdraw pays out the vested part of the caller's entitlement and restarts
// its vesting window.
func (s *Service) Withdraw(ctx context.Context, caller string) (*WithdrawResult, *types.Error) {
	start := time.Now()
	result, err := s.withdraw(ctx, caller)
	s.track(ctx, "withdraw", start, err)
	return result, err
}

func (s *Service) withdraw(ctx context.Context, caller string) (*WithdrawResult, *types.Error) {
	if err := validateCaller(caller); err != nil {
		return nil, err
	}

	ctx, release, err := s.begin(ctx, caller, "withdraw")
	if err != nil {
		return nil, err
	}
	defer release()

	prev, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	now := s.now().Unix()
	lastWithdrawTime := prev.ShareData(caller).LastWithdrawTime
	quote := prev.Quote(caller, now)

	// The new lastWithdrawTime is stored before any value leaves the pool.
	next := prev.Clone()
	currentWithdrawTime := next.MarkWithdrawn(caller, now)
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}

	reference := uuid.NewString()
	if !quote.PossibleAmount.IsZero() {
		transferErr := s.runTransfer(ctx, caller, func(ctx context.Context) error {
			return s.transfer.Payout(ctx, caller, quote.PossibleAmount, reference)
		})
		if transferErr != nil {
			return nil, s.compensate(ctx, prev, transferErr)
		}
	}
	s.state.Store(next)

	metrics.RecordWithdrawnAmount(quote.PossibleAmount)
	log.Ctx(ctx).Info().
		Str("user", caller).
		Str("total_amount", quote.TotalAmount.String()).
		Str("possible_amount", quote.PossibleAmount.String()).
		Uint64("elapsed", quote.Elapsed).
		Str("reference", reference).
		Msg("withdrawal completed")

	result := &WithdrawResult{
		User:                caller,
		TotalAmount:         quote.TotalAmount,
		PossibleAmount:      quote.PossibleAmount,
		CurrentWithdrawTime: currentWithdrawTime,
		LastWithdrawTime:    lastWithdrawTime,
	}
	s.emit(next, types.EventWithdraw, &types.WithdrawEvent{
		User:                result.User,
		TotalAmount:         result.TotalAmount,
		PossibleAmount:      result.PossibleAmount,
		CurrentWithdrawTime: result.CurrentWithdrawTime,
		LastWithdrawTime:    result.LastWithdrawTime,
	})

	return result, nil
}

// PreviewWithdraw computes the amounts Withdraw would yield for beneficiary
// against the committed snapshot, without changing anything.
func (s *Service) PreviewWithdraw(ctx context.Context, beneficiary string) (*WithdrawPreview, *types.Error) {
	state, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	now := s.now().Unix()
	quote := state.Quote(beneficiary, now)

	return &WithdrawPreview{
		User:           beneficiary,
		TotalAmount:    quote.TotalAmount,
		PossibleAmount: quote.PossibleAmount,
		Elapsed:        quote.Elapsed,
		Now:            now,
	}, nil
}
