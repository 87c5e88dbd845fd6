package services

import (
	"context"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/payment-service/internal/ledger"
	"github.com/babylonlabs-io/payment-service/internal/types"
)

// ShareData is the public view of a beneficiary position.
type ShareData struct {
	Beneficiary      string       `json:"beneficiary"`
	Shares           sdkmath.Uint `json:"shares"`
	LastWithdrawTime int64        `json:"lastWithdrawTime"`
}

// AddNewShares allocates amount shares to beneficiary. Only the administrator may call it.
func (s *Service) AddNewShares(ctx context.Context, caller, beneficiary string, amount sdkmath.Uint) *types.Error {
	start := time.Now()
	err := s.addNewShares(ctx, caller, beneficiary, amount)
	s.track(ctx, "add_new_shares", start, err)
	return err
}

func (s *Service) addNewShares(ctx context.Context, caller, beneficiary string, amount sdkmath.Uint) *types.Error {
	if err := validateCaller(caller); err != nil {
		return err
	}
	if err := validateIdentity(beneficiary); err != nil {
		return types.NewValidationFailedError(fmt.Errorf("beneficiary: %w", err))
	}

	ctx, release, err := s.begin(ctx, caller, "add new shares")
	if err != nil {
		return err
	}
	defer release()

	prev, err := s.snapshot()
	if err != nil {
		return err
	}
	if err := requireAdministrator(prev, caller, "add new shares"); err != nil {
		return err
	}
	next := prev.Clone()
	if addErr := next.AddShares(beneficiary, amount, s.now().Unix()); addErr != nil {
		return types.NewInvalidAmountError("amount")
	}

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.state.Store(next)

	log.Ctx(ctx).Info().
		Str("beneficiary", beneficiary).
		Str("amount", amount.String()).
		Str("total_shares", next.TotalShares.String()).
		Msg("shares allocated")

	s.emit(next, types.EventAddNewShares, &types.AddNewSharesEvent{
		Beneficiary: beneficiary,
		Amount:      amount,
	})
	return nil
}

// GetShareData returns the position of beneficiary. Unknown beneficiaries have
// zero shares and a zero lastWithdrawTime.
func (s *Service) GetShareData(ctx context.Context, beneficiary string) (*ShareData, *types.Error) {
	state, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return shareData(state, beneficiary), nil
}

func shareData(state *ledger.State, beneficiary string) *ShareData {
	b := state.ShareData(beneficiary)
	return &ShareData{
		Beneficiary:      beneficiary,
		Shares:           b.Shares,
		LastWithdrawTime: b.LastWithdrawTime,
	}
}
