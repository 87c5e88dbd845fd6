package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/payment-service/internal/types"
)

// Config is the read-only view of the global ledger parameters.
type Config struct {
	InstanceID    string       `json:"instanceId"`
	Name          string       `json:"name"`
	Administrator string       `json:"administrator"`
	StreamingTime uint64       `json:"streamingTime"`
	BenefitAmount sdkmath.Uint `json:"benefitAmount"`
	TotalShares   sdkmath.Uint `json:"totalShares"`
}

// SetStreamingTime replaces the vesting window length. Only the administrator may call it.
func (s *Service) SetStreamingTime(ctx context.Context, caller string, seconds uint64) *types.Error {
	start := time.Now()
	err := s.setStreamingTime(ctx, caller, seconds)
	s.track(ctx, "set_streaming_time", start, err)
	return err
}

func (s *Service) setStreamingTime(ctx context.Context, caller string, seconds uint64) *types.Error {
	if err := validateCaller(caller); err != nil {
		return err
	}

	ctx, release, err := s.begin(ctx, caller, "set streaming time")
	if err != nil {
		return err
	}
	defer release()

	prev, err := s.snapshot()
	if err != nil {
		return err
	}
	if err := requireAdministrator(prev, caller, "set streaming time"); err != nil {
		return err
	}

	next := prev.Clone()
	if setErr := next.SetStreamingTime(seconds); setErr != nil {
		return types.NewError(http.StatusBadRequest, types.InvalidAmount, fmt.Errorf("streaming time: %w", setErr))
	}

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.state.Store(next)

	log.Ctx(ctx).Info().
		Uint64("previous_streaming_time", prev.StreamingTime).
		Uint64("streaming_time", seconds).
		Msg("streaming time updated")

	s.emit(next, types.EventSetStreamingTime, &types.SetStreamingTimeEvent{
		StreamingTime: seconds,
	})
	return nil
}

func (s *Service) GetConfig(ctx context.Context) (*Config, *types.Error) {
	state, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	return &Config{
		InstanceID:    state.InstanceID,
		Name:          state.Name,
		Administrator: state.Administrator,
		StreamingTime: state.StreamingTime,
		BenefitAmount: state.BenefitAmount,
		TotalShares:   state.TotalShares,
	}, nil
}
