package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/payment-service/internal/ledger"
	"github.com/babylonlabs-io/payment-service/internal/types"
)

func TestSetStreamingTime(t *testing.T) {
	env := newTestEnv(t)
	env.expectWrites()

	require.Nil(t, env.svc.SetStreamingTime(t.Context(), admin, thirtyDays))

	cfg, err := env.svc.GetConfig(t.Context())
	require.Nil(t, err)
	assert.Equal(t, uint64(thirtyDays), cfg.StreamingTime)
	assert.Equal(t, ledger.DefaultName, cfg.Name)
	assert.Equal(t, admin, cfg.Administrator)
	assert.Equal(t, "instance", cfg.InstanceID)

	events := env.rec.eventsOf(types.EventSetStreamingTime)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(thirtyDays), events[0].Payload.(*types.SetStreamingTimeEvent).StreamingTime)

	t.Run("not administrator", func(t *testing.T) {
		err := env.svc.SetStreamingTime(t.Context(), userA, 1)
		require.NotNil(t, err)
		assert.Equal(t, types.Unauthorized, err.ErrorCode)
	})

	t.Run("zero", func(t *testing.T) {
		err := env.svc.SetStreamingTime(t.Context(), admin, 0)
		require.NotNil(t, err)
		assert.Equal(t, types.InvalidAmount, err.ErrorCode)
	})

	t.Run("longer than a stored timestamp can hold", func(t *testing.T) {
		err := env.svc.SetStreamingTime(t.Context(), admin, math.MaxInt64+1)
		require.NotNil(t, err)
		assert.Equal(t, types.InvalidAmount, err.ErrorCode)
		assert.Equal(t, int64(thirtyDays), env.rec.lastLedger().StreamingTime)
	})

	cfg, err = env.svc.GetConfig(t.Context())
	require.Nil(t, err)
	assert.Equal(t, uint64(thirtyDays), cfg.StreamingTime)
}
