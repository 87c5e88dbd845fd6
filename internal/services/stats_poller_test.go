package services

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/payment-service/internal/ledger"
)

func TestUpdateStats(t *testing.T) {
	env := newTestEnv(t)
	env.expectWrites()
	env.fund(t, oneEther())

	require.NoError(t, env.svc.updateStats(t.Context()))

	t.Run("invariant violation", func(t *testing.T) {
		broken := ledger.NewState("instance", "", admin)
		broken.TotalShares = sdkmath.NewUint(1)
		env.svc.state.Store(broken)

		err := env.svc.updateStats(t.Context())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invariant")
	})

	t.Run("not loaded", func(t *testing.T) {
		svc := NewService(testConfig(), nil, nil, nil)
		assert.Error(t, svc.updateStats(t.Context()))
	})
}
