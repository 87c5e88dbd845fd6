package ledger

import (
	"math"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	admin = "admin"
	userA = "user-a"
	userB = "user-b"
)

func oneEther() sdkmath.Uint {
	return sdkmath.NewUintFromString("1000000000000000000")
}

func TestNewState(t *testing.T) {
	s := NewState("instance", "", admin)
	assert.Equal(t, DefaultName, s.Name)
	assert.True(t, s.TotalShares.IsZero())
	assert.True(t, s.BenefitAmount.IsZero())
	assert.Zero(t, s.StreamingTime)
	assert.True(t, s.IsAdministrator(admin))
	assert.False(t, s.IsAdministrator(userA))
	assert.False(t, s.IsAdministrator(""))
}

func TestState_AddShares(t *testing.T) {
	s := NewState("instance", "", admin)

	require.NoError(t, s.AddShares(userA, sdkmath.NewUint(3), 100))
	require.NoError(t, s.AddShares(userB, sdkmath.NewUint(7), 200))
	require.NoError(t, s.AddShares(userA, sdkmath.NewUint(2), 300))

	a := s.ShareData(userA)
	assert.Equal(t, sdkmath.NewUint(5), a.Shares)
	// record creation time is kept, later allocations do not reset vesting
	assert.Equal(t, int64(100), a.LastWithdrawTime)
	assert.Equal(t, sdkmath.NewUint(12), s.TotalShares)
	require.NoError(t, s.Validate())

	t.Run("zero amount", func(t *testing.T) {
		err := s.AddShares(userA, sdkmath.ZeroUint(), 400)
		require.ErrorIs(t, err, ErrZeroAmount)
		assert.Equal(t, sdkmath.NewUint(12), s.TotalShares)
	})
}

func TestState_ShareDataUnknown(t *testing.T) {
	s := NewState("instance", "", admin)
	b := s.ShareData("nobody")
	assert.True(t, b.Shares.IsZero())
	assert.Zero(t, b.LastWithdrawTime)
}

func TestState_Deposit(t *testing.T) {
	s := NewState("instance", "", admin)
	require.NoError(t, s.Deposit(oneEther()))
	require.NoError(t, s.Deposit(sdkmath.NewUint(5)))
	assert.Equal(t, "1000000000000000005", s.BenefitAmount.String())

	require.ErrorIs(t, s.Deposit(sdkmath.ZeroUint()), ErrZeroAmount)
}

func TestState_SetStreamingTime(t *testing.T) {
	s := NewState("instance", "", admin)
	require.NoError(t, s.SetStreamingTime(60*60*24*30))
	assert.Equal(t, uint64(2592000), s.StreamingTime)
	require.ErrorIs(t, s.SetStreamingTime(0), ErrZeroAmount)
	assert.Equal(t, uint64(2592000), s.StreamingTime)

	require.NoError(t, s.SetStreamingTime(math.MaxInt64))
	require.ErrorIs(t, s.SetStreamingTime(math.MaxInt64+1), ErrStreamingTimeOutOfRange)
	require.ErrorIs(t, s.SetStreamingTime(math.MaxUint64), ErrStreamingTimeOutOfRange)
	assert.Equal(t, uint64(math.MaxInt64), s.StreamingTime)
}

func TestState_Clone(t *testing.T) {
	s := NewState("instance", "", admin)
	require.NoError(t, s.AddShares(userA, sdkmath.NewUint(3), 100))

	clone := s.Clone()
	require.NoError(t, clone.AddShares(userA, sdkmath.NewUint(3), 100))
	require.NoError(t, clone.AddShares(userB, sdkmath.NewUint(1), 100))
	require.NoError(t, clone.Deposit(sdkmath.NewUint(10)))

	assert.Equal(t, sdkmath.NewUint(3), s.ShareData(userA).Shares)
	assert.NotContains(t, s.Beneficiaries, userB)
	assert.True(t, s.BenefitAmount.IsZero())
	assert.Equal(t, sdkmath.NewUint(3), s.TotalShares)
}

func TestState_MarkWithdrawn(t *testing.T) {
	s := NewState("instance", "", admin)
	require.NoError(t, s.AddShares(userA, sdkmath.NewUint(3), 100))

	assert.Equal(t, int64(150), s.MarkWithdrawn(userA, 150))
	// clock skew never moves the vesting start backwards
	assert.Equal(t, int64(150), s.MarkWithdrawn(userA, 120))
	assert.Equal(t, int64(150), s.ShareData(userA).LastWithdrawTime)

	t.Run("user without shares gets a record", func(t *testing.T) {
		assert.Equal(t, int64(500), s.MarkWithdrawn(userB, 500))
		b := s.ShareData(userB)
		assert.True(t, b.Shares.IsZero())
		assert.Equal(t, int64(500), b.LastWithdrawTime)
		require.NoError(t, s.Validate())
	})
}

func TestState_Validate(t *testing.T) {
	s := NewState("instance", "", admin)
	require.NoError(t, s.AddShares(userA, sdkmath.NewUint(3), 100))
	s.TotalShares = sdkmath.NewUint(4)
	require.Error(t, s.Validate())
}

func TestState_Addresses(t *testing.T) {
	s := NewState("instance", "", admin)
	require.NoError(t, s.AddShares(userB, sdkmath.NewUint(1), 1))
	require.NoError(t, s.AddShares(userA, sdkmath.NewUint(1), 1))
	assert.Equal(t, []string{userA, userB}, s.Addresses())
}

func TestIsPositive(t *testing.T) {
	assert.False(t, IsPositive(sdkmath.Uint{}))
	assert.False(t, IsPositive(sdkmath.ZeroUint()))
	assert.True(t, IsPositive(sdkmath.OneUint()))

	s := NewState("instance", "", admin)
	assert.ErrorIs(t, s.Deposit(sdkmath.Uint{}), ErrZeroAmount)
	assert.ErrorIs(t, s.AddShares(userA, sdkmath.Uint{}, 0), ErrZeroAmount)
}
