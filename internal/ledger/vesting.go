package ledger

import (
	sdkmath "cosmossdk.io/math"
)

// Quote is the result of pricing a withdrawal at a given instant.
type Quote struct {
	TotalAmount    sdkmath.Uint
	PossibleAmount sdkmath.Uint
	Elapsed        uint64
}

// Entitlement is floor(benefitAmount * shares / totalShares), or zero when
// no shares were allocated yet.
func (s *State) Entitlement(addr string) sdkmath.Uint {
	if s.TotalShares.IsZero() {
		return sdkmath.ZeroUint()
	}
	shares := s.ShareData(addr).Shares
	return s.BenefitAmount.Mul(shares).Quo(s.TotalShares)
}

// Quote prices a withdrawal of addr at now against the current pool.
func (s *State) Quote(addr string, now int64) Quote {
	total := s.Entitlement(addr)
	elapsed := Elapsed(now, s.ShareData(addr).LastWithdrawTime)

	return Quote{
		TotalAmount:    total,
		PossibleAmount: VestedAmount(total, elapsed, s.StreamingTime),
		Elapsed:        elapsed,
	}
}

// Elapsed returns now - last in seconds, zero if the clock went backwards.
func Elapsed(now, last int64) uint64 {
	if now <= last {
		return 0
	}
	return uint64(now - last)
}

// VestedAmount is floor(total * min(elapsed, streamingTime) / streamingTime).
// A zero streaming time means the entitlement is fully vested.
func VestedAmount(total sdkmath.Uint, elapsed, streamingTime uint64) sdkmath.Uint {
	if streamingTime == 0 || elapsed >= streamingTime {
		return total
	}
	return total.MulUint64(elapsed).QuoUint64(streamingTime)
}
