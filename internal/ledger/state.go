package ledger

import (
	"errors"
	"fmt"
	"math"
	"sort"

	sdkmath "cosmossdk.io/math"
)

const DefaultName = "ETH & ERC20 Payments"

var (
	ErrZeroAmount              = errors.New("amount must be greater than zero")
	ErrStreamingTimeOutOfRange = fmt.Errorf("streaming time must not exceed %d seconds", uint64(math.MaxInt64))
)

// IsPositive reports whether amount is set and greater than zero.
func IsPositive(amount sdkmath.Uint) bool {
	return amount != (sdkmath.Uint{}) && !amount.IsZero()
}

// Beneficiary is the position of a single identity holding a claim on the pool.
type Beneficiary struct {
	Shares sdkmath.Uint
	// LastWithdrawTime is a unix timestamp in seconds.
	LastWithdrawTime int64
}

// State is the whole ledger of one payment instance. It is not safe for
// concurrent mutation; callers stage changes on a Clone and publish the copy.
type State struct {
	InstanceID    string
	Name          string
	Administrator string

	TotalShares   sdkmath.Uint
	BenefitAmount sdkmath.Uint
	// StreamingTime is the vesting window length in seconds.
	StreamingTime uint64

	Beneficiaries map[string]Beneficiary
}

func NewState(instanceID, name, administrator string) *State {
	if name == "" {
		name = DefaultName
	}

	return &State{
		InstanceID:    instanceID,
		Name:          name,
		Administrator: administrator,
		TotalShares:   sdkmath.ZeroUint(),
		BenefitAmount: sdkmath.ZeroUint(),
		Beneficiaries: make(map[string]Beneficiary),
	}
}

// Clone returns a deep copy. math.Uint values are immutable so copying the
// struct values is enough.
func (s *State) Clone() *State {
	clone := *s
	clone.Beneficiaries = make(map[string]Beneficiary, len(s.Beneficiaries))
	for addr, b := range s.Beneficiaries {
		clone.Beneficiaries[addr] = b
	}
	return &clone
}

// IsAdministrator is a plain equality check against the configured identity.
func (s *State) IsAdministrator(caller string) bool {
	return caller != "" && caller == s.Administrator
}

// ShareData returns the beneficiary position. Unknown identities have zero shares.
func (s *State) ShareData(addr string) Beneficiary {
	b, ok := s.Beneficiaries[addr]
	if !ok {
		return Beneficiary{Shares: sdkmath.ZeroUint()}
	}
	return b
}

// AddShares allocates amount shares to addr. A new record starts vesting at now.
func (s *State) AddShares(addr string, amount sdkmath.Uint, now int64) error {
	if !IsPositive(amount) {
		return ErrZeroAmount
	}

	b, ok := s.Beneficiaries[addr]
	if !ok {
		b = Beneficiary{Shares: sdkmath.ZeroUint(), LastWithdrawTime: now}
	}
	b.Shares = b.Shares.Add(amount)
	s.Beneficiaries[addr] = b
	s.TotalShares = s.TotalShares.Add(amount)

	return nil
}

func (s *State) Deposit(value sdkmath.Uint) error {
	if !IsPositive(value) {
		return ErrZeroAmount
	}
	s.BenefitAmount = s.BenefitAmount.Add(value)
	return nil
}

func (s *State) SetStreamingTime(seconds uint64) error {
	if seconds == 0 {
		return ErrZeroAmount
	}
	// Timestamps and the stored window are signed seconds.
	if seconds > math.MaxInt64 {
		return ErrStreamingTimeOutOfRange
	}
	s.StreamingTime = seconds
	return nil
}

// MarkWithdrawn moves the vesting start of addr to now and returns the
// timestamp actually recorded. lastWithdrawTime never goes backwards.
func (s *State) MarkWithdrawn(addr string, now int64) int64 {
	b := s.ShareData(addr)
	if now > b.LastWithdrawTime {
		b.LastWithdrawTime = now
	}
	s.Beneficiaries[addr] = b
	return b.LastWithdrawTime
}

// Validate checks that totalShares equals the sum of all beneficiary shares.
func (s *State) Validate() error {
	sum := sdkmath.ZeroUint()
	for _, b := range s.Beneficiaries {
		sum = sum.Add(b.Shares)
	}
	if !sum.Equal(s.TotalShares) {
		return fmt.Errorf("total shares %s does not match sum of beneficiary shares %s", s.TotalShares, sum)
	}
	return nil
}

// Addresses returns beneficiary identities in lexical order.
func (s *State) Addresses() []string {
	addrs := make([]string, 0, len(s.Beneficiaries))
	for addr := range s.Beneficiaries {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	return addrs
}
