package model

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/babylonlabs-io/payment-service/internal/ledger"
)

const (
	LedgerCollection = "ledger"
	// LedgerDocumentID is the _id of the only ledger document of a deployment.
	LedgerDocumentID = "singleton"
)

// LedgerDocument holds the whole ledger in one document so that every commit
// is a single atomic write. Amounts are decimal strings.
type LedgerDocument struct {
	ID            string                         `bson:"_id"`
	InstanceID    string                         `bson:"instance_id"`
	Name          string                         `bson:"name"`
	Administrator string                         `bson:"administrator"`
	TotalShares   string                         `bson:"total_shares"`
	BenefitAmount string                         `bson:"benefit_amount"`
	StreamingTime int64                          `bson:"streaming_time"`
	Beneficiaries map[string]BeneficiaryDocument `bson:"beneficiaries"`
	UpdatedAt     int64                          `bson:"updated_at"`
}

type BeneficiaryDocument struct {
	Shares           string `bson:"shares"`
	LastWithdrawTime int64  `bson:"last_withdraw_time"`
}

func FromLedgerState(state *ledger.State, updatedAt int64) *LedgerDocument {
	beneficiaries := make(map[string]BeneficiaryDocument, len(state.Beneficiaries))
	for addr, b := range state.Beneficiaries {
		beneficiaries[addr] = BeneficiaryDocument{
			Shares:           b.Shares.String(),
			LastWithdrawTime: b.LastWithdrawTime,
		}
	}

	return &LedgerDocument{
		ID:            LedgerDocumentID,
		InstanceID:    state.InstanceID,
		Name:          state.Name,
		Administrator: state.Administrator,
		TotalShares:   state.TotalShares.String(),
		BenefitAmount: state.BenefitAmount.String(),
		StreamingTime: int64(state.StreamingTime),
		Beneficiaries: beneficiaries,
		UpdatedAt:     updatedAt,
	}
}

func (d *LedgerDocument) ToLedgerState() (*ledger.State, error) {
	state := ledger.NewState(d.InstanceID, d.Name, d.Administrator)

	var err error
	state.TotalShares, err = sdkmath.ParseUint(d.TotalShares)
	if err != nil {
		return nil, fmt.Errorf("invalid total shares %q: %w", d.TotalShares, err)
	}
	state.BenefitAmount, err = sdkmath.ParseUint(d.BenefitAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid benefit amount %q: %w", d.BenefitAmount, err)
	}
	if d.StreamingTime < 0 {
		return nil, fmt.Errorf("invalid streaming time %d", d.StreamingTime)
	}
	state.StreamingTime = uint64(d.StreamingTime)

	for addr, b := range d.Beneficiaries {
		shares, err := sdkmath.ParseUint(b.Shares)
		if err != nil {
			return nil, fmt.Errorf("invalid shares %q of %s: %w", b.Shares, addr, err)
		}
		state.Beneficiaries[addr] = ledger.Beneficiary{
			Shares:           shares,
			LastWithdrawTime: b.LastWithdrawTime,
		}
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}

	return state, nil
}
