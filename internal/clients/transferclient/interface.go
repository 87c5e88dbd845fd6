package transferclient

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// TransferInterface is the value transfer primitive. Each call either fully
// succeeds or fully fails; reference is an idempotency key that stays the same
// across retries of one logical transfer. Implementations must pass ctx on to
// anything that may call back into the ledger.
//
//go:generate mockgen -destination=../../../testutil/mocks/mock_transfer_client.go -package=mocks . TransferInterface
type TransferInterface interface {
	// Payout moves amount from the pool to account.
	Payout(ctx context.Context, account string, amount sdkmath.Uint, reference string) error
	// Collect moves amount from account into the pool.
	Collect(ctx context.Context, account string, amount sdkmath.Uint, reference string) error
}
