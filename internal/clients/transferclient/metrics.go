package transferclient

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/babylonlabs-io/payment-service/internal/observability/metrics"
)

type transferClientWithMetrics struct {
	transfer TransferInterface
}

func NewTransferClientWithMetrics(transfer TransferInterface) *transferClientWithMetrics {
	return &transferClientWithMetrics{transfer: transfer}
}

func (t *transferClientWithMetrics) Payout(ctx context.Context, account string, amount sdkmath.Uint, reference string) error {
	return runTransferClientMethodWithMetrics("Payout", func() error {
		return t.transfer.Payout(ctx, account, amount, reference)
	})
}

func (t *transferClientWithMetrics) Collect(ctx context.Context, account string, amount sdkmath.Uint, reference string) error {
	return runTransferClientMethodWithMetrics("Collect", func() error {
		return t.transfer.Collect(ctx, account, amount, reference)
	})
}

func runTransferClientMethodWithMetrics(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordTransferClientLatency(duration, method, err != nil)
	return err
}
