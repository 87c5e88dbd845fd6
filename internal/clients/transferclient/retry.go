package transferclient

import (
	"errors"
	"net/http"

	"github.com/babylonlabs-io/payment-service/internal/types"
)

// isRetryable retries server side failures, timeouts and rate limiting.
// Other client errors mean the gateway rejected the transfer.
func isRetryable(err error) bool {
	var typed *types.Error
	if !errors.As(err, &typed) {
		return false
	}

	switch {
	case typed.StatusCode >= http.StatusInternalServerError:
		return true
	case typed.StatusCode == http.StatusTooManyRequests, typed.StatusCode == http.StatusRequestTimeout:
		return true
	default:
		return false
	}
}
