package transferclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/payment-service/internal/clients/client"
	"github.com/babylonlabs-io/payment-service/internal/config"
)

const (
	transfersPath = "/v1/transfers"

	DirectionPayout  = "payout"
	DirectionCollect = "collect"

	statusCompleted = "completed"
)

type transferRequest struct {
	Direction string       `json:"direction"`
	Account   string       `json:"account"`
	Amount    sdkmath.Uint `json:"amount"`
	Reference string       `json:"reference"`
}

type transferResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type Client struct {
	httpClient *http.Client
	cfg        *config.TransferConfig
}

func NewClient(cfg *config.TransferConfig) *Client {
	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
	}
}

func (c *Client) GetBaseURL() string {
	return strings.TrimSuffix(c.cfg.URL, "/")
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *Client) Payout(ctx context.Context, account string, amount sdkmath.Uint, reference string) error {
	return c.transfer(ctx, DirectionPayout, account, amount, reference)
}

func (c *Client) Collect(ctx context.Context, account string, amount sdkmath.Uint, reference string) error {
	return c.transfer(ctx, DirectionCollect, account, amount, reference)
}

func (c *Client) transfer(
	ctx context.Context, direction, account string, amount sdkmath.Uint, reference string,
) error {
	if reference == "" {
		return fmt.Errorf("transfer reference is required")
	}

	request := &transferRequest{
		Direction: direction,
		Account:   account,
		Amount:    amount,
		Reference: reference,
	}

	headers := map[string]string{
		"Idempotency-Key": reference,
	}
	if c.cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.cfg.APIKey
	}

	opts := &client.HttpClientOptions{
		Path:         transfersPath,
		TemplatePath: transfersPath,
		Headers:      headers,
	}

	call := func() (*transferResponse, error) {
		resp, err := client.SendRequest[transferRequest, transferResponse](ctx, c, http.MethodPost, opts, request)
		if err != nil {
			return nil, err
		}
		if resp.Status != "" && resp.Status != statusCompleted {
			return nil, retry.Unrecoverable(
				fmt.Errorf("transfer %s finished with status %q", resp.ID, resp.Status),
			)
		}
		return resp, nil
	}

	resp, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(c.cfg.MaxRetryTimes),
		retry.Delay(c.cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", c.cfg.MaxRetryTimes).
				Str("direction", direction).
				Str("reference", reference).
				Err(err).
				Msg("transfer request failed, retrying")
		}),
	)
	if err != nil {
		return fmt.Errorf("%s of %s to %s failed: %w", direction, amount, account, err)
	}

	log.Ctx(ctx).Debug().
		Str("direction", direction).
		Str("account", account).
		Str("amount", amount.String()).
		Str("transfer_id", resp.ID).
		Msg("transfer completed")

	return nil
}
