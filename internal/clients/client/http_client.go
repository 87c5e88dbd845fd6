package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/babylonlabs-io/payment-service/internal/observability/metrics"
	"github.com/babylonlabs-io/payment-service/internal/types"
)

const maxErrorBodyBytes = 1024

type BaseClient interface {
	GetBaseURL() string
	GetDefaultRequestTimeout() time.Duration
	GetHttpClient() *http.Client
}

type HttpClientOptions struct {
	Timeout      time.Duration
	Path         string
	TemplatePath string // Metrics purpose
	Headers      map[string]string
}

func sendRequest[I any, R any](
	ctx context.Context, client BaseClient, method string, opts *HttpClientOptions, input *I,
) (*R, *types.Error) {
	timeout := client.GetDefaultRequestTimeout()
	// If timeout is set, use it instead of the default
	if opts.Timeout != 0 {
		timeout = opts.Timeout
	}
	// Set a timeout for the request
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	completeUrl := client.GetBaseURL() + opts.Path
	var req *http.Request
	var requestError error
	if input != nil && method != http.MethodGet {
		body, err := json.Marshal(input)
		if err != nil {
			return nil, types.NewErrorWithMsg(
				http.StatusInternalServerError,
				types.InternalServiceError,
				"failed to marshal request body",
			)
		}
		req, requestError = http.NewRequestWithContext(ctx, method, completeUrl, bytes.NewBuffer(body))
	} else {
		req, requestError = http.NewRequestWithContext(ctx, method, completeUrl, nil)
	}
	if requestError != nil {
		return nil, types.NewErrorWithMsg(
			http.StatusInternalServerError, types.InternalServiceError, requestError.Error(),
		)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.GetHttpClient().Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded || err.Error() == "context canceled" {
			return nil, types.NewErrorWithMsg(
				http.StatusRequestTimeout,
				types.InternalServiceError,
				fmt.Sprintf("request timeout after %d ms at %s", timeout.Milliseconds(), completeUrl),
			)
		}
		return nil, types.NewErrorWithMsg(
			http.StatusInternalServerError,
			types.InternalServiceError,
			fmt.Sprintf("failed to send request to %s", completeUrl),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, types.NewErrorWithMsg(
			resp.StatusCode,
			types.InternalServiceError,
			fmt.Sprintf("client error when calling %s: status %d: %s", completeUrl, resp.StatusCode, body),
		)
	}

	var output R
	if resp.StatusCode == http.StatusNoContent {
		return &output, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(&output); err != nil && err != io.EOF {
		return nil, types.NewErrorWithMsg(
			http.StatusInternalServerError,
			types.InternalServiceError,
			fmt.Sprintf("failed to decode response from %s", opts.Path),
		)
	}

	return &output, nil
}

// SendRequest sends a json request and records its duration per templated path.
func SendRequest[I any, R any](
	ctx context.Context, client BaseClient, method string, opts *HttpClientOptions, input *I,
) (*R, *types.Error) {
	timer := metrics.StartClientRequestDurationTimer(
		client.GetBaseURL(), method, opts.TemplatePath,
	)

	result, err := sendRequest[I, R](ctx, client, method, opts, input)
	if err != nil {
		timer(err.StatusCode)
	} else {
		timer(http.StatusOK)
	}

	return result, err
}
