package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/babylonlabs-io/payment-service/internal/config"
	"github.com/babylonlabs-io/payment-service/internal/db/model"
	"github.com/babylonlabs-io/payment-service/internal/ledger"
	"github.com/babylonlabs-io/payment-service/internal/services"
	"github.com/babylonlabs-io/payment-service/testutil/mocks"
)

const (
	admin     = "admin"
	userA     = "user-a"
	userB     = "user-b"
	jwtSecret = "0123456789abcdef0123456789abcdef"
	jwtIssuer = "payment-service-test"
)

type testServer struct {
	url      string
	auth     *Authenticator
	db       *mocks.DbInterface
	transfer *mocks.MockTransferInterface
}

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           0,
		WriteTimeout:   time.Second,
		ReadTimeout:    time.Second,
		IdleTimeout:    time.Second,
		JWTSecret:      jwtSecret,
		JWTIssuer:      jwtIssuer,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		MaxEventsLimit: 100,
	}
}

// newTestServer serves a ledger funded with 1e18 split 3:7 between userA and
// userB, with a zero streaming time so entitlements are fully vested.
func newTestServer(t *testing.T, serverCfg *config.ServerConfig) *testServer {
	dbMock := mocks.NewDbInterface(t)
	transfer := mocks.NewMockTransferInterface(gomock.NewController(t))
	publisher := mocks.NewEventPublisher(t)

	state := ledger.NewState("instance", "", admin)
	require.NoError(t, state.Deposit(sdkmath.NewUintFromString("1000000000000000000")))
	require.NoError(t, state.AddShares(userA, sdkmath.NewUint(3), 0))
	require.NoError(t, state.AddShares(userB, sdkmath.NewUint(7), 0))

	dbMock.On("GetLedger", mock.Anything).Return(model.FromLedgerState(state, 0), nil).Once()
	dbMock.On("SaveLedger", mock.Anything, mock.Anything).Return(nil).Maybe()
	dbMock.On("SaveEvent", mock.Anything, mock.Anything).Return(nil).Maybe()
	publisher.On("PublishEvent", mock.Anything, mock.Anything).Return(nil).Maybe()

	cfg := &config.Config{
		Ledger: config.LedgerConfig{Administrator: admin},
		Server: *serverCfg,
	}
	svc := services.NewService(cfg, dbMock, transfer, publisher)
	require.NoError(t, svc.Bootstrap(t.Context()))

	auth := NewAuthenticator(serverCfg.JWTSecret, serverCfg.JWTIssuer)
	server := httptest.NewServer(NewRouter(serverCfg, svc, auth))
	t.Cleanup(server.Close)

	return &testServer{
		url:      server.URL,
		auth:     auth,
		db:       dbMock,
		transfer: transfer,
	}
}

func (s *testServer) token(t *testing.T, subject string) string {
	token, err := s.auth.NewToken(subject, time.Hour)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, map[string]any) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(t.Context(), method, s.url+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestHealthcheck(t *testing.T) {
	s := newTestServer(t, testServerConfig())

	s.db.On("Ping", mock.Anything).Return(nil).Once()
	status, body := s.do(t, http.MethodGet, "/healthcheck", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	s.db.On("Ping", mock.Anything).Return(errors.New("no reachable servers")).Once()
	status, body = s.do(t, http.MethodGet, "/healthcheck", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "INTERNAL_SERVICE_ERROR", body["errorCode"])
}

func TestGetConfig(t *testing.T) {
	s := newTestServer(t, testServerConfig())

	status, body := s.do(t, http.MethodGet, "/v1/config", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, ledger.DefaultName, body["name"])
	assert.Equal(t, admin, body["administrator"])
	assert.Equal(t, "1000000000000000000", body["benefitAmount"])
	assert.Equal(t, "10", body["totalShares"])
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t, testServerConfig())

	t.Run("missing token", func(t *testing.T) {
		status, body := s.do(t, http.MethodGet, "/v1/shares/me", "", "")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "UNAUTHENTICATED", body["errorCode"])
	})

	t.Run("foreign issuer", func(t *testing.T) {
		foreign := NewAuthenticator(jwtSecret, "someone-else")
		token, err := foreign.NewToken(userA, time.Hour)
		require.NoError(t, err)

		status, _ := s.do(t, http.MethodGet, "/v1/shares/me", token, "")
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("caller is the token subject", func(t *testing.T) {
		status, body := s.do(t, http.MethodGet, "/v1/shares/me", s.token(t, userA), "")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, userA, body["beneficiary"])
		assert.Equal(t, "3", body["shares"])
	})
}

func TestAddShares(t *testing.T) {
	s := newTestServer(t, testServerConfig())

	status, body := s.do(t, http.MethodPost, "/v1/shares", s.token(t, admin), `{"beneficiary":"user-c","amount":"5"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "5", body["shares"])

	status, body = s.do(t, http.MethodGet, "/v1/shares/user-c", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "5", body["shares"])

	t.Run("not administrator", func(t *testing.T) {
		status, body := s.do(t, http.MethodPost, "/v1/shares", s.token(t, userA), `{"beneficiary":"user-a","amount":"5"}`)
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "UNAUTHORIZED", body["errorCode"])
	})

	t.Run("zero amount", func(t *testing.T) {
		status, body := s.do(t, http.MethodPost, "/v1/shares", s.token(t, admin), `{"beneficiary":"user-a","amount":"0"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "INVALID_AMOUNT", body["errorCode"])
	})

	t.Run("negative amount", func(t *testing.T) {
		status, body := s.do(t, http.MethodPost, "/v1/shares", s.token(t, admin), `{"beneficiary":"user-a","amount":"-5"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "BAD_REQUEST", body["errorCode"])
	})

	t.Run("invalid address", func(t *testing.T) {
		status, _ := s.do(t, http.MethodGet, "/v1/shares/not%20valid", "", "")
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestSetStreamingTime(t *testing.T) {
	s := newTestServer(t, testServerConfig())

	status, body := s.do(t, http.MethodPut, "/v1/streaming-time", s.token(t, admin), `{"seconds":2592000}`)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2592000, body["streamingTime"])

	status, body = s.do(t, http.MethodPut, "/v1/streaming-time", s.token(t, admin), `{"seconds":0}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_AMOUNT", body["errorCode"])

	status, _ = s.do(t, http.MethodPut, "/v1/streaming-time", s.token(t, admin), `{"seconds":1,"extra":true}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDeposit(t *testing.T) {
	s := newTestServer(t, testServerConfig())

	s.transfer.EXPECT().Collect(gomock.Any(), "funder", gomock.Any(), gomock.Any()).Return(nil)
	status, body := s.do(t, http.MethodPost, "/v1/deposits", s.token(t, "funder"), `{"value":"1000000000000000000"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2000000000000000000", body["benefitAmount"])

	status, body = s.do(t, http.MethodPost, "/v1/deposits", s.token(t, "funder"), `{"value":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "BAD_REQUEST", body["errorCode"])

	status, body = s.do(t, http.MethodPost, "/v1/deposits", s.token(t, "funder"), `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_AMOUNT", body["errorCode"])
}

func TestWithdraw(t *testing.T) {
	s := newTestServer(t, testServerConfig())

	status, body := s.do(t, http.MethodGet, "/v1/withdrawals/preview", s.token(t, userB), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "700000000000000000", body["possibleAmount"])

	t.Run("transfer failure", func(t *testing.T) {
		s.transfer.EXPECT().Payout(gomock.Any(), userB, gomock.Any(), gomock.Any()).Return(errors.New("gateway down"))

		status, body := s.do(t, http.MethodPost, "/v1/withdrawals", s.token(t, userB), "")
		assert.Equal(t, http.StatusBadGateway, status)
		assert.Equal(t, "TRANSFER_FAILURE", body["errorCode"])
	})

	s.transfer.EXPECT().Payout(gomock.Any(), userB, gomock.Any(), gomock.Any()).Return(nil)
	status, body = s.do(t, http.MethodPost, "/v1/withdrawals", s.token(t, userB), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, userB, body["user"])
	assert.Equal(t, "700000000000000000", body["totalAmount"])
	assert.Equal(t, "700000000000000000", body["possibleAmount"])
	assert.EqualValues(t, 0, body["lastWithdrawTime"])
}

func TestListEvents(t *testing.T) {
	s := newTestServer(t, testServerConfig())

	s.db.On("FindEvents", mock.Anything, "Withdraw", int64(10)).Return([]model.EventDocument{
		{ID: "1", Type: "Withdraw", InstanceID: "instance", Payload: `{"user":"user-a"}`, CreatedAt: 1000},
	}, nil).Once()

	status, body := s.do(t, http.MethodGet, "/v1/events?type=Withdraw&limit=10", "", "")
	require.Equal(t, http.StatusOK, status)
	events := body["events"].([]any)
	require.Len(t, events, 1)
	assert.Equal(t, "user-a", events[0].(map[string]any)["payload"].(map[string]any)["user"])

	status, _ = s.do(t, http.MethodGet, "/v1/events?limit=abc", "", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.do(t, http.MethodGet, "/v1/events?type=Unknown", "", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body["errorCode"])
}

func TestRateLimit(t *testing.T) {
	cfg := testServerConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	s := newTestServer(t, cfg)

	status, _ := s.do(t, http.MethodGet, "/v1/config", "", "")
	assert.Equal(t, http.StatusOK, status)

	status, body := s.do(t, http.MethodGet, "/v1/config", "", "")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "TOO_MANY_REQUESTS", body["errorCode"])

	// authenticated callers have their own budget
	status, _ = s.do(t, http.MethodGet, "/v1/shares/me", s.token(t, userA), "")
	assert.Equal(t, http.StatusOK, status)
}

func TestTraceIDHeader(t *testing.T) {
	s := newTestServer(t, testServerConfig())

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, s.url+"/v1/config", nil)
	require.NoError(t, err)
	req.Header.Set(traceIDHeader, "5f0c5b0e-64b6-4c39-9f4b-1f3f1d9f8a2b")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "5f0c5b0e-64b6-4c39-9f4b-1f3f1d9f8a2b", resp.Header.Get(traceIDHeader))
}
