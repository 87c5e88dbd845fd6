package services

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/babylonlabs-io/payment-service/internal/config"
	"github.com/babylonlabs-io/payment-service/internal/db/model"
	"github.com/babylonlabs-io/payment-service/internal/ledger"
	"github.com/babylonlabs-io/payment-service/internal/types"
	"github.com/babylonlabs-io/payment-service/testutil/mocks"
)

const (
	admin      = "admin"
	userA      = "user-a"
	userB      = "user-b"
	thirtyDays = 60 * 60 * 24 * 30
	startTime  = 1_700_000_000
)

func oneEther() sdkmath.Uint {
	return sdkmath.NewUintFromString("1000000000000000000")
}

type fakeClock struct {
	now atomic.Int64
}

func (c *fakeClock) Now() time.Time {
	return time.Unix(c.now.Load(), 0)
}

func (c *fakeClock) Advance(seconds int64) {
	c.now.Add(seconds)
}

// recorder keeps everything the service wrote, in order.
type recorder struct {
	mu      sync.Mutex
	ledgers []*model.LedgerDocument
	events  []*types.Event
}

func (r *recorder) lastLedger() *model.LedgerDocument {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ledgers) == 0 {
		return nil
	}
	return r.ledgers[len(r.ledgers)-1]
}

func (r *recorder) eventsOf(eventType types.EventType) []*types.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.Event
	for _, e := range r.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

type testEnv struct {
	svc       *Service
	db        *mocks.DbInterface
	transfer  *mocks.MockTransferInterface
	publisher *mocks.EventPublisher
	clock     *fakeClock
	rec       *recorder
}

func testConfig() *config.Config {
	return &config.Config{
		Ledger: config.LedgerConfig{Administrator: admin},
		Server: config.ServerConfig{MaxEventsLimit: 100},
		Poller: config.PollerConfig{StatsPollingInterval: time.Minute},
	}
}

// newTestEnv returns a service with an empty ledger loaded. Ledger and event
// writes succeed and are recorded unless a test overrides them.
func newTestEnv(t *testing.T) *testEnv {
	ctrl := gomock.NewController(t)
	env := &testEnv{
		db:        mocks.NewDbInterface(t),
		transfer:  mocks.NewMockTransferInterface(ctrl),
		publisher: mocks.NewEventPublisher(t),
		clock:     &fakeClock{},
		rec:       &recorder{},
	}
	env.clock.now.Store(startTime)

	env.svc = NewService(testConfig(), env.db, env.transfer, env.publisher)
	env.svc.now = env.clock.Now
	env.svc.state.Store(ledger.NewState("instance", "", admin))

	return env
}

func (env *testEnv) expectWrites() {
	env.db.On("SaveLedger", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			env.rec.mu.Lock()
			defer env.rec.mu.Unlock()
			env.rec.ledgers = append(env.rec.ledgers, args.Get(1).(*model.LedgerDocument))
		}).
		Return(nil).
		Maybe()
	env.db.On("SaveEvent", mock.Anything, mock.Anything).Return(nil).Maybe()
	env.publisher.On("PublishEvent", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			env.rec.mu.Lock()
			defer env.rec.mu.Unlock()
			env.rec.events = append(env.rec.events, args.Get(1).(*types.Event))
		}).
		Return(nil).
		Maybe()
}

// fund deposits value from a funder and allocates 3 and 7 shares to userA and userB.
func (env *testEnv) fund(t *testing.T, value sdkmath.Uint) {
	env.transfer.EXPECT().Collect(gomock.Any(), "funder", uintEq(value), gomock.Any()).Return(nil)
	require.Nil(t, env.svc.DepositBenefitAmount(t.Context(), "funder", value))
	require.Nil(t, env.svc.SetStreamingTime(t.Context(), admin, thirtyDays))
	require.Nil(t, env.svc.AddNewShares(t.Context(), admin, userA, sdkmath.NewUint(3)))
	require.Nil(t, env.svc.AddNewShares(t.Context(), admin, userB, sdkmath.NewUint(7)))
}

type uintMatcher struct {
	expected sdkmath.Uint
}

func uintEq(expected sdkmath.Uint) gomock.Matcher {
	return uintMatcher{expected: expected}
}

func (m uintMatcher) Matches(x any) bool {
	actual, ok := x.(sdkmath.Uint)
	return ok && actual.Equal(m.expected)
}

func (m uintMatcher) String() string {
	return fmt.Sprintf("is equal to %s", m.expected)
}
