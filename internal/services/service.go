package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/payment-service/internal/clients/transferclient"
	"github.com/babylonlabs-io/payment-service/internal/config"
	"github.com/babylonlabs-io/payment-service/internal/db"
	"github.com/babylonlabs-io/payment-service/internal/ledger"
	"github.com/babylonlabs-io/payment-service/internal/observability/metrics"
	"github.com/babylonlabs-io/payment-service/internal/queue"
	"github.com/babylonlabs-io/payment-service/internal/types"
)

// Service owns the ledger of one payment instance. Mutating operations are
// serialized by mu; readers load the last committed snapshot from state.
type Service struct {
	cfg       *config.Config
	db        db.DbInterface
	transfer  transferclient.TransferInterface
	publisher queue.EventPublisher
	now       func() time.Time

	mu    sync.Mutex
	state atomic.Pointer[ledger.State]
	// pending holds events of the operation holding mu, dispatched once it
	// releases the lock.
	pending []*types.Event
	// payee is the counterparty of the transfer currently in flight.
	payee atomic.Pointer[string]
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	transfer transferclient.TransferInterface,
	publisher queue.EventPublisher,
) *Service {
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}

	return &Service{
		cfg:       cfg,
		db:        db,
		transfer:  transfer,
		publisher: publisher,
		now:       time.Now,
	}
}

var errNotLoaded = errors.New("ledger is not loaded")

// snapshot returns the last committed state. Callers must not mutate it.
func (s *Service) snapshot() (*ledger.State, *types.Error) {
	state := s.state.Load()
	if state == nil {
		return nil, types.NewInternalServiceError(errNotLoaded)
	}
	return state, nil
}

// Snapshot returns a copy of the last committed state.
func (s *Service) Snapshot() (*ledger.State, *types.Error) {
	state, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return state.Clone(), nil
}

func (s *Service) track(ctx context.Context, operation string, start time.Time, err *types.Error) {
	errorCode := ""
	if err != nil {
		errorCode = err.ErrorCode.String()
	}
	metrics.RecordLedgerOperation(time.Since(start), operation, errorCode)

	if err != nil {
		log.Ctx(ctx).Warn().
			Str("operation", operation).
			Str("error_code", errorCode).
			Err(err).
			Msg("ledger operation failed")
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
