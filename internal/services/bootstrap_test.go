package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/payment-service/internal/db"
	"github.com/babylonlabs-io/payment-service/internal/db/model"
	"github.com/babylonlabs-io/payment-service/internal/ledger"
	"github.com/babylonlabs-io/payment-service/testutil/mocks"
)

func newBootstrapService(t *testing.T) (*Service, *mocks.DbInterface) {
	dbMock := mocks.NewDbInterface(t)
	cfg := testConfig()
	cfg.Ledger.Name = "Team payments"
	return NewService(cfg, dbMock, nil, nil), dbMock
}

func TestBootstrap(t *testing.T) {
	t.Run("deploys on first start", func(t *testing.T) {
		svc, dbMock := newBootstrapService(t)

		dbMock.On("GetLedger", mock.Anything).Return(nil, &db.NotFoundError{Message: "not found"}).Once()
		var inserted *model.LedgerDocument
		dbMock.On("InsertLedger", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				inserted = args.Get(1).(*model.LedgerDocument)
			}).
			Return(nil).Once()

		require.NoError(t, svc.Bootstrap(t.Context()))

		require.NotNil(t, inserted)
		assert.Equal(t, admin, inserted.Administrator)
		assert.Equal(t, "Team payments", inserted.Name)
		assert.NotEmpty(t, inserted.InstanceID)
		assert.Equal(t, "0", inserted.TotalShares)

		cfg, err := svc.GetConfig(t.Context())
		require.Nil(t, err)
		assert.Equal(t, inserted.InstanceID, cfg.InstanceID)
	})

	t.Run("loads the persisted ledger", func(t *testing.T) {
		svc, dbMock := newBootstrapService(t)

		state := ledger.NewState("existing", "", admin)
		state.StreamingTime = thirtyDays
		dbMock.On("GetLedger", mock.Anything).Return(model.FromLedgerState(state, 0), nil).Once()

		require.NoError(t, svc.Bootstrap(t.Context()))

		cfg, err := svc.GetConfig(t.Context())
		require.Nil(t, err)
		assert.Equal(t, "existing", cfg.InstanceID)
		assert.Equal(t, uint64(thirtyDays), cfg.StreamingTime)
	})

	t.Run("administrator mismatch", func(t *testing.T) {
		svc, dbMock := newBootstrapService(t)

		state := ledger.NewState("existing", "", "someone-else")
		dbMock.On("GetLedger", mock.Anything).Return(model.FromLedgerState(state, 0), nil).Once()

		err := svc.Bootstrap(t.Context())
		require.ErrorIs(t, err, ErrAdministratorMismatch)
		assert.False(t, svc.IsAdministrator("someone-else"))
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, dbMock := newBootstrapService(t)

		dbMock.On("GetLedger", mock.Anything).Return(nil, errors.New("connection refused")).Once()

		err := svc.Bootstrap(t.Context())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestDeploy_AlreadyDeployed(t *testing.T) {
	svc, dbMock := newBootstrapService(t)

	existing := ledger.NewState("existing", "", admin)
	dbMock.On("InsertLedger", mock.Anything, mock.Anything).
		Return(&db.DuplicateKeyError{Message: "duplicate"}).Once()
	dbMock.On("GetLedger", mock.Anything).Return(model.FromLedgerState(existing, 0), nil).Once()

	state, err := svc.Deploy(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "existing", state.InstanceID)
}
