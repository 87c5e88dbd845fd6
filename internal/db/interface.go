package db

import (
	"context"

	"github.com/babylonlabs-io/payment-service/internal/db/model"
)

//go:generate mockery --name=DbInterface --output=../../testutil/mocks --outpkg=mocks --filename=mock_db.go
type DbInterface interface {
	Ping(ctx context.Context) error
	// GetLedger returns NotFoundError if the ledger was never deployed.
	GetLedger(ctx context.Context) (*model.LedgerDocument, error)
	// InsertLedger returns DuplicateKeyError if a ledger already exists.
	InsertLedger(ctx context.Context, doc *model.LedgerDocument) error
	// SaveLedger replaces the ledger document in a single write.
	SaveLedger(ctx context.Context, doc *model.LedgerDocument) error
	SaveEvent(ctx context.Context, doc *model.EventDocument) error
	// FindEvents returns the newest events first. An empty eventType matches all events.
	FindEvents(ctx context.Context, eventType string, limit int64) ([]model.EventDocument, error)
}
