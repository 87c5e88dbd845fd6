package db

import (
	"context"
	"time"

	"github.com/babylonlabs-io/payment-service/internal/db/model"
	"github.com/babylonlabs-io/payment-service/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) GetLedger(ctx context.Context) (result *model.LedgerDocument, err error) {
	//nolint:errcheck
	d.run("GetLedger", func() error {
		result, err = d.db.GetLedger(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) InsertLedger(ctx context.Context, doc *model.LedgerDocument) error {
	return d.run("InsertLedger", func() error {
		return d.db.InsertLedger(ctx, doc)
	})
}

func (d *DbWithMetrics) SaveLedger(ctx context.Context, doc *model.LedgerDocument) error {
	return d.run("SaveLedger", func() error {
		return d.db.SaveLedger(ctx, doc)
	})
}

func (d *DbWithMetrics) SaveEvent(ctx context.Context, doc *model.EventDocument) error {
	return d.run("SaveEvent", func() error {
		return d.db.SaveEvent(ctx, doc)
	})
}

func (d *DbWithMetrics) FindEvents(ctx context.Context, eventType string, limit int64) (result []model.EventDocument, err error) {
	//nolint:errcheck
	d.run("FindEvents", func() error {
		result, err = d.db.FindEvents(ctx, eventType, limit)
		return err
	})
	return
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and an error if any. It returns the error from the lambda function for convenience
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
