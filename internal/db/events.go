package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonlabs-io/payment-service/internal/db/model"
)

func (db *Database) SaveEvent(ctx context.Context, doc *model.EventDocument) error {
	_, err := db.collection(model.EventCollection).InsertOne(ctx, doc)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     doc.ID,
						Message: "event already exists",
					}
				}
			}
		}
		return err
	}
	return nil
}

func (db *Database) FindEvents(ctx context.Context, eventType string, limit int64) ([]model.EventDocument, error) {
	filter := bson.M{}
	if eventType != "" {
		filter["type"] = eventType
	}

	// ids are time-ordered, so they break ties between events of the same millisecond
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	cursor, err := db.collection(model.EventCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []model.EventDocument{}
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}
