package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonlabs-io/payment-service/internal/db/model"
)

func (db *Database) GetLedger(ctx context.Context) (*model.LedgerDocument, error) {
	filter := bson.M{"_id": model.LedgerDocumentID}
	res := db.collection(model.LedgerCollection).FindOne(ctx, filter)

	var doc model.LedgerDocument
	err := res.Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     model.LedgerDocumentID,
				Message: "ledger not found",
			}
		}
		return nil, err
	}

	return &doc, nil
}

func (db *Database) InsertLedger(ctx context.Context, doc *model.LedgerDocument) error {
	doc.ID = model.LedgerDocumentID
	_, err := db.collection(model.LedgerCollection).InsertOne(ctx, doc)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     model.LedgerDocumentID,
						Message: "ledger already exists",
					}
				}
			}
		}
		return err
	}
	return nil
}

func (db *Database) SaveLedger(ctx context.Context, doc *model.LedgerDocument) error {
	doc.ID = model.LedgerDocumentID
	filter := bson.M{"_id": model.LedgerDocumentID}

	_, err := db.collection(model.LedgerCollection).
		ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	return err
}
