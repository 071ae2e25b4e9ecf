package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fluidstake/liquid-staking-pool/internal/db/model"
)

func (db *Database) SaveLedgerEvent(ctx context.Context, event *model.LedgerEventDocument) error {
	_, err := db.collection(model.LedgerEventsCollection).InsertOne(ctx, event)
	return duplicateKey(err, event.ID, "ledger event already exists")
}

func (db *Database) GetLedgerEvents(
	ctx context.Context, poolID string, fromSequence uint64, limit int64,
) ([]*model.LedgerEventDocument, error) {
	filter := bson.M{
		"pool_id":  poolID,
		"sequence": bson.M{"$gte": fromSequence},
	}
	opts := options.Find().SetSort(bson.D{{Key: "sequence", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := db.collection(model.LedgerEventsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []*model.LedgerEventDocument{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
