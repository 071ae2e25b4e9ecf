package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fluidstake/liquid-staking-pool/internal/db/model"
)

// UpsertPoolStats replaces the stats snapshot of a pool
func (db *Database) UpsertPoolStats(ctx context.Context, stats *model.PoolStatsDocument) error {
	filter := bson.M{"_id": stats.ID}
	opts := options.Replace().SetUpsert(true)

	_, err := db.collection(model.PoolStatsCollection).ReplaceOne(ctx, filter, stats, opts)
	return err
}

func (db *Database) GetPoolStats(ctx context.Context, poolID string) (*model.PoolStatsDocument, error) {
	var stats model.PoolStatsDocument
	err := db.collection(model.PoolStatsCollection).
		FindOne(ctx, bson.M{"_id": poolID}).
		Decode(&stats)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     poolID,
				Message: "pool stats not found",
			}
		}
		return nil, err
	}
	return &stats, nil
}
