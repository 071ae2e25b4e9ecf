package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fluidstake/liquid-staking-pool/internal/db/model"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
)

func (db *Database) GetPoolState(ctx context.Context, poolID string) (*pool.State, error) {
	var doc model.PoolDocument
	err := db.collection(model.PoolStateCollection).
		FindOne(ctx, bson.M{"_id": poolID}).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     poolID,
				Message: "pool state not found",
			}
		}
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "index", Value: 1}})
	cursor, err := db.collection(model.ValidatorsCollection).Find(ctx, bson.M{"pool_id": poolID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var validators []*model.ValidatorDocument
	if err := cursor.All(ctx, &validators); err != nil {
		return nil, err
	}

	state := &pool.State{
		Initialized: doc.Initialized,
		Sequence:    doc.Sequence,
		Pool:        doc.ToPool(),
	}
	for _, v := range validators {
		state.Validators = append(state.Validators, v.ToRecord())
	}
	return state, nil
}

// SavePoolState writes validators first so a reader that sees the new pool
// sequence also sees every record it counts. Every write is guarded by the
// stored sequence: rewriting the same sequence is a no-op change, an older
// one fails with StaleStateError.
func (db *Database) SavePoolState(ctx context.Context, state pool.State) error {
	poolID := state.Pool.ID

	if len(state.Validators) > 0 {
		models := make([]mongo.WriteModel, 0, len(state.Validators))
		for _, v := range state.Validators {
			doc := model.NewValidatorDocument(poolID, v)
			doc.Sequence = state.Sequence
			models = append(models, mongo.NewReplaceOneModel().
				SetFilter(sequenceGuard(doc.ID, state.Sequence)).
				SetReplacement(doc).
				SetUpsert(true))
		}
		opts := options.BulkWrite().SetOrdered(false)
		_, err := db.collection(model.ValidatorsCollection).BulkWrite(ctx, models, opts)
		if err != nil {
			return staleOr(err, poolID, state.Sequence)
		}
	}

	doc := model.NewPoolDocument(state, time.Now().Unix())
	_, err := db.collection(model.PoolStateCollection).
		ReplaceOne(ctx, sequenceGuard(poolID, state.Sequence), doc, options.Replace().SetUpsert(true))
	if err != nil {
		return staleOr(err, poolID, state.Sequence)
	}
	return nil
}

func sequenceGuard(id string, sequence uint64) bson.M {
	return bson.M{
		"_id":      id,
		"sequence": bson.M{"$lte": sequence},
	}
}

// staleOr maps the duplicate key error of a guarded upsert, which collides
// with the existing _id when the stored sequence is higher than ours.
func staleOr(err error, poolID string, sequence uint64) error {
	if mongo.IsDuplicateKeyError(err) {
		return &StaleStateError{PoolID: poolID, Sequence: sequence}
	}
	return err
}
