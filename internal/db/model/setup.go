package model

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fluidstake/liquid-staking-pool/internal/config"
)

const (
	PoolStateCollection    = "pool_state"
	ValidatorsCollection   = "validators"
	LedgerEventsCollection = "ledger_events"
	PoolStatsCollection    = "pool_stats"
)

type index struct {
	Indexes bson.D
	Unique  bool
}

var collections = map[string][]index{
	PoolStateCollection: {},
	ValidatorsCollection: {
		{Indexes: bson.D{{Key: "pool_id", Value: 1}, {Key: "index", Value: 1}}, Unique: true},
	},
	LedgerEventsCollection: {
		{Indexes: bson.D{{Key: "pool_id", Value: 1}, {Key: "sequence", Value: 1}}, Unique: true},
		{Indexes: bson.D{{Key: "type", Value: 1}, {Key: "created_at", Value: -1}}},
	},
	PoolStatsCollection: {},
}

// Setup creates the collections and indexes the service relies on. It is
// safe to run against an already migrated database.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to disconnect setup mongo client")
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	database := client.Database(cfg.DbName)
	existing, err := database.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}

	for name, indexes := range collections {
		if !present[name] {
			if err := database.CreateCollection(ctx, name); err != nil {
				return fmt.Errorf("failed to create collection %s: %w", name, err)
			}
		}

		for _, idx := range indexes {
			indexModel := mongo.IndexModel{
				Keys:    idx.Indexes,
				Options: options.Index().SetUnique(idx.Unique),
			}
			if _, err := database.Collection(name).Indexes().CreateOne(ctx, indexModel); err != nil {
				return fmt.Errorf("failed to create index on %s: %w", name, err)
			}
		}
	}

	log.Ctx(ctx).Info().Str("db", cfg.DbName).Msg("collections and indexes are ready")
	return nil
}
