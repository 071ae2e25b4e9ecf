package db

import (
	"context"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fluidstake/liquid-staking-pool/internal/config"
	"github.com/fluidstake/liquid-staking-pool/internal/db/model"
)

type Database struct {
	dbName string
	client *mongo.Client
}

// New connects to mongo, retrying the initial ping per cfg.
func New(ctx context.Context, cfg config.DbConfig) (*Database, error) {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().
		ApplyURI(cfg.Address).
		SetAuth(credential).
		SetRegistry(model.NewRegistry())

	attempts := cfg.MaxRetryTimes
	if attempts == 0 {
		attempts = 1
	}

	client, err := retry.DoWithData(
		func() (*mongo.Client, error) {
			client, err := mongo.Connect(ctx, clientOps)
			if err != nil {
				return nil, err
			}
			if err := client.Ping(ctx, nil); err != nil {
				_ = client.Disconnect(ctx)
				return nil, err
			}
			return client, nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(cfg.RetryInterval),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().
				Uint("attempt", n+1).
				Uint("max_attempts", attempts).
				Err(err).
				Msg("failed to connect to mongo, retrying")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	return &Database{
		dbName: cfg.DbName,
		client: client,
	}, nil
}

func (db *Database) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, nil)
}

func (db *Database) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

func (db *Database) collection(name string) *mongo.Collection {
	return db.client.Database(db.dbName).Collection(name)
}
