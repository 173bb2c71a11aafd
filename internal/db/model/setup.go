package model

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakeflow-labs/stakeflow-engine/internal/config"
)

const (
	AccountSnapshotCollection = "account_snapshots"
	StakeSnapshotCollection   = "stake_snapshots"
	RewardRecordCollection    = "reward_records"
	BurnRecordCollection      = "burn_records"
	PoolSnapshotCollection    = "pool_snapshots"
)

var collections = map[string][]mongo.IndexModel{
	AccountSnapshotCollection: {
		{Keys: map[string]int{"referrer": 1}},
	},
	StakeSnapshotCollection: {
		{Keys: map[string]int{"account": 1}},
		{Keys: map[string]int{"state": 1}},
	},
	RewardRecordCollection: {
		{Keys: map[string]int{"account": 1, "timestamp": -1}},
	},
	BurnRecordCollection: {
		{Keys: map[string]int{"timestamp": -1}},
	},
	PoolSnapshotCollection: {},
}

// Setup creates the collections and indexes the engine journal needs.
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
		_ = client.Disconnect(ctx)
	}()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	database := client.Database(cfg.DbName)
	for name, indexes := range collections {
		if err := database.CreateCollection(ctx, name); err != nil {
			if !isCollectionExistsError(err) {
				return fmt.Errorf("failed to create collection %s: %w", name, err)
			}
		}
		if len(indexes) == 0 {
			continue
		}
		if _, err := database.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func isCollectionExistsError(err error) bool {
	cmdErr, ok := err.(mongo.CommandError)
	return ok && cmdErr.Code == 48 // NamespaceExists
}
