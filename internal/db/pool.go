package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakeflow-labs/stakeflow-engine/internal/db/model"
)

func (db *Database) UpsertPoolSnapshot(
	ctx context.Context, doc *model.PoolSnapshotDocument,
) error {
	filter := bson.M{"_id": doc.ID}
	opts := options.Replace().SetUpsert(true)

	_, err := db.collection(model.PoolSnapshotCollection).
		ReplaceOne(ctx, filter, doc, opts)
	return err
}

func (db *Database) GetPoolSnapshot(
	ctx context.Context,
) (*model.PoolSnapshotDocument, error) {
	filter := bson.M{"_id": model.PoolSnapshotID}

	res := db.collection(model.PoolSnapshotCollection).FindOne(ctx, filter)

	var doc model.PoolSnapshotDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     model.PoolSnapshotID,
				Message: "pool snapshot not found",
			}
		}
		return nil, err
	}
	return &doc, nil
}
