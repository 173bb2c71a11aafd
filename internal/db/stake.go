package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakeflow-labs/stakeflow-engine/internal/db/model"
)

func (db *Database) UpsertStakeSnapshot(
	ctx context.Context, doc *model.StakeSnapshotDocument,
) error {
	filter := bson.M{"_id": doc.StakeID}
	opts := options.Replace().SetUpsert(true)

	_, err := db.collection(model.StakeSnapshotCollection).
		ReplaceOne(ctx, filter, doc, opts)
	return err
}

func (db *Database) GetStakeSnapshotsByAccount(
	ctx context.Context, address string,
) ([]*model.StakeSnapshotDocument, error) {
	filter := bson.M{"account": address}
	opts := options.Find().SetSort(bson.M{"start_time": 1})

	cursor, err := db.collection(model.StakeSnapshotCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*model.StakeSnapshotDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (db *Database) ListStakeSnapshots(
	ctx context.Context,
) ([]*model.StakeSnapshotDocument, error) {
	cursor, err := db.collection(model.StakeSnapshotCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*model.StakeSnapshotDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
