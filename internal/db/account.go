package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakeflow-labs/stakeflow-engine/internal/db/model"
)

func (db *Database) UpsertAccountSnapshot(
	ctx context.Context, doc *model.AccountSnapshotDocument,
) error {
	filter := bson.M{"_id": doc.Address}
	opts := options.Replace().SetUpsert(true)

	_, err := db.collection(model.AccountSnapshotCollection).
		ReplaceOne(ctx, filter, doc, opts)
	return err
}

func (db *Database) GetAccountSnapshot(
	ctx context.Context, address string,
) (*model.AccountSnapshotDocument, error) {
	filter := bson.M{"_id": address}

	res := db.collection(model.AccountSnapshotCollection).FindOne(ctx, filter)

	var doc model.AccountSnapshotDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     address,
				Message: "account snapshot not found",
			}
		}
		return nil, err
	}
	return &doc, nil
}

func (db *Database) ListAccountSnapshots(
	ctx context.Context,
) ([]*model.AccountSnapshotDocument, error) {
	cursor, err := db.collection(model.AccountSnapshotCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*model.AccountSnapshotDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
