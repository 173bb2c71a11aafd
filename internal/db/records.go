package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakeflow-labs/stakeflow-engine/internal/db/model"
)

func (db *Database) SaveRewardRecord(
	ctx context.Context, doc *model.RewardRecordDocument,
) error {
	_, err := db.collection(model.RewardRecordCollection).InsertOne(ctx, doc)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     doc.ID,
						Message: "reward record already exists",
					}
				}
			}
		}
		return err
	}
	return nil
}

func (db *Database) SaveBurnRecord(
	ctx context.Context, doc *model.BurnRecordDocument,
) error {
	_, err := db.collection(model.BurnRecordCollection).InsertOne(ctx, doc)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     doc.ID,
						Message: "burn record already exists",
					}
				}
			}
		}
		return err
	}
	return nil
}

func (db *Database) GetLatestBurnRecord(
	ctx context.Context,
) (*model.BurnRecordDocument, error) {
	opts := options.FindOne().SetSort(bson.M{"timestamp": -1})

	res := db.collection(model.BurnRecordCollection).FindOne(ctx, bson.M{}, opts)

	var doc model.BurnRecordDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     "latest",
				Message: "no burn records yet",
			}
		}
		return nil, err
	}
	return &doc, nil
}
