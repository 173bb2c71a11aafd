package db

import (
	"context"

	"github.com/stakeflow-labs/stakeflow-engine/internal/db/model"
)

type DbInterface interface {
	Ping(ctx context.Context) error

	UpsertAccountSnapshot(ctx context.Context, doc *model.AccountSnapshotDocument) error
	GetAccountSnapshot(ctx context.Context, address string) (*model.AccountSnapshotDocument, error)
	ListAccountSnapshots(ctx context.Context) ([]*model.AccountSnapshotDocument, error)

	UpsertStakeSnapshot(ctx context.Context, doc *model.StakeSnapshotDocument) error
	GetStakeSnapshotsByAccount(ctx context.Context, address string) ([]*model.StakeSnapshotDocument, error)
	ListStakeSnapshots(ctx context.Context) ([]*model.StakeSnapshotDocument, error)

	SaveRewardRecord(ctx context.Context, doc *model.RewardRecordDocument) error
	SaveBurnRecord(ctx context.Context, doc *model.BurnRecordDocument) error
	GetLatestBurnRecord(ctx context.Context) (*model.BurnRecordDocument, error)

	UpsertPoolSnapshot(ctx context.Context, doc *model.PoolSnapshotDocument) error
	GetPoolSnapshot(ctx context.Context) (*model.PoolSnapshotDocument, error)
}
