package db

import (
	"context"
	"time"

	"github.com/stakeflow-labs/stakeflow-engine/internal/db/model"
	"github.com/stakeflow-labs/stakeflow-engine/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) UpsertAccountSnapshot(ctx context.Context, doc *model.AccountSnapshotDocument) error {
	return d.run("UpsertAccountSnapshot", func() error {
		return d.db.UpsertAccountSnapshot(ctx, doc)
	})
}

func (d *DbWithMetrics) GetAccountSnapshot(ctx context.Context, address string) (result *model.AccountSnapshotDocument, err error) {
	//nolint:errcheck
	d.run("GetAccountSnapshot", func() error {
		result, err = d.db.GetAccountSnapshot(ctx, address)
		return err
	})

	return
}

func (d *DbWithMetrics) ListAccountSnapshots(ctx context.Context) (result []*model.AccountSnapshotDocument, err error) {
	//nolint:errcheck
	d.run("ListAccountSnapshots", func() error {
		result, err = d.db.ListAccountSnapshots(ctx)
		return err
	})

	return
}

func (d *DbWithMetrics) UpsertStakeSnapshot(ctx context.Context, doc *model.StakeSnapshotDocument) error {
	return d.run("UpsertStakeSnapshot", func() error {
		return d.db.UpsertStakeSnapshot(ctx, doc)
	})
}

func (d *DbWithMetrics) GetStakeSnapshotsByAccount(ctx context.Context, address string) (result []*model.StakeSnapshotDocument, err error) {
	//nolint:errcheck
	d.run("GetStakeSnapshotsByAccount", func() error {
		result, err = d.db.GetStakeSnapshotsByAccount(ctx, address)
		return err
	})

	return
}

func (d *DbWithMetrics) ListStakeSnapshots(ctx context.Context) (result []*model.StakeSnapshotDocument, err error) {
	//nolint:errcheck
	d.run("ListStakeSnapshots", func() error {
		result, err = d.db.ListStakeSnapshots(ctx)
		return err
	})

	return
}

func (d *DbWithMetrics) SaveRewardRecord(ctx context.Context, doc *model.RewardRecordDocument) error {
	return d.run("SaveRewardRecord", func() error {
		return d.db.SaveRewardRecord(ctx, doc)
	})
}

func (d *DbWithMetrics) SaveBurnRecord(ctx context.Context, doc *model.BurnRecordDocument) error {
	return d.run("SaveBurnRecord", func() error {
		return d.db.SaveBurnRecord(ctx, doc)
	})
}

func (d *DbWithMetrics) GetLatestBurnRecord(ctx context.Context) (result *model.BurnRecordDocument, err error) {
	//nolint:errcheck
	d.run("GetLatestBurnRecord", func() error {
		result, err = d.db.GetLatestBurnRecord(ctx)
		return err
	})

	return
}

func (d *DbWithMetrics) UpsertPoolSnapshot(ctx context.Context, doc *model.PoolSnapshotDocument) error {
	return d.run("UpsertPoolSnapshot", func() error {
		return d.db.UpsertPoolSnapshot(ctx, doc)
	})
}

func (d *DbWithMetrics) GetPoolSnapshot(ctx context.Context) (result *model.PoolSnapshotDocument, err error) {
	//nolint:errcheck
	d.run("GetPoolSnapshot", func() error {
		result, err = d.db.GetPoolSnapshot(ctx)
		return err
	})

	return
}

func (d *DbWithMetrics) run(method string, f func() error) error {
	start := time.Now()
	err := f()
	metrics.RecordDbLatency(time.Since(start), method, err != nil)
	return err
}

var _ DbInterface = (*DbWithMetrics)(nil)
