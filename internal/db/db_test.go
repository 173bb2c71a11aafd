//go:build integration

package db

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakeflow-labs/stakeflow-engine/internal/db/model"
	"github.com/stakeflow-labs/stakeflow-engine/testutil"
)

func TestAccountSnapshots(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	addr := testutil.RandomAddress()
	doc := &model.AccountSnapshotDocument{
		Address:      addr,
		Referrer:     testutil.RandomAddress(),
		TeamCount:    3,
		TotalRevenue: "2500",
		CurrentCap:   "30000",
		BalanceA:     "100",
		BalanceB:     "0",
		Active:       true,
		LastUpdated:  1,
	}
	require.NoError(t, testDB.UpsertAccountSnapshot(ctx, doc))

	got, err := testDB.GetAccountSnapshot(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	// Upsert replaces wholesale.
	doc.TotalRevenue = "5000"
	doc.LastUpdated = 2
	require.NoError(t, testDB.UpsertAccountSnapshot(ctx, doc))

	got, err = testDB.GetAccountSnapshot(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, "5000", got.TotalRevenue)

	all, err := testDB.ListAccountSnapshots(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = testDB.GetAccountSnapshot(ctx, "unknown")
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestStakeSnapshots(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	owner := testutil.RandomAddress()
	for i, id := range []string{"s1", "s2"} {
		doc := &model.StakeSnapshotDocument{
			StakeID:             id,
			Account:             owner,
			Amount:              "15000",
			StartTime:           int64(i),
			CycleDays:           7,
			DailyRateBillionths: 13_333_333,
			State:               "ACCRUING",
			Paid:                "0",
			PendingDiffs: []model.PendingDifferentialDocument{
				{Ancestor: testutil.RandomAddress(), BaseCap: "10000"},
			},
		}
		require.NoError(t, testDB.UpsertStakeSnapshot(ctx, doc))
	}

	byAccount, err := testDB.GetStakeSnapshotsByAccount(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, byAccount, 2)

	byAccount, err = testDB.GetStakeSnapshotsByAccount(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, byAccount)

	all, err := testDB.ListStakeSnapshots(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRewardRecords(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	doc := &model.RewardRecordDocument{
		ID:        "r1",
		Account:   testutil.RandomAddress(),
		Kind:      "DIRECT",
		Requested: "2500",
		Paid:      "2500",
		PaidA:     "2500",
		PaidB:     "0",
		Timestamp: 1,
	}
	require.NoError(t, testDB.SaveRewardRecord(ctx, doc))

	err := testDB.SaveRewardRecord(ctx, doc)
	require.Error(t, err)
	assert.True(t, IsDuplicateKeyError(err))
}

func TestPoolSnapshot(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	_, err := testDB.GetPoolSnapshot(ctx)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))

	doc := &model.PoolSnapshotDocument{
		ID:                 model.PoolSnapshotID,
		ReserveA:           "1000000",
		ReserveB:           "990000",
		BurnedB:            "10000",
		TreasuryB:          "0",
		BuyTaxBillionths:   500_000_000,
		SellTaxBillionths:  250_000_000,
		BurnRateBillionths: 10_000_000,
		Paused:             false,
		LastUpdated:        1,
	}
	require.NoError(t, testDB.UpsertPoolSnapshot(ctx, doc))

	got, err := testDB.GetPoolSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	// Replaced wholesale on every write.
	doc.ReserveB = "900000"
	doc.LastUpdated = 2
	require.NoError(t, testDB.UpsertPoolSnapshot(ctx, doc))

	got, err = testDB.GetPoolSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "900000", got.ReserveB)
}

func TestBurnRecords(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	_, err := testDB.GetLatestBurnRecord(ctx)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))

	for i := 1; i <= 3; i++ {
		doc := &model.BurnRecordDocument{
			ID:        fmt.Sprintf("b%d", i),
			Amount:    "10000",
			ReserveB:  "990000",
			Timestamp: int64(i),
		}
		require.NoError(t, testDB.SaveBurnRecord(ctx, doc))
	}

	latest, err := testDB.GetLatestBurnRecord(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b3", latest.ID)
}
