package services

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/stakeflow-labs/stakeflow-engine/internal/config"
	"github.com/stakeflow-labs/stakeflow-engine/internal/db"
	"github.com/stakeflow-labs/stakeflow-engine/internal/db/model"
	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/observability/metrics"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

func TestMain(m *testing.M) {
	metrics.Init(12379)
	os.Exit(m.Run())
}

// fakeDb is an in-memory DbInterface for unit tests; the integration suite
// covers the real mongo implementation.
type fakeDb struct {
	mu       sync.Mutex
	accounts map[string]*model.AccountSnapshotDocument
	stakes   map[string]*model.StakeSnapshotDocument
	rewards  []*model.RewardRecordDocument
	burns    []*model.BurnRecordDocument
	pool     *model.PoolSnapshotDocument
}

func newFakeDb() *fakeDb {
	return &fakeDb{
		accounts: make(map[string]*model.AccountSnapshotDocument),
		stakes:   make(map[string]*model.StakeSnapshotDocument),
	}
}

func (f *fakeDb) Ping(ctx context.Context) error { return nil }

func (f *fakeDb) UpsertAccountSnapshot(ctx context.Context, doc *model.AccountSnapshotDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[doc.Address] = doc
	return nil
}

func (f *fakeDb) GetAccountSnapshot(ctx context.Context, address string) (*model.AccountSnapshotDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.accounts[address]
	if !ok {
		return nil, &db.NotFoundError{Key: address, Message: "account snapshot not found"}
	}
	return doc, nil
}

func (f *fakeDb) ListAccountSnapshots(ctx context.Context) ([]*model.AccountSnapshotDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	docs := make([]*model.AccountSnapshotDocument, 0, len(f.accounts))
	for _, doc := range f.accounts {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (f *fakeDb) UpsertStakeSnapshot(ctx context.Context, doc *model.StakeSnapshotDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stakes[doc.StakeID] = doc
	return nil
}

func (f *fakeDb) GetStakeSnapshotsByAccount(ctx context.Context, address string) ([]*model.StakeSnapshotDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var docs []*model.StakeSnapshotDocument
	for _, doc := range f.stakes {
		if doc.Account == address {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (f *fakeDb) ListStakeSnapshots(ctx context.Context) ([]*model.StakeSnapshotDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	docs := make([]*model.StakeSnapshotDocument, 0, len(f.stakes))
	for _, doc := range f.stakes {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (f *fakeDb) SaveRewardRecord(ctx context.Context, doc *model.RewardRecordDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rewards = append(f.rewards, doc)
	return nil
}

func (f *fakeDb) SaveBurnRecord(ctx context.Context, doc *model.BurnRecordDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.burns = append(f.burns, doc)
	return nil
}

func (f *fakeDb) GetLatestBurnRecord(ctx context.Context) (*model.BurnRecordDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.burns) == 0 {
		return nil, &db.NotFoundError{Key: "burn", Message: "no burn records"}
	}
	return f.burns[len(f.burns)-1], nil
}

func (f *fakeDb) UpsertPoolSnapshot(ctx context.Context, doc *model.PoolSnapshotDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pool = doc
	return nil
}

func (f *fakeDb) GetPoolSnapshot(ctx context.Context) (*model.PoolSnapshotDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pool == nil {
		return nil, &db.NotFoundError{Key: model.PoolSnapshotID, Message: "pool snapshot not found"}
	}
	return f.pool, nil
}

var _ db.DbInterface = (*fakeDb)(nil)

// fakePublisher records every published event in order.
type fakePublisher struct {
	mu     sync.Mutex
	events []*types.ProtocolEvent
}

func (p *fakePublisher) PublishProtocolEvent(ctx context.Context, ev *types.ProtocolEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *fakePublisher) Shutdown() {}

func (p *fakePublisher) eventsOfType(eventType types.EventTypes) []*types.ProtocolEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var matched []*types.ProtocolEvent
	for _, ev := range p.events {
		if ev.Type == eventType {
			matched = append(matched, ev)
		}
	}
	return matched
}

func testConfig() *config.Config {
	return &config.Config{
		Protocol: config.DefaultProtocolConfig(),
		Swap: config.SwapConfig{
			BuyTaxBillionths:   500_000_000,
			SellTaxBillionths:  250_000_000,
			BurnRateBillionths: 10_000_000,
			BurnInterval:       24 * time.Hour,
			InitialReserveA:    1_000_000,
			InitialReserveB:    1_000_000,
		},
	}
}

func amountOf(v int64) ledger.Amount {
	return ledger.NewAmount(v)
}

type testEnv struct {
	service *Service
	db      *fakeDb
	queue   *fakePublisher
	clock   *clockwork.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fdb := newFakeDb()
	pub := &fakePublisher{}
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	return &testEnv{
		service: NewService(testConfig(), fdb, pub, clock),
		db:      fdb,
		queue:   pub,
		clock:   clock,
	}
}
