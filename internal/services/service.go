package services

import (
	"context"
	"math/big"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/avast/retry-go/v4"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/stakeflow-labs/stakeflow-engine/internal/amm"
	"github.com/stakeflow-labs/stakeflow-engine/internal/config"
	"github.com/stakeflow-labs/stakeflow-engine/internal/db"
	"github.com/stakeflow-labs/stakeflow-engine/internal/db/model"
	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/observability/metrics"
	"github.com/stakeflow-labs/stakeflow-engine/internal/observability/tracing"
	"github.com/stakeflow-labs/stakeflow-engine/internal/queue"
	"github.com/stakeflow-labs/stakeflow-engine/internal/rewards"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

// Wallets is the admin-configured wallet surface the engine must honor.
type Wallets struct {
	Owner string
	Fee   string
}

// Service is the protocol controller. All mutating operations are
// serialized behind one mutex, preserving the single-writer atomicity the
// ledger design assumes; each operation validates in full before touching
// any state and completes synchronously.
type Service struct {
	cfg   *config.Config
	db    db.DbInterface
	queue queue.EventPublisher
	clock clockwork.Clock

	mu     sync.Mutex
	store  *ledger.Store
	engine *rewards.Engine
	pool   *amm.Pool
	burn   *amm.BurnKeeper

	// treasuryB is the protocol-held token balance used for the token leg
	// of reward settlement.
	treasuryB ledger.Amount

	wallets Wallets
	paused  bool
}

func NewService(
	cfg *config.Config,
	dbClient db.DbInterface,
	eventPublisher queue.EventPublisher,
	clock clockwork.Clock,
) *Service {
	pool := amm.NewPool(
		ledger.NewAmount(cfg.Swap.InitialReserveA),
		ledger.NewAmount(cfg.Swap.InitialReserveB),
		cfg.Swap.BuyTaxBillionths,
		cfg.Swap.SellTaxBillionths,
	)
	return &Service{
		cfg:       cfg,
		db:        dbClient,
		queue:     eventPublisher,
		clock:     clock,
		store:     ledger.NewStore(),
		engine:    rewards.NewEngine(cfg.Protocol),
		pool:      pool,
		burn:      amm.NewBurnKeeper(pool, clock, cfg.Swap.BurnInterval, cfg.Swap.BurnRateBillionths),
		treasuryB: ledger.ZeroAmount(),
	}
}

// run wraps one mutating operation: trace tag, single-writer lock, latency
// metric.
func (s *Service) run(ctx context.Context, operation string, f func(ctx context.Context) *types.Error) *types.Error {
	ctx = tracing.WithOperation(ctx, operation)
	start := time.Now()

	s.mu.Lock()
	err := f(ctx)
	s.mu.Unlock()

	metrics.RecordOperationDuration(time.Since(start), operation, err != nil)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("operation rejected")
	}
	return err
}

func (s *Service) checkPaused() *types.Error {
	if s.paused {
		return types.NewPreconditionError(types.ProtocolPaused, "protocol operations are paused")
	}
	return nil
}

// refreshActivation re-derives the activation flag and keeps the
// referrer's active-directs count in step with the transition.
func (s *Service) refreshActivation(acct *ledger.Account) {
	was := acct.Active
	acct.RecomputeActive(s.clock.Now(), s.cfg.Protocol.TicketFlexWindow, s.cfg.Protocol.LiquidityFactorBillionths)
	if was == acct.Active || !acct.HasReferrer() {
		return
	}
	referrer := s.store.Account(acct.Referrer)
	if referrer == nil {
		return
	}
	if acct.Active {
		referrer.ActiveDirects++
	} else if referrer.ActiveDirects > 0 {
		referrer.ActiveDirects--
	}
}

// persistAccounts journals the touched accounts. The in-memory store is
// authoritative; journal failures are logged and counted, not surfaced to
// the caller.
func (s *Service) persistAccounts(ctx context.Context, addrs ...string) {
	now := s.clock.Now()
	for _, addr := range addrs {
		acct := s.store.Account(addr)
		if acct == nil {
			continue
		}
		doc := model.FromAccount(acct, now)
		if err := s.persist(ctx, func() error {
			return s.db.UpsertAccountSnapshot(ctx, doc)
		}); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("account", addr).Msg("failed to journal account snapshot")
		}
	}
}

// persistPool journals the pool, treasury and operational switches as one
// wholesale-replaced document, so restarts resume with the reserves the
// instance shut down with.
func (s *Service) persistPool(ctx context.Context) {
	doc := &model.PoolSnapshotDocument{
		ID:                 model.PoolSnapshotID,
		ReserveA:           s.pool.ReserveA.String(),
		ReserveB:           s.pool.ReserveB.String(),
		BurnedB:            s.pool.BurnedB.String(),
		TreasuryB:          s.treasuryB.String(),
		BuyTaxBillionths:   s.pool.BuyTaxBillionths,
		SellTaxBillionths:  s.pool.SellTaxBillionths,
		BurnRateBillionths: s.cfg.Swap.BurnRateBillionths,
		OwnerWallet:        s.wallets.Owner,
		FeeWallet:          s.wallets.Fee,
		Paused:             s.paused,
		LastUpdated:        s.clock.Now().Unix(),
	}
	if err := s.persist(ctx, func() error {
		return s.db.UpsertPoolSnapshot(ctx, doc)
	}); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to journal pool snapshot")
	}
}

func (s *Service) persistStake(ctx context.Context, stake *ledger.Stake) {
	doc := model.FromStake(stake, s.clock.Now())
	if err := s.persist(ctx, func() error {
		return s.db.UpsertStakeSnapshot(ctx, doc)
	}); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("stakeId", stake.ID).Msg("failed to journal stake snapshot")
	}
}

func (s *Service) persist(ctx context.Context, f func() error) error {
	return retry.Do(f,
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}

func (s *Service) publish(ctx context.Context, ev *types.ProtocolEvent) {
	ev.Timestamp = s.clock.Now().UTC()
	if err := s.queue.PublishProtocolEvent(ctx, ev); err != nil {
		metrics.RecordQueuePublishError()
		log.Ctx(ctx).Warn().Err(err).Str("type", ev.Type.String()).Msg("failed to publish protocol event")
	}
}

func amountToFloat(a ledger.Amount) float64 {
	f, _ := new(big.Float).SetInt(a.BigInt()).Float64()
	return f
}

func parseAmount(s string) ledger.Amount {
	if s == "" {
		return ledger.ZeroAmount()
	}
	v, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return ledger.ZeroAmount()
	}
	return v
}
