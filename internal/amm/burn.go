package amm

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

// BurnKeeper destroys a fixed fraction of the token reserve, at most once
// per interval. The call is permissionless; the time gate makes it
// idempotent per window.
type BurnKeeper struct {
	pool           *Pool
	clock          clockwork.Clock
	interval       time.Duration
	rateBillionths int64
	lastBurnTime   time.Time
}

func NewBurnKeeper(pool *Pool, clock clockwork.Clock, interval time.Duration, rateBillionths int64) *BurnKeeper {
	return &BurnKeeper{
		pool:           pool,
		clock:          clock,
		interval:       interval,
		rateBillionths: rateBillionths,
	}
}

// DailyBurn burns floor(reserveB * rate) out of the token reserve. A second
// call within the same window fails TooEarly and burns nothing.
func (k *BurnKeeper) DailyBurn() (ledger.Amount, *types.Error) {
	now := k.clock.Now()
	if !k.lastBurnTime.IsZero() && now.Sub(k.lastBurnTime) < k.interval {
		return ledger.ZeroAmount(), types.NewPreconditionError(types.TooEarly, "last burn at %s, next allowed at %s", k.lastBurnTime, k.lastBurnTime.Add(k.interval))
	}
	if !k.pool.ReserveB.IsPositive() {
		return ledger.ZeroAmount(), types.NewPreconditionError(types.EmptyReserve, "token reserve is empty")
	}

	burned := ledger.Portion(k.pool.ReserveB, k.rateBillionths)
	k.pool.ReserveB = k.pool.ReserveB.Sub(burned)
	k.pool.BurnedB = k.pool.BurnedB.Add(burned)
	k.lastBurnTime = now
	return burned, nil
}

func (k *BurnKeeper) LastBurnTime() time.Time {
	return k.lastBurnTime
}

// SetLastBurnTime seeds the interval gate, used when restoring from the
// journal so a restart cannot double-burn within one window.
func (k *BurnKeeper) SetLastBurnTime(t time.Time) {
	k.lastBurnTime = t
}

// SetRate swaps the burn fraction; admin-validated at the boundary.
func (k *BurnKeeper) SetRate(rateBillionths int64) {
	k.rateBillionths = rateBillionths
}
