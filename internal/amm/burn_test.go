package amm

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

func TestDailyBurn(t *testing.T) {
	pool := NewPool(ledger.NewAmount(1_000_000), ledger.NewAmount(1_000_000), 0, 0)
	clock := clockwork.NewFakeClock()
	keeper := NewBurnKeeper(pool, clock, 24*time.Hour, 10_000_000) // 1% daily

	burned, err := keeper.DailyBurn()
	require.Nil(t, err)
	assert.Equal(t, ledger.NewAmount(10_000), burned)
	assert.Equal(t, ledger.NewAmount(990_000), pool.ReserveB)
	assert.Equal(t, ledger.NewAmount(10_000), pool.BurnedB)
	assert.Equal(t, clock.Now(), keeper.LastBurnTime())

	// Reserve A is untouched by the burn.
	assert.Equal(t, ledger.NewAmount(1_000_000), pool.ReserveA)
}

func TestDailyBurn_TooEarly(t *testing.T) {
	pool := NewPool(ledger.NewAmount(1_000_000), ledger.NewAmount(1_000_000), 0, 0)
	clock := clockwork.NewFakeClock()
	keeper := NewBurnKeeper(pool, clock, 24*time.Hour, 10_000_000)

	_, err := keeper.DailyBurn()
	require.Nil(t, err)

	clock.Advance(23 * time.Hour)
	_, err = keeper.DailyBurn()
	require.NotNil(t, err)
	assert.Equal(t, types.TooEarly, err.ErrorCode)
	assert.Equal(t, ledger.NewAmount(990_000), pool.ReserveB)

	// The next window opens exactly one interval after the last burn.
	clock.Advance(time.Hour)
	burned, err := keeper.DailyBurn()
	require.Nil(t, err)
	assert.Equal(t, ledger.NewAmount(9_900), burned)
}

func TestDailyBurn_EmptyReserve(t *testing.T) {
	pool := NewPool(ledger.NewAmount(1_000_000), ledger.ZeroAmount(), 0, 0)
	keeper := NewBurnKeeper(pool, clockwork.NewFakeClock(), 24*time.Hour, 10_000_000)

	_, err := keeper.DailyBurn()
	require.NotNil(t, err)
	assert.Equal(t, types.EmptyReserve, err.ErrorCode)
}

func TestDailyBurn_RestoredGate(t *testing.T) {
	pool := NewPool(ledger.NewAmount(1_000_000), ledger.NewAmount(1_000_000), 0, 0)
	clock := clockwork.NewFakeClock()
	keeper := NewBurnKeeper(pool, clock, 24*time.Hour, 10_000_000)

	keeper.SetLastBurnTime(clock.Now().Add(-time.Hour))
	_, err := keeper.DailyBurn()
	require.NotNil(t, err)
	assert.Equal(t, types.TooEarly, err.ErrorCode)
}
