package amm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

func newTestPool() *Pool {
	return NewPool(
		ledger.NewAmount(1_000_000),
		ledger.NewAmount(1_000_000),
		500_000_000, // 50% buy tax
		250_000_000, // 25% sell tax
	)
}

func TestGetAmountOut(t *testing.T) {
	out := GetAmountOut(ledger.NewAmount(100_000), ledger.NewAmount(1_000_000), ledger.NewAmount(1_000_000))
	// floor(100_000 * 1_000_000 / 1_100_000)
	assert.Equal(t, ledger.NewAmount(90_909), out)
}

func TestGetAmountIn_InvertsOut(t *testing.T) {
	reserveIn := ledger.NewAmount(1_000_000)
	reserveOut := ledger.NewAmount(1_000_000)

	for _, want := range []int64{1, 100, 90_909, 500_000} {
		in := GetAmountIn(ledger.NewAmount(want), reserveIn, reserveOut)
		got := GetAmountOut(in, reserveIn, reserveOut)
		assert.True(t, got.GTE(ledger.NewAmount(want)), "in %s yields %s, want at least %d", in, got, want)
	}
}

func TestSwapAToB(t *testing.T) {
	p := newTestPool()

	result, err := p.SwapAToB(ledger.NewAmount(100_000))
	require.Nil(t, err)

	assert.Equal(t, ledger.NewAmount(90_909), result.GrossOut)
	assert.Equal(t, ledger.NewAmount(45_454), result.Burned)
	assert.Equal(t, ledger.NewAmount(45_455), result.AmountOut)

	// Reserve B is debited by the gross amount; the taxed tokens are
	// destroyed, not returned to the pool.
	assert.Equal(t, ledger.NewAmount(1_100_000), p.ReserveA)
	assert.Equal(t, ledger.NewAmount(909_091), p.ReserveB)
	assert.Equal(t, ledger.NewAmount(45_454), p.BurnedB)
}

func TestSwapBToA(t *testing.T) {
	p := newTestPool()

	result, err := p.SwapBToA(ledger.NewAmount(100_000))
	require.Nil(t, err)

	// 25% of the input burns before the curve: net 75_000.
	// floor(75_000 * 1_000_000 / 1_075_000) = 69_767.
	assert.Equal(t, ledger.NewAmount(25_000), result.Burned)
	assert.Equal(t, ledger.NewAmount(69_767), result.AmountOut)

	assert.Equal(t, ledger.NewAmount(930_233), p.ReserveA)
	assert.Equal(t, ledger.NewAmount(1_075_000), p.ReserveB)
	assert.Equal(t, ledger.NewAmount(25_000), p.BurnedB)
}

func TestSwap_ProductNeverDecreases(t *testing.T) {
	p := newTestPool()
	product := func() ledger.Amount { return p.ReserveA.Mul(p.ReserveB) }

	before := product()
	_, err := p.SwapAToB(ledger.NewAmount(37_501))
	require.Nil(t, err)
	assert.True(t, product().GTE(before))

	before = product()
	_, err = p.SwapBToA(ledger.NewAmount(12_007))
	require.Nil(t, err)
	assert.True(t, product().GTE(before))

	before = product()
	_, err2 := p.InternalSwapAToB(ledger.NewAmount(999))
	require.Nil(t, err2)
	assert.True(t, product().GTE(before))
}

func TestSwap_Validation(t *testing.T) {
	tests := []struct {
		name string
		pool *Pool
		in   int64
		code types.ErrorCode
	}{
		{
			name: "zero amount",
			pool: newTestPool(),
			in:   0,
			code: types.ZeroAmount,
		},
		{
			name: "negative amount",
			pool: newTestPool(),
			in:   -5,
			code: types.ZeroAmount,
		},
		{
			name: "empty pool",
			pool: NewPool(ledger.ZeroAmount(), ledger.ZeroAmount(), 0, 0),
			in:   100,
			code: types.InsufficientLiquidity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.pool.SwapAToB(ledger.NewAmount(tt.in))
			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.ErrorCode)

			_, err = tt.pool.SwapBToA(ledger.NewAmount(tt.in))
			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.ErrorCode)
		})
	}
}

func TestSwapAToB_TinyInputRejected(t *testing.T) {
	p := NewPool(ledger.NewAmount(1_000_000_000), ledger.NewAmount(10), 0, 0)

	// The quote floors to zero; the swap must not consume the input.
	_, err := p.SwapAToB(ledger.NewAmount(1))
	require.NotNil(t, err)
	assert.Equal(t, types.InsufficientLiquidity, err.ErrorCode)
	assert.Equal(t, ledger.NewAmount(1_000_000_000), p.ReserveA)
}

func TestInternalSwapAToB_NoTax(t *testing.T) {
	p := newTestPool()

	out, err := p.InternalSwapAToB(ledger.NewAmount(100_000))
	require.Nil(t, err)
	assert.Equal(t, ledger.NewAmount(90_909), out)
	assert.True(t, p.BurnedB.IsZero())
}

func TestAddLiquidity(t *testing.T) {
	p := newTestPool()
	require.Nil(t, p.AddLiquidity(ledger.NewAmount(500), ledger.NewAmount(700)))
	assert.Equal(t, ledger.NewAmount(1_000_500), p.ReserveA)
	assert.Equal(t, ledger.NewAmount(1_000_700), p.ReserveB)

	err := p.AddLiquidity(ledger.NewAmount(-1), ledger.ZeroAmount())
	require.NotNil(t, err)
	assert.Equal(t, types.ZeroAmount, err.ErrorCode)
}

func TestSpotAToB(t *testing.T) {
	p := NewPool(ledger.NewAmount(2_000_000), ledger.NewAmount(1_000_000), 0, 0)
	assert.Equal(t, ledger.NewAmount(500), p.SpotAToB(ledger.NewAmount(1000)))

	empty := NewPool(ledger.ZeroAmount(), ledger.NewAmount(1_000_000), 0, 0)
	assert.True(t, empty.SpotAToB(ledger.NewAmount(1000)).IsZero())
}
