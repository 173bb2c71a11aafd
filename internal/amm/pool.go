package amm

import (
	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

// Pool is the protocol-owned constant-product pool for the two settlement
// assets. Reserves are not user-pooled; there is no LP-share accounting.
// The curve itself is tax-free and exact; the protocol tax is applied
// outside the curve and burned, so reserveA*reserveB never decreases
// across a swap.
type Pool struct {
	ReserveA ledger.Amount
	ReserveB ledger.Amount

	// Taxes in billionths. Buy tax comes off the A->B output, sell tax
	// off the B->A input before it enters the curve.
	BuyTaxBillionths  int64
	SellTaxBillionths int64

	// BurnedB is the cumulative token supply destroyed by taxes and the
	// daily burn.
	BurnedB ledger.Amount
}

func NewPool(reserveA, reserveB ledger.Amount, buyTaxBillionths, sellTaxBillionths int64) *Pool {
	return &Pool{
		ReserveA:          reserveA,
		ReserveB:          reserveB,
		BuyTaxBillionths:  buyTaxBillionths,
		SellTaxBillionths: sellTaxBillionths,
		BurnedB:           ledger.ZeroAmount(),
	}
}

// SwapResult reports one executed swap. GrossOut is what the curve quoted;
// Burned is the taxed portion destroyed; AmountOut is what the caller
// receives.
type SwapResult struct {
	AmountIn  ledger.Amount
	GrossOut  ledger.Amount
	Burned    ledger.Amount
	AmountOut ledger.Amount
}

// GetAmountOut is the standard zero-fee constant-product quote:
// floor(amountIn * reserveOut / (reserveIn + amountIn)).
func GetAmountOut(amountIn, reserveIn, reserveOut ledger.Amount) ledger.Amount {
	return ledger.MulDiv(amountIn, reserveOut, reserveIn.Add(amountIn))
}

// GetAmountIn inverts the quote: the smallest input that yields at least
// amountOut. Callers must ensure amountOut < reserveOut.
func GetAmountIn(amountOut, reserveIn, reserveOut ledger.Amount) ledger.Amount {
	return ledger.MulDiv(amountOut, reserveIn, reserveOut.Sub(amountOut)).AddRaw(1)
}

func (p *Pool) validateSwap(amountIn ledger.Amount) *types.Error {
	if !amountIn.IsPositive() {
		return types.NewValidationError(types.ZeroAmount, "swap amount must be positive")
	}
	if !p.ReserveA.IsPositive() || !p.ReserveB.IsPositive() {
		return types.NewPreconditionError(types.InsufficientLiquidity, "pool has no liquidity")
	}
	return nil
}

// SwapAToB sends the full input through the curve, then burns the buy tax
// out of the gross output. Reserve B is debited by the gross amount; the
// taxed tokens are destroyed from supply, not re-added to reserves.
func (p *Pool) SwapAToB(amountIn ledger.Amount) (SwapResult, *types.Error) {
	if err := p.validateSwap(amountIn); err != nil {
		return SwapResult{}, err
	}
	gross := GetAmountOut(amountIn, p.ReserveA, p.ReserveB)
	if !gross.IsPositive() || gross.GTE(p.ReserveB) {
		return SwapResult{}, types.NewPreconditionError(types.InsufficientLiquidity, "output %s not available from reserve %s", gross, p.ReserveB)
	}
	p.ReserveA = p.ReserveA.Add(amountIn)
	p.ReserveB = p.ReserveB.Sub(gross)

	burned := ledger.Portion(gross, p.BuyTaxBillionths)
	p.BurnedB = p.BurnedB.Add(burned)

	return SwapResult{
		AmountIn:  amountIn,
		GrossOut:  gross,
		Burned:    burned,
		AmountOut: gross.Sub(burned),
	}, nil
}

// SwapBToA burns the sell tax off the input first; only the net portion
// enters the curve.
func (p *Pool) SwapBToA(amountIn ledger.Amount) (SwapResult, *types.Error) {
	if err := p.validateSwap(amountIn); err != nil {
		return SwapResult{}, err
	}
	burned := ledger.Portion(amountIn, p.SellTaxBillionths)
	net := amountIn.Sub(burned)
	out := GetAmountOut(net, p.ReserveB, p.ReserveA)
	if !out.IsPositive() || out.GTE(p.ReserveA) {
		return SwapResult{}, types.NewPreconditionError(types.InsufficientLiquidity, "output %s not available from reserve %s", out, p.ReserveA)
	}
	p.ReserveB = p.ReserveB.Add(net)
	p.ReserveA = p.ReserveA.Sub(out)
	p.BurnedB = p.BurnedB.Add(burned)

	return SwapResult{
		AmountIn:  amountIn,
		GrossOut:  out,
		Burned:    burned,
		AmountOut: out,
	}, nil
}

// InternalSwapAToB runs the curve without tax. Used by reward settlement to
// synthesize the token leg when the treasury runs short.
func (p *Pool) InternalSwapAToB(amountIn ledger.Amount) (ledger.Amount, *types.Error) {
	if err := p.validateSwap(amountIn); err != nil {
		return ledger.ZeroAmount(), err
	}
	out := GetAmountOut(amountIn, p.ReserveA, p.ReserveB)
	if out.GTE(p.ReserveB) {
		return ledger.ZeroAmount(), types.NewPreconditionError(types.InsufficientLiquidity, "output %s not available from reserve %s", out, p.ReserveB)
	}
	p.ReserveA = p.ReserveA.Add(amountIn)
	p.ReserveB = p.ReserveB.Sub(out)
	return out, nil
}

// AddLiquidity credits both reserves directly. Owner-gated at the service
// boundary.
func (p *Pool) AddLiquidity(amountA, amountB ledger.Amount) *types.Error {
	if amountA.IsNegative() || amountB.IsNegative() {
		return types.NewValidationError(types.ZeroAmount, "liquidity amounts must be non-negative")
	}
	p.ReserveA = p.ReserveA.Add(amountA)
	p.ReserveB = p.ReserveB.Add(amountB)
	return nil
}

// SpotAToB quotes amountA in tokens at the current spot price, without
// moving the curve.
func (p *Pool) SpotAToB(amountA ledger.Amount) ledger.Amount {
	if !p.ReserveA.IsPositive() {
		return ledger.ZeroAmount()
	}
	return ledger.MulDiv(amountA, p.ReserveB, p.ReserveA)
}
