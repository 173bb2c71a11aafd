package ledger

import (
	sdkmath "cosmossdk.io/math"
)

// Amount is the scaled-integer money type used across the ledger. No
// floating point is used anywhere in the engine.
type Amount = sdkmath.Int

// RateScale is the fixed-point scale for all percentage-like rates.
// A rate of 1_000_000_000 is 100%; 10_000_000 is 1%.
const RateScale = 1_000_000_000

func NewAmount(v int64) Amount {
	return sdkmath.NewInt(v)
}

func ZeroAmount() Amount {
	return sdkmath.ZeroInt()
}

// Portion returns floor(amount * rateBillionths / RateScale).
func Portion(amount Amount, rateBillionths int64) Amount {
	return amount.MulRaw(rateBillionths).QuoRaw(RateScale)
}

// MulDiv returns floor(a * b / c). Intermediate products stay exact because
// Amount is arbitrary precision.
func MulDiv(a, b, c Amount) Amount {
	return a.Mul(b).Quo(c)
}

func MinAmount(a, b Amount) Amount {
	return sdkmath.MinInt(a, b)
}
