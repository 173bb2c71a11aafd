package ledger

import (
	"time"
)

// Ticket is the activation purchase of an account. One ticket per account;
// repeat purchases accumulate into the same ticket until it expires or the
// account exits via cap.
type Ticket struct {
	ID           string
	Amount       Amount
	PurchaseTime time.Time
	// Staked flips true on the first liquidity stake after purchase. A
	// ticket that was never backed by liquidity expires lazily once the
	// flexibility window has elapsed.
	Staked bool
	Exited bool
}

// IsExpired reports whether the flexibility window elapsed without any
// liquidity being staked. Evaluated on access; there is no scheduler.
func (t *Ticket) IsExpired(now time.Time, flexWindow time.Duration) bool {
	if t == nil {
		return false
	}
	return !t.Staked && now.Sub(t.PurchaseTime) > flexWindow
}
