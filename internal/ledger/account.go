package ledger

import (
	"time"
)

// Account is the per-address ledger record. Accounts are created implicitly
// on first interaction and never removed.
type Account struct {
	Address string
	// Referrer is immutable once set; empty means unbound.
	Referrer      string
	ActiveDirects uint64
	// TeamCount is the number of downline accounts whose referrer chain
	// includes this account. It only ever increases.
	TeamCount uint64

	TotalRevenue Amount
	// CurrentCap is the revenue ceiling: CapMultiple x cumulative
	// ticket + liquidity investment.
	CurrentCap Amount
	Exited     bool

	// RefundFeeAmount is the fee credit carried to the next redemption.
	RefundFeeAmount Amount

	TeamTotalVolume Amount
	TeamTotalCap    Amount

	MaxTicketAmount       Amount
	MaxSingleTicketAmount Amount

	// StakedLiquidity is the principal currently locked in accruing stakes.
	StakedLiquidity Amount

	// Settled wallet credits, by asset.
	BalanceA Amount
	BalanceB Amount

	Active bool
	Ticket *Ticket
}

func newAccount(address string) *Account {
	return &Account{
		Address:               address,
		TotalRevenue:          ZeroAmount(),
		CurrentCap:            ZeroAmount(),
		RefundFeeAmount:       ZeroAmount(),
		TeamTotalVolume:       ZeroAmount(),
		TeamTotalCap:          ZeroAmount(),
		MaxTicketAmount:       ZeroAmount(),
		MaxSingleTicketAmount: ZeroAmount(),
		StakedLiquidity:       ZeroAmount(),
		BalanceA:              ZeroAmount(),
		BalanceB:              ZeroAmount(),
	}
}

func (a *Account) HasReferrer() bool {
	return a.Referrer != ""
}

// Headroom is the revenue the account may still earn before hitting its cap.
func (a *Account) Headroom() Amount {
	headroom := a.CurrentCap.Sub(a.TotalRevenue)
	if headroom.IsNegative() {
		return ZeroAmount()
	}
	return headroom
}

// RequiredLiquidity is the adequacy threshold: factor x the largest single
// ticket ever purchased, not the cumulative sum.
func RequiredLiquidity(maxSingle Amount, factorBillionths int64) Amount {
	return Portion(maxSingle, factorBillionths)
}

// RecomputeActive re-derives the activation flag. Called on every buy and
// stake; activation is never cached across operations.
func (a *Account) RecomputeActive(now time.Time, flexWindow time.Duration, liquidityFactorBillionths int64) {
	if a.Ticket == nil || a.Ticket.Exited || a.Ticket.IsExpired(now, flexWindow) {
		a.Active = false
		return
	}
	required := RequiredLiquidity(a.MaxSingleTicketAmount, liquidityFactorBillionths)
	a.Active = a.StakedLiquidity.GTE(required) && required.IsPositive()
}
