package rewards

import (
	"github.com/stakeflow-labs/stakeflow-engine/internal/config"
	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

// Payment is one computed reward obligation. Computation is separated from
// application so an operation can be validated in full before any account
// is touched.
type Payment struct {
	Account string
	Kind    types.RewardKind
	Amount  ledger.Amount
}

// Engine computes the four reward kinds. All of them are applied through
// the one cap-checked primitive, PayCapped, so the revenue-cap invariant is
// enforced in exactly one place.
type Engine struct {
	cfg config.ProtocolConfig
}

func NewEngine(cfg config.ProtocolConfig) *Engine {
	return &Engine{cfg: cfg}
}

// SetConfig swaps the distribution parameters. The admin surface validates
// them before they reach here.
func (e *Engine) SetConfig(cfg config.ProtocolConfig) {
	e.cfg = cfg
}

func (e *Engine) Config() config.ProtocolConfig {
	return e.cfg
}

// PurchasePayments returns the flat rewards triggered by a ticket purchase:
// Direct to the immediate referrer, Level to ancestors 2..16. Both are
// unconditional on the recipient's activation state.
func (e *Engine) PurchasePayments(s *ledger.Store, buyer string, ticketAmount ledger.Amount) []Payment {
	chain := s.UplineChain(buyer, ledger.LevelRewardDepth+1)
	payments := make([]Payment, 0, len(chain))
	for i, ancestor := range chain {
		if i == 0 {
			payments = append(payments, Payment{
				Account: ancestor,
				Kind:    types.RewardDirect,
				Amount:  ledger.Portion(ticketAmount, e.cfg.DirectRateBillionths),
			})
			continue
		}
		payments = append(payments, Payment{
			Account: ancestor,
			Kind:    types.RewardLevel,
			Amount:  ledger.Portion(ticketAmount, e.cfg.LevelRateBillionths),
		})
	}
	return payments
}

// PayCapped applies a reward against the account's remaining headroom.
// The excess over the cap is dropped, never carried over; consuming the
// last of the headroom flips the account to exited.
func (e *Engine) PayCapped(acct *ledger.Account, amount ledger.Amount) (paid ledger.Amount, exited bool) {
	if acct.Exited {
		return ledger.ZeroAmount(), false
	}
	paid = ledger.MinAmount(amount, acct.Headroom())
	if paid.IsNegative() {
		paid = ledger.ZeroAmount()
	}
	acct.TotalRevenue = acct.TotalRevenue.Add(paid)
	if acct.CurrentCap.IsPositive() && acct.TotalRevenue.GTE(acct.CurrentCap) {
		acct.Exited = true
		acct.Active = false
		if acct.Ticket != nil {
			acct.Ticket.Exited = true
		}
		exited = true
	}
	return paid, exited
}

// PendingDifferentials records the differential obligations for a new
// stake, one per upline ancestor holding a ticket. Nothing is paid here;
// entries are released at redemption. The base cap is frozen now:
// min(stake amount, ancestor's cumulative ticket amount), so a small-ticket
// ancestor cannot claim differential on an arbitrarily large downline stake.
func (e *Engine) PendingDifferentials(s *ledger.Store, staker string, stakeAmount ledger.Amount) []ledger.DifferentialEntry {
	chain := s.UplineChain(staker, ledger.LevelRewardDepth)
	entries := make([]ledger.DifferentialEntry, 0, len(chain))
	for _, ancestor := range chain {
		acct := s.Account(ancestor)
		if acct == nil || !acct.MaxTicketAmount.IsPositive() {
			continue
		}
		entries = append(entries, ledger.DifferentialEntry{
			Ancestor: ancestor,
			BaseCap:  ledger.MinAmount(stakeAmount, acct.MaxTicketAmount),
		})
	}
	return entries
}

// DifferentialPayments releases the pending entries of a stake against the
// static reward actually earned. Walking nearest-first, each ancestor gets
// the marginal percentage above the best tier already seen below them.
func (e *Engine) DifferentialPayments(s *ledger.Store, stake *ledger.Stake, staticEarned ledger.Amount) []Payment {
	payments := make([]Payment, 0, len(stake.PendingDiffs))
	var bestRate int64
	for _, entry := range stake.PendingDiffs {
		acct := s.Account(entry.Ancestor)
		if acct == nil {
			continue
		}
		rate := e.TierRate(acct.TeamCount)
		if rate <= bestRate {
			continue
		}
		marginal := rate - bestRate
		bestRate = rate
		base := ledger.MinAmount(staticEarned, entry.BaseCap)
		amount := ledger.Portion(base, marginal)
		if !amount.IsPositive() {
			continue
		}
		payments = append(payments, Payment{
			Account: entry.Ancestor,
			Kind:    types.RewardDifferential,
			Amount:  amount,
		})
	}
	return payments
}
