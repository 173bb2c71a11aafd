package ledger

import (
	"time"

	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

// DifferentialEntry is a pending differential reward obligation recorded at
// stake time and released only at redemption. BaseCap is fixed when the
// entry is created: min(stake amount, ancestor's cumulative ticket amount).
type DifferentialEntry struct {
	Ancestor string
	BaseCap  Amount
}

// Stake is a liquidity lock accruing static yield over a fixed cycle.
type Stake struct {
	ID        string
	Account   string
	Amount    Amount
	StartTime time.Time
	CycleDays uint32
	// DailyRateBillionths is the static accrual rate per elapsed day,
	// snapshotted from config at stake time.
	DailyRateBillionths int64
	State               types.StakeState
	// Paid is the static reward already settled for this stake. It never
	// exceeds the theoretical entitlement at any elapsed-unit count.
	Paid         Amount
	PendingDiffs []DifferentialEntry
}

// ElapsedUnits returns whole days elapsed since StartTime, clipped at
// CycleDays. Maturity and early redemption share this single code path.
func (s *Stake) ElapsedUnits(now time.Time) uint32 {
	if now.Before(s.StartTime) {
		return 0
	}
	units := uint32(now.Sub(s.StartTime) / (24 * time.Hour))
	if units > s.CycleDays {
		return s.CycleDays
	}
	return units
}

// Entitlement is the total static reward earned up to now.
func (s *Stake) Entitlement(now time.Time) Amount {
	units := s.ElapsedUnits(now)
	return Portion(s.Amount, s.DailyRateBillionths*int64(units))
}

// Owed is the static reward earned but not yet paid.
func (s *Stake) Owed(now time.Time) Amount {
	owed := s.Entitlement(now).Sub(s.Paid)
	if owed.IsNegative() {
		return ZeroAmount()
	}
	return owed
}
