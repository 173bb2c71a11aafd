package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

// StakeLiquidity locks liquidity against the account's ticket for a fixed
// cycle. Differential obligations for the upline are recorded here, frozen
// but unpaid until redemption.
func (s *Service) StakeLiquidity(ctx context.Context, user string, amount ledger.Amount, cycleDays uint32) *types.Error {
	return s.run(ctx, "StakeLiquidity", func(ctx context.Context) *types.Error {
		if err := s.checkPaused(); err != nil {
			return err
		}
		if !amount.IsPositive() {
			return types.NewValidationError(types.ZeroAmount, "stake amount must be positive")
		}
		dailyRate, ok := s.cfg.Protocol.CycleRate(cycleDays)
		if !ok {
			return types.NewValidationError(types.InvalidCycle, "%d is not an allowed cycle length", cycleDays)
		}

		acct := s.store.Account(user)
		now := s.clock.Now()
		if acct == nil || acct.Ticket == nil || acct.Ticket.Exited ||
			acct.Ticket.IsExpired(now, s.cfg.Protocol.TicketFlexWindow) {
			return types.NewPreconditionError(types.InactiveTicket, "account %s has no active ticket", user)
		}
		if acct.Exited {
			return types.NewPreconditionError(types.AlreadyExited, "account %s exhausted its revenue cap", user)
		}

		required := ledger.RequiredLiquidity(acct.MaxSingleTicketAmount, s.cfg.Protocol.LiquidityFactorBillionths)
		if acct.StakedLiquidity.Add(amount).LT(required) {
			return types.NewPreconditionError(types.LowLiquidity, "staked liquidity %s would stay below required %s",
				acct.StakedLiquidity.Add(amount), required)
		}

		stake := &ledger.Stake{
			ID:                  uuid.New().String(),
			Account:             user,
			Amount:              amount,
			StartTime:           now,
			CycleDays:           cycleDays,
			DailyRateBillionths: dailyRate,
			State:               types.StakeAccruing,
			Paid:                ledger.ZeroAmount(),
			PendingDiffs:        s.engine.PendingDifferentials(s.store, user, amount),
		}
		s.store.PutStake(stake)

		acct.StakedLiquidity = acct.StakedLiquidity.Add(amount)
		acct.CurrentCap = acct.CurrentCap.Add(amount.MulRaw(s.cfg.Protocol.CapMultiple))
		acct.Ticket.Staked = true
		s.refreshActivation(acct)

		log.Ctx(ctx).Info().
			Str("user", user).
			Str("amount", amount.String()).
			Uint32("cycleDays", cycleDays).
			Str("stakeId", stake.ID).
			Msg("liquidity staked")

		s.persistStake(ctx, stake)
		s.persistAccounts(ctx, user, acct.Referrer)
		s.publish(ctx, &types.ProtocolEvent{
			Type:    types.EventStakeCreated,
			Account: user,
			StakeID: stake.ID,
			Amount:  amount.String(),
		})
		return nil
	})
}
