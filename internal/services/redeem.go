package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/rewards"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

// RedeemStake settles one accruing stake: static reward to date, then the
// release of the stake's pending differential entries, then the principal.
func (s *Service) RedeemStake(ctx context.Context, user, stakeID string) *types.Error {
	return s.run(ctx, "RedeemStake", func(ctx context.Context) *types.Error {
		if err := s.checkPaused(); err != nil {
			return err
		}
		stake := s.store.Stake(stakeID)
		if stake == nil || stake.Account != user {
			return types.NewPreconditionError(types.NotAccruing, "stake %s is not accruing for account %s", stakeID, user)
		}
		return s.redeemOne(ctx, stake)
	})
}

// Redeem is the legacy redeem-all operation: settles every accruing stake
// of the account. Fails NotAccruing when there is nothing to redeem.
func (s *Service) Redeem(ctx context.Context, user string) *types.Error {
	return s.run(ctx, "Redeem", func(ctx context.Context) *types.Error {
		if err := s.checkPaused(); err != nil {
			return err
		}
		redeemed := 0
		for _, stake := range s.store.StakesFor(user) {
			if stake.State != types.StakeAccruing {
				continue
			}
			if err := s.redeemOne(ctx, stake); err != nil {
				return err
			}
			redeemed++
		}
		if redeemed == 0 {
			return types.NewPreconditionError(types.NotAccruing, "account %s has no accruing stakes", user)
		}
		return nil
	})
}

func (s *Service) redeemOne(ctx context.Context, stake *ledger.Stake) *types.Error {
	if stake.State != types.StakeAccruing {
		return types.NewPreconditionError(types.NotAccruing, "stake %s is already redeemed", stake.ID)
	}
	acct := s.store.Account(stake.Account)
	now := s.clock.Now()

	touched := map[string]bool{stake.Account: true}

	// Static reward earned to date, elapsed units clipped at the cycle
	// length. Matured and early redemption differ only in whether further
	// accrual was still possible.
	staticOwed := stake.Owed(now)
	staticPaid := ledger.ZeroAmount()
	if staticOwed.IsPositive() {
		payment := rewards.Payment{Account: stake.Account, Kind: types.RewardStatic, Amount: staticOwed}
		staticPaid = s.applyPayment(ctx, payment, stake.Account, stake.ID)
		stake.Paid = stake.Paid.Add(staticPaid)
	}

	// Differential release is driven by the static reward actually earned,
	// not the staked principal.
	for _, payment := range s.engine.DifferentialPayments(s.store, stake, staticPaid) {
		s.applyPayment(ctx, payment, stake.Account, stake.ID)
		touched[payment.Account] = true
	}

	if stake.ElapsedUnits(now) >= stake.CycleDays {
		stake.State = types.StakeMatured
	} else {
		stake.State = types.StakeRedeemedEarly
	}

	// Principal returns in full; the redemption fee is charged on the
	// ticket amount against the external balance, offset by the credit
	// from the previous cycle.
	acct.BalanceA = acct.BalanceA.Add(stake.Amount)
	acct.StakedLiquidity = acct.StakedLiquidity.Sub(stake.Amount)

	fee := ledger.ZeroAmount()
	if acct.Ticket != nil {
		fee = ledger.Portion(acct.Ticket.Amount, s.cfg.Protocol.RedeemFeeRateBillionths)
	}
	charged := fee.Sub(acct.RefundFeeAmount)
	if charged.IsNegative() {
		charged = ledger.ZeroAmount()
	}
	acct.BalanceA = acct.BalanceA.Sub(charged)
	acct.RefundFeeAmount = fee

	s.refreshActivation(acct)

	log.Ctx(ctx).Info().
		Str("user", stake.Account).
		Str("stakeId", stake.ID).
		Str("staticPaid", staticPaid.String()).
		Str("feeCharged", charged.String()).
		Str("state", stake.State.String()).
		Msg("stake redeemed")

	s.persistStake(ctx, stake)
	addrs := make([]string, 0, len(touched))
	for addr := range touched {
		addrs = append(addrs, addr)
	}
	s.persistAccounts(ctx, addrs...)
	// Settlement may have drawn on the treasury or the pool.
	s.persistPool(ctx)
	s.publish(ctx, &types.ProtocolEvent{
		Type:    types.EventStakeRedeemed,
		Account: stake.Account,
		StakeID: stake.ID,
		Amount:  stake.Amount.String(),
	})
	return nil
}
