package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stakeflow-labs/stakeflow-engine/internal/amm"
	"github.com/stakeflow-labs/stakeflow-engine/internal/db/model"
	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/observability/metrics"
	"github.com/stakeflow-labs/stakeflow-engine/internal/rewards"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

// applyPayment settles one computed reward against the recipient's
// remaining cap. Direct and Level settle fully in asset A; Static and
// Differential settle half in A and half in tokens at the current spot
// price. Returns the cap-clipped amount actually settled.
func (s *Service) applyPayment(ctx context.Context, p rewards.Payment, source, stakeID string) ledger.Amount {
	acct := s.store.Account(p.Account)
	if acct == nil {
		return ledger.ZeroAmount()
	}

	paid, exited := s.engine.PayCapped(acct, p.Amount)
	clipped := p.Amount.Sub(paid)
	metrics.RecordRewardPaid(p.Kind.String(), amountToFloat(paid), amountToFloat(clipped))

	paidA := ledger.ZeroAmount()
	paidB := ledger.ZeroAmount()
	if paid.IsPositive() {
		switch p.Kind {
		case types.RewardDirect, types.RewardLevel:
			acct.BalanceA = acct.BalanceA.Add(paid)
			paidA = paid
		default:
			paidA, paidB = s.settleSplit(ctx, acct, paid)
		}
	}

	doc := &model.RewardRecordDocument{
		ID:        uuid.New().String(),
		Account:   p.Account,
		Source:    source,
		StakeID:   stakeID,
		Kind:      p.Kind.String(),
		Requested: p.Amount.String(),
		Paid:      paid.String(),
		PaidA:     paidA.String(),
		PaidB:     paidB.String(),
		Timestamp: s.clock.Now().Unix(),
	}
	if err := s.persist(ctx, func() error {
		return s.db.SaveRewardRecord(ctx, doc)
	}); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("account", p.Account).Msg("failed to journal reward record")
	}

	s.publish(ctx, &types.ProtocolEvent{
		Type:    types.EventRewardPaid,
		Account: p.Account,
		StakeID: stakeID,
		Kind:    p.Kind.String(),
		Amount:  paidA.String(),
		AmountB: paidB.String(),
	})

	if exited {
		metrics.RecordAccountExited()
		s.publish(ctx, &types.ProtocolEvent{
			Type:    types.EventAccountExited,
			Account: p.Account,
		})
	}
	return paid
}

// settleSplit pays half in asset A and the other half in tokens valued at
// the current spot price. The token leg draws on the protocol treasury;
// any shortfall is synthesized by swapping A through the pool internally.
// If the pool cannot cover the shortfall the whole amount settles in A.
func (s *Service) settleSplit(ctx context.Context, acct *ledger.Account, amount ledger.Amount) (ledger.Amount, ledger.Amount) {
	halfA := amount.QuoRaw(2)
	rest := amount.Sub(halfA)
	tokenB := s.pool.SpotAToB(rest)
	if !tokenB.IsPositive() {
		acct.BalanceA = acct.BalanceA.Add(amount)
		return amount, ledger.ZeroAmount()
	}

	if tokenB.GT(s.treasuryB) {
		short := tokenB.Sub(s.treasuryB)
		if short.GTE(s.pool.ReserveB) {
			acct.BalanceA = acct.BalanceA.Add(amount)
			return amount, ledger.ZeroAmount()
		}
		needIn := amm.GetAmountIn(short, s.pool.ReserveA, s.pool.ReserveB)
		out, err := s.pool.InternalSwapAToB(needIn)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("token leg synthesis failed, settling fully in asset A")
			acct.BalanceA = acct.BalanceA.Add(amount)
			return amount, ledger.ZeroAmount()
		}
		s.treasuryB = s.treasuryB.Add(out)
	}

	s.treasuryB = s.treasuryB.Sub(tokenB)
	acct.BalanceA = acct.BalanceA.Add(halfA)
	acct.BalanceB = acct.BalanceB.Add(tokenB)
	return halfA, tokenB
}
