package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/stakeflow-labs/stakeflow-engine/internal/amm"
	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/observability/metrics"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

// SwapAToB buys tokens: the full input enters the curve, the buy tax is
// burned out of the gross output.
func (s *Service) SwapAToB(ctx context.Context, user string, amountIn ledger.Amount) (amm.SwapResult, *types.Error) {
	return s.swap(ctx, "SwapAToB", user, amountIn, s.pool.SwapAToB)
}

// SwapBToA sells tokens: the sell tax is burned off the input before the
// curve sees it.
func (s *Service) SwapBToA(ctx context.Context, user string, amountIn ledger.Amount) (amm.SwapResult, *types.Error) {
	return s.swap(ctx, "SwapBToA", user, amountIn, s.pool.SwapBToA)
}

func (s *Service) swap(
	ctx context.Context,
	direction string,
	user string,
	amountIn ledger.Amount,
	execute func(ledger.Amount) (amm.SwapResult, *types.Error),
) (amm.SwapResult, *types.Error) {
	var result amm.SwapResult
	err := s.run(ctx, direction, func(ctx context.Context) *types.Error {
		if err := s.checkPaused(); err != nil {
			return err
		}
		var err *types.Error
		result, err = execute(amountIn)
		if err != nil {
			return err
		}

		acct := s.store.GetOrCreateAccount(user)
		if direction == "SwapAToB" {
			acct.BalanceA = acct.BalanceA.Sub(result.AmountIn)
			acct.BalanceB = acct.BalanceB.Add(result.AmountOut)
		} else {
			acct.BalanceB = acct.BalanceB.Sub(result.AmountIn)
			acct.BalanceA = acct.BalanceA.Add(result.AmountOut)
		}

		metrics.RecordSwapVolume(direction, amountToFloat(result.AmountIn))
		metrics.RecordTokensBurned(amountToFloat(result.Burned))

		log.Ctx(ctx).Info().
			Str("user", user).
			Str("amountIn", result.AmountIn.String()).
			Str("amountOut", result.AmountOut.String()).
			Str("burned", result.Burned.String()).
			Msg("swap executed")

		s.persistAccounts(ctx, user)
		s.persistPool(ctx)
		s.publish(ctx, &types.ProtocolEvent{
			Type:    types.EventSwapExecuted,
			Account: user,
			Kind:    direction,
			Amount:  result.AmountIn.String(),
			AmountB: result.AmountOut.String(),
		})
		return nil
	})
	return result, err
}
