package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/stakeflow-labs/stakeflow-engine/internal/config"
	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

func (s *Service) requireOwner(caller string) *types.Error {
	if s.wallets.Owner == "" || caller == s.wallets.Owner {
		return nil
	}
	return types.NewError(http.StatusForbidden, types.Unauthorized,
		fmt.Errorf("caller %s is not the owner wallet", caller))
}

// SetOperationalStatus pauses or resumes all user-facing operations.
// Admin operations stay available while paused so the protocol can be
// reconfigured and resumed.
func (s *Service) SetOperationalStatus(ctx context.Context, caller string, paused bool) *types.Error {
	return s.run(ctx, "SetOperationalStatus", func(ctx context.Context) *types.Error {
		if err := s.requireOwner(caller); err != nil {
			return err
		}
		s.paused = paused
		log.Ctx(ctx).Info().Bool("paused", paused).Msg("operational status changed")
		s.persistPool(ctx)
		return nil
	})
}

// SetWallets rewires the owner and fee wallets.
func (s *Service) SetWallets(ctx context.Context, caller string, wallets Wallets) *types.Error {
	return s.run(ctx, "SetWallets", func(ctx context.Context) *types.Error {
		if err := s.requireOwner(caller); err != nil {
			return err
		}
		s.wallets = wallets
		log.Ctx(ctx).Info().
			Str("owner", wallets.Owner).
			Str("fee", wallets.Fee).
			Msg("wallets updated")
		s.persistPool(ctx)
		return nil
	})
}

// SetDistributionConfig replaces the reward distribution parameters: the
// direct and level rates, the cycle table, and the differential tiers.
// Already-frozen differential entries keep their recorded base caps; only
// future computations see the new rates.
func (s *Service) SetDistributionConfig(ctx context.Context, caller string, protocol config.ProtocolConfig) *types.Error {
	return s.run(ctx, "SetDistributionConfig", func(ctx context.Context) *types.Error {
		if err := s.requireOwner(caller); err != nil {
			return err
		}
		if err := protocol.Validate(); err != nil {
			return types.NewValidationError(types.InvalidConfig, "invalid distribution config: %s", err)
		}
		s.cfg.Protocol = protocol
		s.engine.SetConfig(protocol)
		log.Ctx(ctx).Info().Msg("distribution config replaced")
		return nil
	})
}

// SetLevelConfigs adjusts the per-purchase direct and level rates without
// touching the cycle table or the differential tiers.
func (s *Service) SetLevelConfigs(ctx context.Context, caller string, directRate, levelRate int64) *types.Error {
	return s.run(ctx, "SetLevelConfigs", func(ctx context.Context) *types.Error {
		if err := s.requireOwner(caller); err != nil {
			return err
		}
		next := s.cfg.Protocol
		next.DirectRateBillionths = directRate
		next.LevelRateBillionths = levelRate
		if err := next.Validate(); err != nil {
			return types.NewValidationError(types.InvalidConfig, "invalid level config: %s", err)
		}
		s.cfg.Protocol = next
		s.engine.SetConfig(next)
		log.Ctx(ctx).Info().
			Int64("directRate", directRate).
			Int64("levelRate", levelRate).
			Msg("level configs updated")
		return nil
	})
}

// SetSwapTaxes replaces the pool taxes and the burn rate.
func (s *Service) SetSwapTaxes(ctx context.Context, caller string, buyTax, sellTax, burnRate int64) *types.Error {
	return s.run(ctx, "SetSwapTaxes", func(ctx context.Context) *types.Error {
		if err := s.requireOwner(caller); err != nil {
			return err
		}
		next := s.cfg.Swap
		next.BuyTaxBillionths = buyTax
		next.SellTaxBillionths = sellTax
		next.BurnRateBillionths = burnRate
		if err := next.Validate(); err != nil {
			return types.NewValidationError(types.InvalidConfig, "invalid swap taxes: %s", err)
		}
		s.cfg.Swap = next
		s.pool.BuyTaxBillionths = buyTax
		s.pool.SellTaxBillionths = sellTax
		s.burn.SetRate(burnRate)
		log.Ctx(ctx).Info().
			Int64("buyTax", buyTax).
			Int64("sellTax", sellTax).
			Int64("burnRate", burnRate).
			Msg("swap taxes updated")
		s.persistPool(ctx)
		return nil
	})
}

// AddLiquidity credits both pool reserves from protocol funds.
func (s *Service) AddLiquidity(ctx context.Context, caller string, amountA, amountB ledger.Amount) *types.Error {
	return s.run(ctx, "AddLiquidity", func(ctx context.Context) *types.Error {
		if err := s.requireOwner(caller); err != nil {
			return err
		}
		if err := s.pool.AddLiquidity(amountA, amountB); err != nil {
			return err
		}
		log.Ctx(ctx).Info().
			Str("amountA", amountA.String()).
			Str("amountB", amountB.String()).
			Msg("liquidity added")
		s.persistPool(ctx)
		return nil
	})
}

// FundTreasury credits the protocol token treasury that backs the token
// leg of static and differential settlement.
func (s *Service) FundTreasury(ctx context.Context, caller string, amountB ledger.Amount) *types.Error {
	return s.run(ctx, "FundTreasury", func(ctx context.Context) *types.Error {
		if err := s.requireOwner(caller); err != nil {
			return err
		}
		if !amountB.IsPositive() {
			return types.NewValidationError(types.ZeroAmount, "treasury funding must be positive")
		}
		s.treasuryB = s.treasuryB.Add(amountB)
		log.Ctx(ctx).Info().Str("amountB", amountB.String()).Msg("treasury funded")
		s.persistPool(ctx)
		return nil
	})
}

// WithdrawTreasury moves tokens out of the protocol treasury to the fee
// wallet's ledger balance.
func (s *Service) WithdrawTreasury(ctx context.Context, caller string, amountB ledger.Amount) *types.Error {
	return s.run(ctx, "WithdrawTreasury", func(ctx context.Context) *types.Error {
		if err := s.requireOwner(caller); err != nil {
			return err
		}
		if !amountB.IsPositive() {
			return types.NewValidationError(types.ZeroAmount, "treasury withdrawal must be positive")
		}
		if amountB.GT(s.treasuryB) {
			return types.NewPreconditionError(types.InsufficientLiquidity, "treasury holds %s, requested %s", s.treasuryB, amountB)
		}
		s.treasuryB = s.treasuryB.Sub(amountB)
		target := s.wallets.Fee
		if target == "" {
			target = caller
		}
		acct := s.store.GetOrCreateAccount(target)
		acct.BalanceB = acct.BalanceB.Add(amountB)
		log.Ctx(ctx).Info().
			Str("amountB", amountB.String()).
			Str("target", target).
			Msg("treasury withdrawn")
		s.persistAccounts(ctx, target)
		s.persistPool(ctx)
		return nil
	})
}
