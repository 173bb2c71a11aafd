package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stakeflow-labs/stakeflow-engine/internal/db"
	"github.com/stakeflow-labs/stakeflow-engine/internal/db/model"
	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

// Restore rebuilds the in-memory ledger from the journaled snapshots.
// Called once at startup, before the service accepts operations. A cold
// database yields an empty ledger, which is a valid starting state.
func (s *Service) Restore(ctx context.Context) *types.Error {
	return s.run(ctx, "Restore", func(ctx context.Context) *types.Error {
		accounts, err := s.db.ListAccountSnapshots(ctx)
		if err != nil {
			return types.NewInternalError(err)
		}
		for _, doc := range accounts {
			restoreAccount(s.store.GetOrCreateAccount(doc.Address), doc)
		}

		stakes, err := s.db.ListStakeSnapshots(ctx)
		if err != nil {
			return types.NewInternalError(err)
		}
		for _, doc := range stakes {
			s.store.PutStake(restoreStake(doc))
		}

		burn, err := s.db.GetLatestBurnRecord(ctx)
		if err == nil && burn != nil {
			s.burn.SetLastBurnTime(time.Unix(burn.Timestamp, 0))
		}

		poolDoc, err := s.db.GetPoolSnapshot(ctx)
		switch {
		case err == nil:
			s.restorePool(poolDoc)
		case !db.IsNotFoundError(err):
			return types.NewInternalError(err)
		}

		log.Ctx(ctx).Info().
			Int("accounts", len(accounts)).
			Int("stakes", len(stakes)).
			Msg("ledger restored from journal")
		return nil
	})
}

// restorePool replaces the config-seeded reserves with the journaled ones,
// keeping wallet credits and pool state conserved across restarts.
func (s *Service) restorePool(doc *model.PoolSnapshotDocument) {
	s.pool.ReserveA = parseAmount(doc.ReserveA)
	s.pool.ReserveB = parseAmount(doc.ReserveB)
	s.pool.BurnedB = parseAmount(doc.BurnedB)
	s.pool.BuyTaxBillionths = doc.BuyTaxBillionths
	s.pool.SellTaxBillionths = doc.SellTaxBillionths
	s.treasuryB = parseAmount(doc.TreasuryB)
	s.burn.SetRate(doc.BurnRateBillionths)
	s.cfg.Swap.BuyTaxBillionths = doc.BuyTaxBillionths
	s.cfg.Swap.SellTaxBillionths = doc.SellTaxBillionths
	s.cfg.Swap.BurnRateBillionths = doc.BurnRateBillionths
	s.wallets = Wallets{Owner: doc.OwnerWallet, Fee: doc.FeeWallet}
	s.paused = doc.Paused
}

func restoreAccount(acct *ledger.Account, doc *model.AccountSnapshotDocument) {
	acct.Referrer = doc.Referrer
	acct.ActiveDirects = doc.ActiveDirects
	acct.TeamCount = doc.TeamCount
	acct.TotalRevenue = parseAmount(doc.TotalRevenue)
	acct.CurrentCap = parseAmount(doc.CurrentCap)
	acct.Exited = doc.Exited
	acct.RefundFeeAmount = parseAmount(doc.RefundFeeAmount)
	acct.TeamTotalVolume = parseAmount(doc.TeamTotalVolume)
	acct.TeamTotalCap = parseAmount(doc.TeamTotalCap)
	acct.MaxTicketAmount = parseAmount(doc.MaxTicketAmount)
	acct.MaxSingleTicketAmount = parseAmount(doc.MaxSingleTicketAmount)
	acct.StakedLiquidity = parseAmount(doc.StakedLiquidity)
	acct.BalanceA = parseAmount(doc.BalanceA)
	acct.BalanceB = parseAmount(doc.BalanceB)
	acct.Active = doc.Active
	if doc.TicketID != "" {
		acct.Ticket = &ledger.Ticket{
			ID:           doc.TicketID,
			Amount:       parseAmount(doc.TicketAmount),
			PurchaseTime: time.Unix(doc.TicketPurchaseTime, 0),
			Staked:       doc.TicketStaked,
			Exited:       doc.TicketExited,
		}
	}
}

func restoreStake(doc *model.StakeSnapshotDocument) *ledger.Stake {
	stake := &ledger.Stake{
		ID:                  doc.StakeID,
		Account:             doc.Account,
		Amount:              parseAmount(doc.Amount),
		StartTime:           time.Unix(doc.StartTime, 0),
		CycleDays:           doc.CycleDays,
		DailyRateBillionths: doc.DailyRateBillionths,
		State:               types.StakeState(doc.State),
		Paid:                parseAmount(doc.Paid),
	}
	for _, entry := range doc.PendingDiffs {
		stake.PendingDiffs = append(stake.PendingDiffs, ledger.DifferentialEntry{
			Ancestor: entry.Ancestor,
			BaseCap:  parseAmount(entry.BaseCap),
		})
	}
	return stake
}
