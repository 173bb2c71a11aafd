package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

// AccountView is the read-model projection of one account. Amounts are
// decimal strings, matching the wire convention everywhere else.
type AccountView struct {
	Address         string `json:"address"`
	Referrer        string `json:"referrer,omitempty"`
	ActiveDirects   uint64 `json:"active_directs"`
	TeamCount       uint64 `json:"team_count"`
	Tier            string `json:"tier"`
	TotalRevenue    string `json:"total_revenue"`
	CurrentCap      string `json:"current_cap"`
	Headroom        string `json:"headroom"`
	Exited          bool   `json:"exited"`
	Active          bool   `json:"active"`
	TeamTotalVolume string `json:"team_total_volume"`
	TeamTotalCap    string `json:"team_total_cap"`
	StakedLiquidity string `json:"staked_liquidity"`
	BalanceA        string `json:"balance_a"`
	BalanceB        string `json:"balance_b"`

	TicketID      string     `json:"ticket_id,omitempty"`
	TicketAmount  string     `json:"ticket_amount,omitempty"`
	TicketStaked  bool       `json:"ticket_staked,omitempty"`
	TicketExpired bool       `json:"ticket_expired,omitempty"`
	PurchaseTime  *time.Time `json:"purchase_time,omitempty"`
}

// StakeView is the read-model projection of one stake.
type StakeView struct {
	ID                  string    `json:"id"`
	Account             string    `json:"account"`
	Amount              string    `json:"amount"`
	StartTime           time.Time `json:"start_time"`
	CycleDays           uint32    `json:"cycle_days"`
	DailyRateBillionths int64     `json:"daily_rate_billionths"`
	State               string    `json:"state"`
	ElapsedUnits        uint32    `json:"elapsed_units"`
	Paid                string    `json:"paid"`
	Owed                string    `json:"owed"`
}

// PoolView reports the pool reserves and the current spot valuation of one
// unit of asset A in tokens, scaled by RateScale for precision.
type PoolView struct {
	ReserveA         string `json:"reserve_a"`
	ReserveB         string `json:"reserve_b"`
	BurnedB          string `json:"burned_b"`
	TreasuryB        string `json:"treasury_b"`
	SpotPriceScaled  string `json:"spot_price_scaled"`
	BuyTaxBillionths int64  `json:"buy_tax_billionths"`
	SellTaxBillion   int64  `json:"sell_tax_billionths"`
	LastBurnTime     string `json:"last_burn_time,omitempty"`
	Paused           bool   `json:"paused"`
}

// TierView is one row of the differential tier table.
type TierView struct {
	Name           string `json:"name"`
	MinTeamCount   uint64 `json:"min_team_count"`
	RateBillionths int64  `json:"rate_billionths"`
}

// GetAccount returns the account projection, or a 404 when the address has
// never interacted with the protocol.
func (s *Service) GetAccount(ctx context.Context, address string) (*AccountView, *types.Error) {
	var view *AccountView
	err := s.run(ctx, "GetAccount", func(ctx context.Context) *types.Error {
		acct := s.store.Account(address)
		if acct == nil {
			return types.NewError(http.StatusNotFound, types.AccountNotFound,
				fmt.Errorf("account %s has never interacted with the protocol", address))
		}
		view = s.accountView(acct)
		return nil
	})
	return view, err
}

func (s *Service) accountView(acct *ledger.Account) *AccountView {
	view := &AccountView{
		Address:         acct.Address,
		Referrer:        acct.Referrer,
		ActiveDirects:   acct.ActiveDirects,
		TeamCount:       acct.TeamCount,
		Tier:            s.engine.TierName(acct.TeamCount),
		TotalRevenue:    acct.TotalRevenue.String(),
		CurrentCap:      acct.CurrentCap.String(),
		Headroom:        acct.Headroom().String(),
		Exited:          acct.Exited,
		Active:          acct.Active,
		TeamTotalVolume: acct.TeamTotalVolume.String(),
		TeamTotalCap:    acct.TeamTotalCap.String(),
		StakedLiquidity: acct.StakedLiquidity.String(),
		BalanceA:        acct.BalanceA.String(),
		BalanceB:        acct.BalanceB.String(),
	}
	if acct.Ticket != nil {
		purchase := acct.Ticket.PurchaseTime
		view.TicketID = acct.Ticket.ID
		view.TicketAmount = acct.Ticket.Amount.String()
		view.TicketStaked = acct.Ticket.Staked
		view.TicketExpired = acct.Ticket.IsExpired(s.clock.Now(), s.cfg.Protocol.TicketFlexWindow)
		view.PurchaseTime = &purchase
	}
	return view
}

// GetStakes returns the stakes of one account, newest last.
func (s *Service) GetStakes(ctx context.Context, address string) ([]StakeView, *types.Error) {
	var views []StakeView
	err := s.run(ctx, "GetStakes", func(ctx context.Context) *types.Error {
		now := s.clock.Now()
		for _, stake := range s.store.StakesFor(address) {
			views = append(views, StakeView{
				ID:                  stake.ID,
				Account:             stake.Account,
				Amount:              stake.Amount.String(),
				StartTime:           stake.StartTime,
				CycleDays:           stake.CycleDays,
				DailyRateBillionths: stake.DailyRateBillionths,
				State:               stake.State.String(),
				ElapsedUnits:        stake.ElapsedUnits(now),
				Paid:                stake.Paid.String(),
				Owed:                stake.Owed(now).String(),
			})
		}
		return nil
	})
	return views, err
}

// GetPool reports the pool and treasury state.
func (s *Service) GetPool(ctx context.Context) (*PoolView, *types.Error) {
	var view *PoolView
	err := s.run(ctx, "GetPool", func(ctx context.Context) *types.Error {
		view = &PoolView{
			ReserveA:         s.pool.ReserveA.String(),
			ReserveB:         s.pool.ReserveB.String(),
			BurnedB:          s.pool.BurnedB.String(),
			TreasuryB:        s.treasuryB.String(),
			SpotPriceScaled:  s.pool.SpotAToB(ledger.NewAmount(ledger.RateScale)).String(),
			BuyTaxBillionths: s.pool.BuyTaxBillionths,
			SellTaxBillion:   s.pool.SellTaxBillionths,
			Paused:           s.paused,
		}
		if last := s.burn.LastBurnTime(); !last.IsZero() {
			view.LastBurnTime = last.UTC().Format(time.RFC3339)
		}
		return nil
	})
	return view, err
}

// GetTiers returns the differential tier table currently in force.
func (s *Service) GetTiers(ctx context.Context) ([]TierView, *types.Error) {
	var views []TierView
	err := s.run(ctx, "GetTiers", func(ctx context.Context) *types.Error {
		for _, t := range s.cfg.Protocol.Tiers {
			views = append(views, TierView{
				Name:           t.Name,
				MinTeamCount:   t.MinTeamCount,
				RateBillionths: t.RateBillionths,
			})
		}
		return nil
	})
	return views, err
}
