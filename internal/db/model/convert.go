package model

import (
	"time"

	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
)

func FromAccount(acct *ledger.Account, now time.Time) *AccountSnapshotDocument {
	doc := &AccountSnapshotDocument{
		Address:               acct.Address,
		Referrer:              acct.Referrer,
		ActiveDirects:         acct.ActiveDirects,
		TeamCount:             acct.TeamCount,
		TotalRevenue:          acct.TotalRevenue.String(),
		CurrentCap:            acct.CurrentCap.String(),
		Exited:                acct.Exited,
		RefundFeeAmount:       acct.RefundFeeAmount.String(),
		TeamTotalVolume:       acct.TeamTotalVolume.String(),
		TeamTotalCap:          acct.TeamTotalCap.String(),
		MaxTicketAmount:       acct.MaxTicketAmount.String(),
		MaxSingleTicketAmount: acct.MaxSingleTicketAmount.String(),
		StakedLiquidity:       acct.StakedLiquidity.String(),
		BalanceA:              acct.BalanceA.String(),
		BalanceB:              acct.BalanceB.String(),
		Active:                acct.Active,
		LastUpdated:           now.Unix(),
	}
	if acct.Ticket != nil {
		doc.TicketID = acct.Ticket.ID
		doc.TicketAmount = acct.Ticket.Amount.String()
		doc.TicketPurchaseTime = acct.Ticket.PurchaseTime.Unix()
		doc.TicketStaked = acct.Ticket.Staked
		doc.TicketExited = acct.Ticket.Exited
	}
	return doc
}

func FromStake(stake *ledger.Stake, now time.Time) *StakeSnapshotDocument {
	doc := &StakeSnapshotDocument{
		StakeID:             stake.ID,
		Account:             stake.Account,
		Amount:              stake.Amount.String(),
		StartTime:           stake.StartTime.Unix(),
		CycleDays:           stake.CycleDays,
		DailyRateBillionths: stake.DailyRateBillionths,
		State:               stake.State.String(),
		Paid:                stake.Paid.String(),
		LastUpdated:         now.Unix(),
	}
	for _, entry := range stake.PendingDiffs {
		doc.PendingDiffs = append(doc.PendingDiffs, PendingDifferentialDocument{
			Ancestor: entry.Ancestor,
			BaseCap:  entry.BaseCap.String(),
		})
	}
	return doc
}
