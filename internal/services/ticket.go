package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

// BuyTicket records an activation purchase. A prior ticket whose
// flexibility window elapsed without any liquidity stake is lazily expired
// first; otherwise the purchase accumulates into the current ticket.
// Direct and Level rewards are paid immediately, unconditional on any
// recipient's activation state.
func (s *Service) BuyTicket(ctx context.Context, user string, amount ledger.Amount) *types.Error {
	return s.run(ctx, "BuyTicket", func(ctx context.Context) *types.Error {
		if err := s.checkPaused(); err != nil {
			return err
		}
		if !amount.IsPositive() {
			return types.NewValidationError(types.ZeroAmount, "ticket amount must be positive")
		}
		acct := s.store.Account(user)
		if acct == nil || !acct.HasReferrer() {
			return types.NewPreconditionError(types.NoReferrer, "account %s has no referrer bound", user)
		}
		if acct.Exited {
			return types.NewPreconditionError(types.AlreadyExited, "account %s exhausted its revenue cap", user)
		}

		now := s.clock.Now()
		if acct.Ticket.IsExpired(now, s.cfg.Protocol.TicketFlexWindow) {
			expiredID := acct.Ticket.ID
			acct.Ticket = nil
			s.publish(ctx, &types.ProtocolEvent{
				Type:     types.EventTicketExpired,
				Account:  user,
				TicketID: expiredID,
			})
		}
		if acct.Ticket == nil {
			acct.Ticket = &ledger.Ticket{
				ID:     uuid.New().String(),
				Amount: ledger.ZeroAmount(),
			}
		}
		ticket := acct.Ticket
		ticket.Amount = ticket.Amount.Add(amount)
		ticket.PurchaseTime = now

		acct.MaxTicketAmount = acct.MaxTicketAmount.Add(amount)
		if amount.GT(acct.MaxSingleTicketAmount) {
			// The adequacy test keys off the largest single purchase,
			// never the cumulative sum.
			acct.MaxSingleTicketAmount = amount
		}
		acct.CurrentCap = acct.CurrentCap.Add(amount.MulRaw(s.cfg.Protocol.CapMultiple))

		touched := map[string]bool{user: true}
		for _, ancestor := range s.store.UplineChain(user, ledger.CycleDetectDepth) {
			up := s.store.Account(ancestor)
			up.TeamTotalVolume = up.TeamTotalVolume.Add(amount)
			up.TeamTotalCap = up.TeamTotalCap.Add(amount.MulRaw(s.cfg.Protocol.CapMultiple))
			touched[ancestor] = true
		}

		for _, payment := range s.engine.PurchasePayments(s.store, user, amount) {
			s.applyPayment(ctx, payment, user, "")
			touched[payment.Account] = true
		}

		s.refreshActivation(acct)

		log.Ctx(ctx).Info().
			Str("user", user).
			Str("amount", amount.String()).
			Str("ticketId", ticket.ID).
			Msg("ticket purchased")

		addrs := make([]string, 0, len(touched))
		for addr := range touched {
			addrs = append(addrs, addr)
		}
		s.persistAccounts(ctx, addrs...)
		s.publish(ctx, &types.ProtocolEvent{
			Type:     types.EventTicketPurchased,
			Account:  user,
			TicketID: ticket.ID,
			Amount:   amount.String(),
		})
		return nil
	})
}
