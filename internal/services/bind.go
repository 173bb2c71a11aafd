package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

// BindReferrer records the one-time referral edge for user. Team counts of
// every bounded ancestor are bumped here and nowhere else.
func (s *Service) BindReferrer(ctx context.Context, user, referrer string) *types.Error {
	return s.run(ctx, "BindReferrer", func(ctx context.Context) *types.Error {
		if err := s.checkPaused(); err != nil {
			return err
		}
		if err := s.store.BindReferrer(user, referrer); err != nil {
			return err
		}

		log.Ctx(ctx).Info().
			Str("user", user).
			Str("referrer", referrer).
			Msg("referrer bound")

		touched := append([]string{user}, s.store.UplineChain(user, ledger.CycleDetectDepth)...)
		s.persistAccounts(ctx, touched...)
		s.publish(ctx, &types.ProtocolEvent{
			Type:     types.EventReferrerBound,
			Account:  user,
			Referrer: referrer,
		})
		return nil
	})
}
