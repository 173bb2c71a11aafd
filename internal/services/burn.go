package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stakeflow-labs/stakeflow-engine/internal/db/model"
	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/observability/metrics"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

// DailyBurn destroys the configured fraction of the token reserve. Anyone
// may call it; the keeper's interval gate makes repeated calls within the
// same window fail TooEarly.
func (s *Service) DailyBurn(ctx context.Context, caller string) (ledger.Amount, *types.Error) {
	burned := ledger.ZeroAmount()
	err := s.run(ctx, "DailyBurn", func(ctx context.Context) *types.Error {
		if err := s.checkPaused(); err != nil {
			return err
		}
		var err *types.Error
		burned, err = s.burn.DailyBurn()
		if err != nil {
			return err
		}

		metrics.RecordTokensBurned(amountToFloat(burned))

		log.Ctx(ctx).Info().
			Str("caller", caller).
			Str("burned", burned.String()).
			Str("reserveB", s.pool.ReserveB.String()).
			Msg("reserve burn executed")

		doc := &model.BurnRecordDocument{
			ID:        uuid.New().String(),
			Amount:    burned.String(),
			ReserveB:  s.pool.ReserveB.String(),
			Timestamp: s.clock.Now().Unix(),
		}
		if err := s.persist(ctx, func() error {
			return s.db.SaveBurnRecord(ctx, doc)
		}); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to journal burn record")
		}

		s.persistPool(ctx)
		s.publish(ctx, &types.ProtocolEvent{
			Type:    types.EventReserveBurned,
			Account: caller,
			Amount:  burned.String(),
		})
		return nil
	})
	return burned, err
}
