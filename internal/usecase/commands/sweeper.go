package commands

import (
	"context"
	"log/slog"
	"time"

	"groupbook/internal/domain/groupreservation"
	"groupbook/internal/infra/db"
	"groupbook/internal/pkg/clock"
	"groupbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// sweepBatchLimit caps how many overdue reservations a single sweep picks
// up, so a large backlog is drained across ticks instead of in one burst.
const sweepBatchLimit = 100

type ExpirationSweeper interface {
	ExpireOverdue(ctx context.Context) (int, error)
}

type expirationSweeperImpl struct {
	uow    shared.UnitOfWork
	groups shared.GroupReservationRepository
	clock  clock.Clock
	logger *slog.Logger
}

func NewExpirationSweeper(
	uow shared.UnitOfWork,
	groups shared.GroupReservationRepository,
	clk clock.Clock,
	logger *slog.Logger,
) ExpirationSweeper {
	return &expirationSweeperImpl{uow: uow, groups: groups, clock: clk, logger: logger}
}

// ExpireOverdue finds live reservations whose deadline has passed and
// transitions each to expired in its own transaction. One stuck row never
// blocks the rest of the batch, and a failed item is retried on the next
// tick because listing is driven purely by status and deadline.
func (s *expirationSweeperImpl) ExpireOverdue(ctx context.Context) (int, error) {
	now := s.clock.Now()

	var ids []uuid.UUID
	err := s.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		found, err := s.groups.ListExpiredIDs(ctx, dbtx, now, sweepBatchLimit)
		if err != nil {
			return err
		}
		ids = found
		return nil
	})
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return swept, err
		}
		if err := s.expireOne(ctx, id, now); err != nil {
			s.logger.Warn("failed to expire group reservation",
				slog.String("group_id", id.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		swept++
	}
	return swept, nil
}

func (s *expirationSweeperImpl) expireOne(ctx context.Context, id uuid.UUID, now time.Time) error {
	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		group, err := tx.GroupReservations().FindByIDForUpdate(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		// The row may have filled up or been closed between listing and
		// locking. Only expire what is still live and overdue.
		if !group.IsExpired(now) {
			return nil
		}
		if err := group.ForceStatus(groupreservation.StatusExpired, now); err != nil {
			return err
		}
		return tx.GroupReservations().UpdateFillState(ctx, tx.DB(), group)
	})
}
