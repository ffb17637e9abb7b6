package commands

import (
	"context"

	"groupbook/internal/domain/booking"
	"groupbook/internal/infra"
	"groupbook/internal/pkg/clock"
	"groupbook/internal/pkg/errs"
	"groupbook/internal/usecase/queries"
	"groupbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound  = errs.New("booking not found")
	ErrBookingNotOwned  = errs.New("booking belongs to another user")
	ErrInvalidPaymentOp = errs.New("payment state does not allow this operation")
)

type BookingCommands interface {
	MarkPaid(ctx context.Context, actorID, bookingID uuid.UUID) (*queries.BookingView, error)
	MarkRefunded(ctx context.Context, actorID, bookingID uuid.UUID) (*queries.BookingView, error)
}

type bookingUseCaseImpl struct {
	uow           shared.UnitOfWork
	bookingQuerys queries.BookingQueries
	clock         clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, bookingQueries queries.BookingQueries, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{uow: uow, bookingQuerys: bookingQueries, clock: clk}
}

func (uc *bookingUseCaseImpl) MarkPaid(ctx context.Context, actorID, bookingID uuid.UUID) (*queries.BookingView, error) {
	return uc.mutate(ctx, actorID, bookingID, func(bk *booking.Booking) error {
		return bk.MarkPaid(uc.clock.Now())
	})
}

func (uc *bookingUseCaseImpl) MarkRefunded(ctx context.Context, actorID, bookingID uuid.UUID) (*queries.BookingView, error) {
	return uc.mutate(ctx, actorID, bookingID, func(bk *booking.Booking) error {
		return bk.MarkRefunded(uc.clock.Now())
	})
}

func (uc *bookingUseCaseImpl) mutate(ctx context.Context, actorID, bookingID uuid.UUID, op func(*booking.Booking) error) (*queries.BookingView, error) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bk, err := tx.Bookings().FindByID(ctx, tx.DB(), bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if bk.UserID() != actorID {
			return ErrBookingNotOwned
		}
		if err := op(bk); err != nil {
			return errs.Mark(err, ErrInvalidPaymentOp)
		}
		return tx.Bookings().Update(ctx, tx.DB(), bk)
	})
	if err != nil {
		return nil, err
	}
	return uc.bookingQuerys.GetByID(ctx, actorID, bookingID)
}
