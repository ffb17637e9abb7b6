package commands

import (
	"context"
	"time"

	dombooking "groupbook/internal/domain/booking"
	"groupbook/internal/domain/groupreservation"
	"groupbook/internal/domain/money"
	"groupbook/internal/infra"
	"groupbook/internal/pkg/clock"
	"groupbook/internal/pkg/errs"
	"groupbook/internal/usecase/queries"
	"groupbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrGroupNotFound     = errs.New("group reservation not found")
	ErrNotAccepting      = errs.New("reservation is not accepting participants")
	ErrCapacityExceeded  = errs.New("not enough spots left")
	ErrNotAParticipant   = errs.New("no active booking for user in reservation")
	ErrContention        = errs.New("could not acquire reservation hold, retry")
	ErrCodeGeneration    = errs.New("invite code generation exhausted")
	ErrInvalidTransition = errs.New("illegal status transition")
	ErrDomainValidation  = errs.New("domain validation error")
	ErrDatabaseOperation = errs.New("database operation failed")
)

// createAttempts bounds retries when the code uniqueness probe and the
// insert race another create onto the same code.
const createAttempts = 3

type CreateGroupReservationRequest struct {
	OfferingID        uuid.UUID
	TargetDate        time.Time
	ExpiresAt         *time.Time
	MaxParticipants   int
	MinParticipants   int
	BasePriceCents    int64
	DiscountStepCents int64
}

type JoinResult struct {
	Group   *queries.GroupReservationView
	Booking *queries.BookingView
}

type LeaveResult struct {
	Group   *queries.GroupReservationView
	Booking *queries.BookingView
}

type GroupReservationCommands interface {
	Create(ctx context.Context, req CreateGroupReservationRequest) (*queries.GroupReservationView, error)
	Join(ctx context.Context, groupID, userID uuid.UUID, unitCount int) (*JoinResult, error)
	Leave(ctx context.Context, groupID, userID uuid.UUID, unitCount int) (*LeaveResult, error)
	TransitionStatus(ctx context.Context, groupID uuid.UUID, target groupreservation.Status) error
}

type groupReservationUseCaseImpl struct {
	uow           shared.UnitOfWork
	codeGen       *groupreservation.CodeGenerator
	groupQueries  queries.GroupReservationQueries
	bookingQuerys queries.BookingQueries
	clock         clock.Clock
}

func NewGroupReservationCommands(
	uow shared.UnitOfWork,
	codeGen *groupreservation.CodeGenerator,
	groupQueries queries.GroupReservationQueries,
	bookingQueries queries.BookingQueries,
	clk clock.Clock,
) GroupReservationCommands {
	return &groupReservationUseCaseImpl{
		uow:           uow,
		codeGen:       codeGen,
		groupQueries:  groupQueries,
		bookingQuerys: bookingQueries,
		clock:         clk,
	}
}

func (uc *groupReservationUseCaseImpl) Create(ctx context.Context, req CreateGroupReservationRequest) (*queries.GroupReservationView, error) {
	basePrice, err := money.New(req.BasePriceCents)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	discountStep, err := money.New(req.DiscountStepCents)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var createdID uuid.UUID
	for attempt := 0; attempt < createAttempts; attempt++ {
		err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			code, genErr := uc.codeGen.Generate(ctx, func(ctx context.Context, code string) (bool, error) {
				return tx.GroupReservations().CodeExists(ctx, tx.DB(), code)
			})
			if genErr != nil {
				return genErr
			}

			group, domErr := groupreservation.NewGroupReservation(
				req.OfferingID, code, req.TargetDate, req.ExpiresAt,
				req.MaxParticipants, req.MinParticipants,
				basePrice, discountStep,
				uc.clock.Now(),
			)
			if domErr != nil {
				return errs.Mark(domErr, ErrDomainValidation)
			}

			if createErr := tx.GroupReservations().Create(ctx, tx.DB(), group); createErr != nil {
				return createErr
			}
			createdID = group.ID()
			return nil
		})
		if err == nil {
			break
		}
		// Two creates can probe the same unclaimed code concurrently; only
		// the insert's unique index settles it. Regenerate and try again.
		if !infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, uc.mapError(err)
		}
	}
	if err != nil {
		return nil, errs.Mark(err, ErrCodeGeneration)
	}

	return uc.groupQueries.GetByID(ctx, createdID)
}

// Join is the core atomic operation: exclusive row hold, fresh-state
// precondition checks, price and status recomputation, group update and
// booking insert in one transaction.
func (uc *groupReservationUseCaseImpl) Join(ctx context.Context, groupID, userID uuid.UUID, unitCount int) (*JoinResult, error) {
	var bookingID uuid.UUID

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		group, err := tx.GroupReservations().FindByIDForUpdate(ctx, tx.DB(), groupID)
		if err != nil {
			return err
		}

		now := uc.clock.Now()
		if err := group.AddParticipants(unitCount, now); err != nil {
			return err
		}

		if err := tx.GroupReservations().UpdateFillState(ctx, tx.DB(), group); err != nil {
			return err
		}

		// The booking is confirmed immediately when the group has already
		// reached its activation threshold, otherwise it waits as pending.
		status := dombooking.StatusPending
		if group.Status() == groupreservation.StatusConfirmed || group.Status() == groupreservation.StatusFull {
			status = dombooking.StatusConfirmed
		}

		gid := group.ID()
		bk, err := dombooking.NewBooking(&gid, userID, unitCount, group.CurrentPrice(), status, now)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Bookings().Create(ctx, tx.DB(), bk); err != nil {
			return err
		}
		bookingID = bk.ID()
		return nil
	})
	if err != nil {
		return nil, uc.mapError(err)
	}

	return uc.loadJoinResult(ctx, groupID, userID, bookingID)
}

func (uc *groupReservationUseCaseImpl) Leave(ctx context.Context, groupID, userID uuid.UUID, unitCount int) (*LeaveResult, error) {
	var bookingID uuid.UUID

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		group, err := tx.GroupReservations().FindByIDForUpdate(ctx, tx.DB(), groupID)
		if err != nil {
			return err
		}

		bk, err := tx.Bookings().FindActiveByGroupAndUser(ctx, tx.DB(), groupID, userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrNotAParticipant
			}
			return err
		}

		now := uc.clock.Now()
		if err := group.RemoveParticipants(unitCount, now); err != nil {
			return err
		}
		if err := bk.Cancel(now); err != nil {
			return err
		}

		if err := tx.GroupReservations().UpdateFillState(ctx, tx.DB(), group); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, tx.DB(), bk); err != nil {
			return err
		}
		bookingID = bk.ID()
		return nil
	})
	if err != nil {
		return nil, uc.mapError(err)
	}

	result, err := uc.loadJoinResult(ctx, groupID, userID, bookingID)
	if err != nil {
		return nil, err
	}
	return &LeaveResult{Group: result.Group, Booking: result.Booking}, nil
}

// TransitionStatus is the administrative override used by cancellation flows
// and the sweeper. Forcing the current status again is a no-op so racing
// sweep workers stay idempotent.
func (uc *groupReservationUseCaseImpl) TransitionStatus(ctx context.Context, groupID uuid.UUID, target groupreservation.Status) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		group, err := tx.GroupReservations().FindByIDForUpdate(ctx, tx.DB(), groupID)
		if err != nil {
			return err
		}

		prior := group.Status()
		if err := group.ForceStatus(target, uc.clock.Now()); err != nil {
			return err
		}
		if group.Status() == prior {
			return nil
		}
		return tx.GroupReservations().UpdateFillState(ctx, tx.DB(), group)
	})
	if err != nil {
		// A terminal status refusing another terminal target is a bad
		// transition here, not a join-time rejection.
		if errs.HasAny(err, groupreservation.ErrTerminalStatus) {
			return errs.Mark(err, ErrInvalidTransition)
		}
		return uc.mapError(err)
	}
	return nil
}

// Read-after-write: the transaction committed, so the read store sees the
// fresh state.
func (uc *groupReservationUseCaseImpl) loadJoinResult(ctx context.Context, groupID, userID, bookingID uuid.UUID) (*JoinResult, error) {
	groupView, err := uc.groupQueries.GetByID(ctx, groupID)
	if err != nil {
		return nil, uc.mapError(err)
	}
	bookingView, err := uc.bookingQuerys.GetByID(ctx, userID, bookingID)
	if err != nil {
		return nil, uc.mapError(err)
	}
	return &JoinResult{Group: groupView, Booking: bookingView}, nil
}

func (uc *groupReservationUseCaseImpl) mapError(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrGroupNotFound)
	case infra.IsKind(err, infra.KindLockNotAvailable):
		return errs.Mark(err, ErrContention)
	case errs.HasAny(err,
		groupreservation.ErrNotAcceptingParticipants,
		groupreservation.ErrTerminalStatus):
		return errs.Mark(err, ErrNotAccepting)
	case errs.HasAny(err, groupreservation.ErrCapacityExceeded):
		return errs.Mark(err, ErrCapacityExceeded)
	case errs.HasAny(err, groupreservation.ErrInvalidTransitionTarget):
		return errs.Mark(err, ErrInvalidTransition)
	case errs.HasAny(err, groupreservation.ErrCodeSpaceExhausted):
		return errs.Mark(err, ErrCodeGeneration)
	case errs.HasAny(err,
		groupreservation.ErrInvalidUnitCount,
		groupreservation.ErrInvalidParticipantBounds,
		groupreservation.ErrInvalidBasePrice,
		groupreservation.ErrInvalidDiscountStep):
		return errs.Mark(err, ErrDomainValidation)
	case errs.HasAny(err, ErrNotAParticipant):
		return err
	default:
		return err
	}
}
