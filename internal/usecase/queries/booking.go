package queries

import (
	"context"
	"time"

	"groupbook/internal/infra"
	"groupbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingAccessDenied = errs.New("booking does not belong to requester")
	ErrBookingViewNotFound = errs.New("booking not found")
)

// BookingView carries everything the payment collaborator needs to initiate
// capture: the booking id and the frozen total.
type BookingView struct {
	ID                 uuid.UUID  `json:"id"`
	GroupReservationID *uuid.UUID `json:"group_reservation_id,omitempty"`
	GroupCode          *string    `json:"group_code,omitempty"`
	UserID             uuid.UUID  `json:"user_id"`
	UnitCount          int        `json:"unit_count"`
	TotalAmountCents   int64      `json:"total_amount_cents"`
	Status             string     `json:"status"`
	PaymentStatus      string     `json:"payment_status"`
	CreatedAt          time.Time  `json:"created_at"`
}

type BookingQueries interface {
	GetByID(ctx context.Context, actorID, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingViewNotFound)
		}
		return nil, err
	}
	if view.UserID != actorID {
		return nil, ErrBookingAccessDenied
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error) {
	return q.store.FindByUser(ctx, userID)
}
