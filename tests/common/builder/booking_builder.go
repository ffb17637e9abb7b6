//go:build unit || e2e

package builder

import (
	"time"

	dombooking "groupbook/internal/domain/booking"
	"groupbook/internal/domain/money"
	"groupbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	GroupID        *uuid.UUID
	UserID         uuid.UUID
	UnitCount      int
	UnitPriceCents int64
	Status         dombooking.Status
	Now            time.Time
}

func NewBookingBuilder() *BookingBuilder {
	groupID := uuid.New()
	return &BookingBuilder{
		GroupID:        &groupID,
		UserID:         uuid.New(),
		UnitCount:      1,
		UnitPriceCents: 10000,
		Status:         dombooking.StatusPending,
		Now:            time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	unitPrice, err := money.New(b.UnitPriceCents)
	if err != nil {
		return nil, err
	}
	return dombooking.NewBooking(b.GroupID, b.UserID, b.UnitCount, unitPrice, b.Status, b.Now)
}

func (b *BookingBuilder) BuildViewQuery() *queries.BookingView {
	code := "ABCD2345"
	return &queries.BookingView{
		ID:                 uuid.New(),
		GroupReservationID: b.GroupID,
		GroupCode:          &code,
		UserID:             b.UserID,
		UnitCount:          b.UnitCount,
		TotalAmountCents:   b.UnitPriceCents * int64(b.UnitCount),
		Status:             b.Status.String(),
		PaymentStatus:      dombooking.PaymentPending.String(),
		CreatedAt:          b.Now,
	}
}
