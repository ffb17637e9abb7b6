// Package booking owns the per-participant reservation record: one user's
// claim on units of a group reservation, with the amount frozen at join
// time. Rows are never deleted; cancellation flips status so the payment and
// audit trail survives.
package booking

import (
	"errors"
	"time"

	"groupbook/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrInvalidUnitCount  = errors.New("unit count must be at least 1")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrNotCancellable    = errors.New("booking cannot be cancelled in its current status")
	ErrInvalidPaymentOp  = errors.New("invalid payment status change")
	ErrBookingNotPending = errors.New("booking payment is not pending")
)

type Booking struct {
	id            uuid.UUID
	groupID       *uuid.UUID
	userID        uuid.UUID
	unitCount     int
	totalAmount   money.Money
	status        Status
	paymentStatus PaymentStatus
	createdAt     time.Time
	updatedAt     time.Time
}

// NewBooking freezes totalAmount = unitPrice × unitCount at creation; later
// price changes on the group never reprice an existing booking.
func NewBooking(
	groupID *uuid.UUID,
	userID uuid.UUID,
	unitCount int,
	unitPrice money.Money,
	status Status,
	now time.Time,
) (*Booking, error) {
	if unitCount < 1 {
		return nil, ErrInvalidUnitCount
	}

	return &Booking{
		id:            uuid.New(),
		groupID:       groupID,
		userID:        userID,
		unitCount:     unitCount,
		totalAmount:   unitPrice.Mul(int64(unitCount)),
		status:        status,
		paymentStatus: PaymentPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	groupID *uuid.UUID,
	userID uuid.UUID,
	unitCount int,
	totalAmount money.Money,
	status Status,
	paymentStatus PaymentStatus,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		groupID:       groupID,
		userID:        userID,
		unitCount:     unitCount,
		totalAmount:   totalAmount,
		status:        status,
		paymentStatus: paymentStatus,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (b *Booking) IsActive() bool {
	return b.status == StatusPending || b.status == StatusConfirmed
}

func (b *Booking) Cancel(now time.Time) error {
	switch b.status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrNotCancellable
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

// Confirm follows the group hitting its activation threshold.
func (b *Booking) Confirm(now time.Time) error {
	if b.status != StatusPending {
		return ErrNotCancellable
	}
	b.status = StatusConfirmed
	b.updatedAt = now
	return nil
}

// MarkPaid is driven by the payment collaborator; the engine performs no
// payment I/O of its own.
func (b *Booking) MarkPaid(now time.Time) error {
	if b.paymentStatus != PaymentPending {
		return ErrBookingNotPending
	}
	b.paymentStatus = PaymentPaid
	b.updatedAt = now
	return nil
}

func (b *Booking) MarkRefunded(now time.Time) error {
	if b.paymentStatus != PaymentPaid {
		return ErrInvalidPaymentOp
	}
	b.paymentStatus = PaymentRefunded
	b.updatedAt = now
	return nil
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) GroupID() *uuid.UUID          { return b.groupID }
func (b *Booking) UserID() uuid.UUID            { return b.userID }
func (b *Booking) UnitCount() int               { return b.unitCount }
func (b *Booking) TotalAmount() money.Money     { return b.totalAmount }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
