package repository

import (
	"context"
	"time"

	"groupbook/internal/domain/booking"
	"groupbook/internal/domain/money"
	"groupbook/internal/infra"
	"groupbook/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const insertBookingSQL = `
INSERT INTO bookings (
	id, group_reservation_id, user_id, unit_count, total_amount_cents,
	status, payment_status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	_, err := dbtx.Exec(ctx, insertBookingSQL,
		b.ID(), b.GroupID(), b.UserID(), b.UnitCount(), b.TotalAmount().Cents(),
		b.Status().String(), b.PaymentStatus().String(), b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

const selectBookingSQL = `
SELECT id, group_reservation_id, user_id, unit_count, total_amount_cents,
	status, payment_status, created_at, updated_at
FROM bookings`

func (r *BookingRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	row := dbtx.QueryRow(ctx, selectBookingSQL+` WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return b, nil
}

// FindActiveByGroupAndUser picks the user's oldest live booking in the
// group. The parent row lock serializes access, so at most one concurrent
// caller can observe and cancel it.
func (r *BookingRepository) FindActiveByGroupAndUser(ctx context.Context, dbtx db.DBTX, groupID, userID uuid.UUID) (*booking.Booking, error) {
	row := dbtx.QueryRow(ctx, selectBookingSQL+`
WHERE group_reservation_id = $1 AND user_id = $2 AND status <> 'cancelled'
ORDER BY created_at
LIMIT 1`, groupID, userID)
	b, err := scanBooking(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("no active booking for user in group", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find active booking", err)
	}
	return b, nil
}

const updateBookingSQL = `
UPDATE bookings
SET status = $2, payment_status = $3, updated_at = $4
WHERE id = $1`

func (r *BookingRepository) Update(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	tag, err := dbtx.Exec(ctx, updateBookingSQL,
		b.ID(), b.Status().String(), b.PaymentStatus().String(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking vanished during update", nil, infra.KindNotFound)
	}
	return nil
}

func scanBooking(row rowScanner) (*booking.Booking, error) {
	var (
		id, userID           uuid.UUID
		groupID              *uuid.UUID
		unitCount            int
		totalCents           int64
		status, payStatus    string
		createdAt, updatedAt time.Time
	)

	err := row.Scan(&id, &groupID, &userID, &unitCount, &totalCents, &status, &payStatus, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	total, err := money.New(totalCents)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		id, groupID, userID, unitCount, total,
		booking.Status(status), booking.PaymentStatus(payStatus),
		createdAt, updatedAt,
	), nil
}
