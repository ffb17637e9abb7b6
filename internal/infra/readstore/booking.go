package readstore

import (
	"context"

	"groupbook/internal/infra"
	"groupbook/internal/infra/db"
	"groupbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingViewSQL = `
SELECT b.id, b.group_reservation_id, g.code, b.user_id, b.unit_count,
	b.total_amount_cents, b.status, b.payment_status, b.created_at
FROM bookings b
LEFT JOIN group_reservations g ON g.id = b.group_reservation_id`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, bookingViewSQL+` WHERE b.id = $1`, id)
	view, err := scanBookingView(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, bookingViewSQL+` WHERE b.user_id = $1 ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	defer rows.Close()

	var views []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return views, nil
}

func scanBookingView(row rowScanner) (*queries.BookingView, error) {
	view := &queries.BookingView{}
	err := row.Scan(
		&view.ID, &view.GroupReservationID, &view.GroupCode, &view.UserID, &view.UnitCount,
		&view.TotalAmountCents, &view.Status, &view.PaymentStatus, &view.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return view, nil
}
