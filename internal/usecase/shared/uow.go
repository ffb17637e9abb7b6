package shared

import (
	"context"
	"time"

	"groupbook/internal/domain/booking"
	"groupbook/internal/domain/groupreservation"
	"groupbook/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in a full read-write transaction with retry on
	// serialization failures. The transaction is the atomic unit of work:
	// every mutation inside commits or none do.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB runs single-query reads using implicit transactions.
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	GroupReservations() GroupReservationRepository
	Bookings() BookingRepository
	DB() db.DBTX
}

type GroupReservationRepository interface {
	Create(ctx context.Context, db db.DBTX, g *groupreservation.GroupReservation) error
	// FindByIDForUpdate acquires the exclusive row hold that serializes all
	// mutations of one reservation. It blocks up to the configured
	// lock_timeout; exceeding it surfaces as KindLockNotAvailable.
	FindByIDForUpdate(ctx context.Context, db db.DBTX, id uuid.UUID) (*groupreservation.GroupReservation, error)
	// UpdateFillState persists participant count, current price, status and
	// updated_at in one statement.
	UpdateFillState(ctx context.Context, db db.DBTX, g *groupreservation.GroupReservation) error
	CodeExists(ctx context.Context, db db.DBTX, code string) (bool, error)
	// ListExpiredIDs returns reservations the sweeper should expire: past
	// their deadline and still open or confirmed (never full).
	ListExpiredIDs(ctx context.Context, db db.DBTX, now time.Time, limit int) ([]uuid.UUID, error)
}

type BookingRepository interface {
	Create(ctx context.Context, db db.DBTX, b *booking.Booking) error
	FindByID(ctx context.Context, db db.DBTX, id uuid.UUID) (*booking.Booking, error)
	// FindActiveByGroupAndUser returns the user's non-cancelled booking in
	// the group, if any.
	FindActiveByGroupAndUser(ctx context.Context, db db.DBTX, groupID, userID uuid.UUID) (*booking.Booking, error)
	// Update persists status and payment status changes; bookings are never
	// deleted.
	Update(ctx context.Context, db db.DBTX, b *booking.Booking) error
}
