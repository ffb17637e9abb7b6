package repository

import (
	"context"
	"time"

	"groupbook/internal/domain/groupreservation"
	"groupbook/internal/domain/money"
	"groupbook/internal/infra"
	"groupbook/internal/infra/db"

	"github.com/google/uuid"
)

type GroupReservationRepository struct{}

func NewGroupReservationRepository() *GroupReservationRepository {
	return &GroupReservationRepository{}
}

const insertGroupReservationSQL = `
INSERT INTO group_reservations (
	id, offering_id, code, target_date, expires_at,
	max_participants, min_participants, current_participants,
	base_price_cents, current_price_cents, discount_step_cents, price_floor_cents,
	status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

func (r *GroupReservationRepository) Create(ctx context.Context, dbtx db.DBTX, g *groupreservation.GroupReservation) error {
	_, err := dbtx.Exec(ctx, insertGroupReservationSQL,
		g.ID(), g.OfferingID(), g.Code(), g.TargetDate(), g.ExpiresAt(),
		g.MaxParticipants(), g.MinParticipants(), g.CurrentParticipants(),
		g.BasePrice().Cents(), g.CurrentPrice().Cents(), g.DiscountStep().Cents(), g.PriceFloor().Cents(),
		g.Status().String(), g.CreatedAt(), g.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create group reservation", err)
	}
	return nil
}

const selectGroupReservationForUpdateSQL = `
SELECT id, offering_id, code, target_date, expires_at,
	max_participants, min_participants, current_participants,
	base_price_cents, current_price_cents, discount_step_cents, price_floor_cents,
	status, created_at, updated_at
FROM group_reservations
WHERE id = $1
FOR UPDATE`

// FindByIDForUpdate blocks on the row lock until the configured lock_timeout
// elapses; a timed-out wait comes back as KindLockNotAvailable.
func (r *GroupReservationRepository) FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*groupreservation.GroupReservation, error) {
	row := dbtx.QueryRow(ctx, selectGroupReservationForUpdateSQL, id)
	g, err := scanGroupReservation(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("group reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock group reservation", err)
	}
	return g, nil
}

const updateFillStateSQL = `
UPDATE group_reservations
SET current_participants = $2, current_price_cents = $3, status = $4, updated_at = $5
WHERE id = $1`

func (r *GroupReservationRepository) UpdateFillState(ctx context.Context, dbtx db.DBTX, g *groupreservation.GroupReservation) error {
	tag, err := dbtx.Exec(ctx, updateFillStateSQL,
		g.ID(), g.CurrentParticipants(), g.CurrentPrice().Cents(), g.Status().String(), g.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update group reservation fill state", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("group reservation vanished during update", nil, infra.KindNotFound)
	}
	return nil
}

func (r *GroupReservationRepository) CodeExists(ctx context.Context, dbtx db.DBTX, code string) (bool, error) {
	var exists bool
	err := dbtx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM group_reservations WHERE code = $1)`, code,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check code uniqueness", err)
	}
	return exists, nil
}

const listExpiredSQL = `
SELECT id
FROM group_reservations
WHERE status IN ('open', 'confirmed') AND expires_at IS NOT NULL AND expires_at <= $1
ORDER BY expires_at
LIMIT $2`

func (r *GroupReservationRepository) ListExpiredIDs(ctx context.Context, dbtx db.DBTX, now time.Time, limit int) ([]uuid.UUID, error) {
	rows, err := dbtx.Query(ctx, listExpiredSQL, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired group reservations", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired reservation id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate expired reservations", err)
	}
	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGroupReservation(row rowScanner) (*groupreservation.GroupReservation, error) {
	var (
		id, offeringID                       uuid.UUID
		code, status                         string
		targetDate, createdAt, updatedAt     time.Time
		expiresAt                            *time.Time
		maxP, minP, currentP                 int
		baseCents, currentCents              int64
		stepCents, floorCents                int64
	)

	err := row.Scan(
		&id, &offeringID, &code, &targetDate, &expiresAt,
		&maxP, &minP, &currentP,
		&baseCents, &currentCents, &stepCents, &floorCents,
		&status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	basePrice, err := money.New(baseCents)
	if err != nil {
		return nil, err
	}
	currentPrice, err := money.New(currentCents)
	if err != nil {
		return nil, err
	}
	discountStep, err := money.New(stepCents)
	if err != nil {
		return nil, err
	}
	priceFloor, err := money.New(floorCents)
	if err != nil {
		return nil, err
	}

	return groupreservation.ReconstructGroupReservation(
		id, offeringID, code, targetDate, expiresAt,
		maxP, minP, currentP,
		basePrice, currentPrice, discountStep, priceFloor,
		groupreservation.Status(status), createdAt, updatedAt,
	), nil
}
