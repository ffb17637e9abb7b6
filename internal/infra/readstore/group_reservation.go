package readstore

import (
	"context"
	"strconv"

	"groupbook/internal/infra"
	"groupbook/internal/infra/db"
	"groupbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type GroupReservationReadStore struct {
	db db.DBTX
}

func NewGroupReservationReadStore(dbtx db.DBTX) *GroupReservationReadStore {
	return &GroupReservationReadStore{db: dbtx}
}

const groupReservationViewSQL = `
SELECT id, offering_id, code, target_date, expires_at,
	max_participants, min_participants, current_participants,
	base_price_cents, current_price_cents, discount_step_cents, price_floor_cents,
	status, created_at, updated_at
FROM group_reservations`

func (r *GroupReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.GroupReservationView, error) {
	return r.findOne(ctx, groupReservationViewSQL+` WHERE id = $1`, id)
}

func (r *GroupReservationReadStore) FindByCode(ctx context.Context, code string) (*queries.GroupReservationView, error) {
	return r.findOne(ctx, groupReservationViewSQL+` WHERE code = $1`, code)
}

func (r *GroupReservationReadStore) findOne(ctx context.Context, sql string, arg any) (*queries.GroupReservationView, error) {
	row := r.db.QueryRow(ctx, sql, arg)
	view, err := scanGroupReservationView(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("group reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find group reservation", err)
	}
	return view, nil
}

const groupReservationListSQL = `
SELECT id, offering_id, code, target_date,
	max_participants, min_participants, current_participants,
	current_price_cents, status
FROM group_reservations`

func (r *GroupReservationReadStore) FindByOffering(ctx context.Context, offeringID uuid.UUID) ([]*queries.GroupReservationListItem, error) {
	rows, err := r.db.Query(ctx, groupReservationListSQL+` WHERE offering_id = $1 ORDER BY target_date`, offeringID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list group reservations by offering", err)
	}
	return collectListItems(rows)
}

// Browse is the marketplace projection: joinable reservations only,
// optionally narrowed to one offering or to groups close to activation.
func (r *GroupReservationReadStore) Browse(ctx context.Context, filter queries.MarketplaceFilter) ([]*queries.GroupReservationListItem, error) {
	sql := groupReservationListSQL + ` WHERE status IN ('open', 'confirmed')`
	args := []any{}

	if filter.OfferingID != nil {
		args = append(args, *filter.OfferingID)
		sql += ` AND offering_id = $` + strconv.Itoa(len(args))
	}
	if filter.NearThresholdUnits > 0 {
		args = append(args, filter.NearThresholdUnits)
		sql += ` AND status = 'open' AND min_participants - current_participants <= $` + strconv.Itoa(len(args))
	}

	switch filter.SortBy {
	case queries.SortByPrice:
		sql += ` ORDER BY current_price_cents, target_date`
	default:
		sql += ` ORDER BY target_date, current_price_cents`
	}

	args = append(args, filter.Limit)
	sql += ` LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to browse marketplace", err)
	}
	return collectListItems(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

type rowIterator interface {
	Next() bool
	Scan(dest ...any) error
	Close()
	Err() error
}

func collectListItems(rows rowIterator) ([]*queries.GroupReservationListItem, error) {
	defer rows.Close()

	var items []*queries.GroupReservationListItem
	for rows.Next() {
		item := &queries.GroupReservationListItem{}
		err := rows.Scan(
			&item.ID, &item.OfferingID, &item.Code, &item.TargetDate,
			&item.MaxParticipants, &item.MinParticipants, &item.CurrentParticipants,
			&item.CurrentPriceCents, &item.Status,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan group reservation list item", err)
		}
		item.RemainingSpots = item.MaxParticipants - item.CurrentParticipants
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate group reservations", err)
	}
	return items, nil
}

func scanGroupReservationView(row rowScanner) (*queries.GroupReservationView, error) {
	view := &queries.GroupReservationView{}
	err := row.Scan(
		&view.ID, &view.OfferingID, &view.Code, &view.TargetDate, &view.ExpiresAt,
		&view.MaxParticipants, &view.MinParticipants, &view.CurrentParticipants,
		&view.BasePriceCents, &view.CurrentPriceCents, &view.DiscountStepCents, &view.PriceFloorCents,
		&view.Status, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	view.RemainingSpots = view.MaxParticipants - view.CurrentParticipants
	return view, nil
}
