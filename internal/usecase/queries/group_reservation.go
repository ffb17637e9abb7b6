package queries

import (
	"context"
	"time"

	"groupbook/internal/infra"
	"groupbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrGroupReservationNotFound = errs.New("group reservation not found")

// Read models (DTO for the read side)
type GroupReservationView struct {
	ID                  uuid.UUID  `json:"id"`
	OfferingID          uuid.UUID  `json:"offering_id"`
	Code                string     `json:"code"`
	TargetDate          time.Time  `json:"target_date"`
	ExpiresAt           *time.Time `json:"expires_at,omitempty"`
	MaxParticipants     int        `json:"max_participants"`
	MinParticipants     int        `json:"min_participants"`
	CurrentParticipants int        `json:"current_participants"`
	RemainingSpots      int        `json:"remaining_spots"`
	BasePriceCents      int64      `json:"base_price_cents"`
	CurrentPriceCents   int64      `json:"current_price_cents"`
	DiscountStepCents   int64      `json:"discount_step_cents"`
	PriceFloorCents     int64      `json:"price_floor_cents"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type GroupReservationListItem struct {
	ID                  uuid.UUID `json:"id"`
	OfferingID          uuid.UUID `json:"offering_id"`
	Code                string    `json:"code"`
	TargetDate          time.Time `json:"target_date"`
	MaxParticipants     int       `json:"max_participants"`
	MinParticipants     int       `json:"min_participants"`
	CurrentParticipants int       `json:"current_participants"`
	RemainingSpots      int       `json:"remaining_spots"`
	CurrentPriceCents   int64     `json:"current_price_cents"`
	Status              string    `json:"status"`
}

const (
	SortByTargetDate = "target_date"
	SortByPrice      = "price"
)

// MarketplaceFilter drives the derived browse projection. It is a pure read
// path over the same rows and carries no invariants of its own.
type MarketplaceFilter struct {
	OfferingID *uuid.UUID
	// NearThresholdUnits keeps only reservations within that many joins of
	// activation (0 means no filter).
	NearThresholdUnits int
	SortBy             string
	Limit              int
}

type GroupReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*GroupReservationView, error)
	GetByCode(ctx context.Context, code string) (*GroupReservationView, error)
	ListByOffering(ctx context.Context, offeringID uuid.UUID) ([]*GroupReservationListItem, error)
	Browse(ctx context.Context, filter MarketplaceFilter) ([]*GroupReservationListItem, error)
}

type GroupReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*GroupReservationView, error)
	FindByCode(ctx context.Context, code string) (*GroupReservationView, error)
	FindByOffering(ctx context.Context, offeringID uuid.UUID) ([]*GroupReservationListItem, error)
	Browse(ctx context.Context, filter MarketplaceFilter) ([]*GroupReservationListItem, error)
}

type groupReservationQueriesImpl struct {
	store GroupReservationReadStore
}

func NewGroupReservationQueries(store GroupReservationReadStore) GroupReservationQueries {
	return &groupReservationQueriesImpl{store: store}
}

func (q *groupReservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*GroupReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrGroupReservationNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *groupReservationQueriesImpl) GetByCode(ctx context.Context, code string) (*GroupReservationView, error) {
	view, err := q.store.FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrGroupReservationNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *groupReservationQueriesImpl) ListByOffering(ctx context.Context, offeringID uuid.UUID) ([]*GroupReservationListItem, error) {
	return q.store.FindByOffering(ctx, offeringID)
}

func (q *groupReservationQueriesImpl) Browse(ctx context.Context, filter MarketplaceFilter) ([]*GroupReservationListItem, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	if filter.SortBy != SortByPrice {
		filter.SortBy = SortByTargetDate
	}
	return q.store.Browse(ctx, filter)
}
