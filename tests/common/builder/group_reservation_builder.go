//go:build unit || e2e

package builder

import (
	"time"

	domgr "groupbook/internal/domain/groupreservation"
	"groupbook/internal/domain/money"
	reqdto "groupbook/internal/handler/dto/request"
	"groupbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type GroupReservationBuilder struct {
	OfferingID        uuid.UUID
	Code              string
	TargetDate        time.Time
	ExpiresAt         *time.Time
	MaxParticipants   int
	MinParticipants   int
	BasePriceCents    int64
	DiscountStepCents int64
	Now               time.Time
}

func NewGroupReservationBuilder() *GroupReservationBuilder {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expires := now.Add(72 * time.Hour)
	return &GroupReservationBuilder{
		OfferingID:        uuid.New(),
		Code:              "ABCD2345",
		TargetDate:        now.Add(7 * 24 * time.Hour),
		ExpiresAt:         &expires,
		MaxParticipants:   10,
		MinParticipants:   4,
		BasePriceCents:    10000,
		DiscountStepCents: 500,
		Now:               now,
	}
}

func (b *GroupReservationBuilder) With(mutate func(*GroupReservationBuilder)) *GroupReservationBuilder {
	mutate(b)
	return b
}

func (b *GroupReservationBuilder) BuildDomain() (*domgr.GroupReservation, error) {
	basePrice, err := money.New(b.BasePriceCents)
	if err != nil {
		return nil, err
	}
	discountStep, err := money.New(b.DiscountStepCents)
	if err != nil {
		return nil, err
	}
	return domgr.NewGroupReservation(
		b.OfferingID, b.Code, b.TargetDate, b.ExpiresAt,
		b.MaxParticipants, b.MinParticipants,
		basePrice, discountStep, b.Now,
	)
}

func (b *GroupReservationBuilder) BuildCreateRequestDTO() reqdto.CreateGroupReservationRequest {
	return reqdto.CreateGroupReservationRequest{
		OfferingID:        b.OfferingID,
		TargetDate:        b.TargetDate,
		ExpiresAt:         b.ExpiresAt,
		MaxParticipants:   b.MaxParticipants,
		MinParticipants:   b.MinParticipants,
		BasePriceCents:    b.BasePriceCents,
		DiscountStepCents: b.DiscountStepCents,
	}
}

func (b *GroupReservationBuilder) BuildViewQuery() *queries.GroupReservationView {
	return &queries.GroupReservationView{
		ID:                  uuid.New(),
		OfferingID:          b.OfferingID,
		Code:                b.Code,
		TargetDate:          b.TargetDate,
		ExpiresAt:           b.ExpiresAt,
		MaxParticipants:     b.MaxParticipants,
		MinParticipants:     b.MinParticipants,
		CurrentParticipants: 0,
		RemainingSpots:      b.MaxParticipants,
		BasePriceCents:      b.BasePriceCents,
		CurrentPriceCents:   b.BasePriceCents,
		DiscountStepCents:   b.DiscountStepCents,
		PriceFloorCents:     b.BasePriceCents * 60 / 100,
		Status:              domgr.StatusOpen.String(),
		CreatedAt:           b.Now,
		UpdatedAt:           b.Now,
	}
}
