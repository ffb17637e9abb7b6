package response

import (
	"time"

	"groupbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type GroupReservationResponse struct {
	ID                  uuid.UUID  `json:"id"`
	OfferingID          uuid.UUID  `json:"offeringId"`
	Code                string     `json:"code"`
	TargetDate          time.Time  `json:"targetDate"`
	ExpiresAt           *time.Time `json:"expiresAt,omitempty"`
	MaxParticipants     int        `json:"maxParticipants"`
	MinParticipants     int        `json:"minParticipants"`
	CurrentParticipants int        `json:"currentParticipants"`
	RemainingSpots      int        `json:"remainingSpots"`
	BasePriceCents      int64      `json:"basePriceCents"`
	CurrentPriceCents   int64      `json:"currentPriceCents"`
	DiscountStepCents   int64      `json:"discountStepCents"`
	PriceFloorCents     int64      `json:"priceFloorCents"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

type GroupReservationListResponse struct {
	ID                  uuid.UUID `json:"id"`
	OfferingID          uuid.UUID `json:"offeringId"`
	Code                string    `json:"code"`
	TargetDate          time.Time `json:"targetDate"`
	MaxParticipants     int       `json:"maxParticipants"`
	MinParticipants     int       `json:"minParticipants"`
	CurrentParticipants int       `json:"currentParticipants"`
	RemainingSpots      int       `json:"remainingSpots"`
	CurrentPriceCents   int64     `json:"currentPriceCents"`
	Status              string    `json:"status"`
}

type JoinResponse struct {
	Group   *GroupReservationResponse `json:"group"`
	Booking *BookingResponse          `json:"booking"`
}

func FromGroupReservationView(view *queries.GroupReservationView) *GroupReservationResponse {
	var resp GroupReservationResponse
	// Field names match one to one, copier bridges the two shapes.
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromGroupReservationListItem(item *queries.GroupReservationListItem) *GroupReservationListResponse {
	var resp GroupReservationListResponse
	_ = copier.Copy(&resp, item)
	return &resp
}

func FromGroupReservationList(items []*queries.GroupReservationListItem) []*GroupReservationListResponse {
	out := make([]*GroupReservationListResponse, len(items))
	for i, item := range items {
		out[i] = FromGroupReservationListItem(item)
	}
	return out
}
