package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateGroupReservationRequest struct {
	OfferingID        uuid.UUID  `json:"offering_id" binding:"required"`
	TargetDate        time.Time  `json:"target_date" binding:"required"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	MaxParticipants   int        `json:"max_participants" binding:"required,min=1"`
	MinParticipants   int        `json:"min_participants" binding:"required,min=1"`
	BasePriceCents    int64      `json:"base_price_cents" binding:"required,min=1"`
	DiscountStepCents int64      `json:"discount_step_cents" binding:"min=0"`
}

type JoinGroupReservationRequest struct {
	UnitCount int `json:"unit_count" binding:"required,min=1"`
}

type LeaveGroupReservationRequest struct {
	UnitCount int `json:"unit_count" binding:"required,min=1"`
}

type TransitionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=closed cancelled expired"`
}
