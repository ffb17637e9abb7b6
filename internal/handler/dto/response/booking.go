package response

import (
	"time"

	"groupbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                 uuid.UUID  `json:"id"`
	GroupReservationID *uuid.UUID `json:"groupReservationId,omitempty"`
	GroupCode          *string    `json:"groupCode,omitempty"`
	UserID             uuid.UUID  `json:"userId"`
	UnitCount          int        `json:"unitCount"`
	TotalAmountCents   int64      `json:"totalAmountCents"`
	Status             string     `json:"status"`
	PaymentStatus      string     `json:"paymentStatus"`
	CreatedAt          time.Time  `json:"createdAt"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(views))
	for i, v := range views {
		out[i] = FromBookingView(v)
	}
	return out
}
