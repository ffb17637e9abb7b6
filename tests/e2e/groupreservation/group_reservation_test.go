//go:build e2e

package groupreservation_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"groupbook/internal/handler/dto/request"
	"groupbook/internal/handler/dto/response"
	"groupbook/internal/handler/middleware"
	"groupbook/tests/common/httptest"
	"groupbook/tests/e2e"
	"groupbook/tests/e2e/common/helper"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	groupReservationsURL = "/api/group-reservations"
	marketplaceURL       = "/api/marketplace/group-reservations"
	bookingsURL          = "/api/bookings"
)

type GroupReservationSuite struct {
	e2e.SharedSuite
}

func (s *GroupReservationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestGroupReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(GroupReservationSuite))
}

func (s *GroupReservationSuite) staffToken() string {
	return helper.IssueToken(s.T(), s.Config.JWT, uuid.New(), middleware.RoleStaff)
}

func (s *GroupReservationSuite) memberToken(userID uuid.UUID) string {
	return helper.IssueToken(s.T(), s.Config.JWT, userID, middleware.RoleMember)
}

func (s *GroupReservationSuite) createGroup(t *testing.T) response.GroupReservationResponse {
	t.Helper()

	expires := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	reqBody := request.CreateGroupReservationRequest{
		OfferingID:        uuid.New(),
		TargetDate:        time.Now().Add(7 * 24 * time.Hour).UTC().Truncate(time.Second),
		ExpiresAt:         &expires,
		MaxParticipants:   10,
		MinParticipants:   4,
		BasePriceCents:    10000,
		DiscountStepCents: 500,
	}

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, groupReservationsURL, reqBody, s.staffToken())
	require.Equal(t, http.StatusCreated, w.Code, "group creation should succeed: %s", w.Body.String())

	var created response.GroupReservationResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	require.Len(t, created.Code, 8)
	require.Equal(t, "open", created.Status)
	return created
}

func (s *GroupReservationSuite) join(t *testing.T, groupID uuid.UUID, userID uuid.UUID, units int) (response.JoinResponse, int) {
	t.Helper()

	url := fmt.Sprintf("%s/%s/join", groupReservationsURL, groupID)
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, url,
		request.JoinGroupReservationRequest{UnitCount: units}, s.memberToken(userID))

	var joined response.JoinResponse
	if w.Code == http.StatusOK {
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &joined))
	}
	return joined, w.Code
}

// =============================================================================
// TestCreateGroupReservation
// =============================================================================

func (s *GroupReservationSuite) TestCreateGroupReservation() {
	s.Run("staff can open a group and fetch it back by id and code", func() {
		t := s.T()
		created := s.createGroup(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			groupReservationsURL+"/"+created.ID.String(), nil, s.memberToken(uuid.New()))
		require.Equal(t, http.StatusOK, w.Code)

		var byID response.GroupReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &byID))

		if diff := cmp.Diff(created, byID, cmpopts.EquateApproxTime(time.Second)); diff != "" {
			t.Errorf("fetched group differs from created group (-created +fetched):\n%s", diff)
		}

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			groupReservationsURL+"/code/"+created.Code, nil, s.memberToken(uuid.New()))
		require.Equal(t, http.StatusOK, w.Code)

		var byCode response.GroupReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &byCode))
		require.Equal(t, created.ID, byCode.ID)
	})

	s.Run("member role cannot open a group", func() {
		t := s.T()

		expires := time.Now().Add(72 * time.Hour)
		reqBody := request.CreateGroupReservationRequest{
			OfferingID:      uuid.New(),
			TargetDate:      time.Now().Add(7 * 24 * time.Hour),
			ExpiresAt:       &expires,
			MaxParticipants: 10,
			MinParticipants: 4,
			BasePriceCents:  10000,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, groupReservationsURL,
			reqBody, s.memberToken(uuid.New()))
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("unauthenticated create is rejected", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, groupReservationsURL,
			request.CreateGroupReservationRequest{}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestJoinLeaveLifecycle
// =============================================================================

func (s *GroupReservationSuite) TestJoinLeaveLifecycle() {
	s.Run("price ladder, activation and leave round trip", func() {
		t := s.T()
		created := s.createGroup(t)

		// First three joins stay pending at descending prices.
		expectedPrices := []int64{10000, 9500, 9000}
		members := make([]uuid.UUID, 0, 5)
		for i, price := range expectedPrices {
			userID := uuid.New()
			members = append(members, userID)
			joined, code := s.join(t, created.ID, userID, 1)
			require.Equal(t, http.StatusOK, code)
			require.Equal(t, i+1, joined.Group.CurrentParticipants)
			require.Equal(t, price, joined.Group.CurrentPriceCents)
			require.Equal(t, "open", joined.Group.Status)
			require.Equal(t, "pending", joined.Booking.Status)
		}

		// The fourth join crosses the minimum and confirms the group.
		fourth := uuid.New()
		members = append(members, fourth)
		joined, code := s.join(t, created.ID, fourth, 1)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "confirmed", joined.Group.Status)
		require.Equal(t, int64(8500), joined.Group.CurrentPriceCents)
		require.Equal(t, "confirmed", joined.Booking.Status)
		require.Equal(t, int64(8500), joined.Booking.TotalAmountCents)

		// A fifth join deepens the discount for itself only.
		fifth := uuid.New()
		joined, code = s.join(t, created.ID, fifth, 1)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, int64(8000), joined.Group.CurrentPriceCents)
		require.Equal(t, int64(8000), joined.Booking.TotalAmountCents)

		// Leaving moves the price back up and cancels the leaver's booking.
		leaveURL := fmt.Sprintf("%s/%s/leave", groupReservationsURL, created.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, leaveURL,
			request.LeaveGroupReservationRequest{UnitCount: 1}, s.memberToken(fifth))
		require.Equal(t, http.StatusOK, w.Code)

		var left response.JoinResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &left))
		require.Equal(t, 4, left.Group.CurrentParticipants)
		require.Equal(t, int64(8500), left.Group.CurrentPriceCents)
		require.Equal(t, "cancelled", left.Booking.Status)

		// Earlier bookings keep the price they locked in.
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, s.memberToken(members[0]))
		require.Equal(t, http.StatusOK, w.Code)
		var bookings []response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &bookings))
		require.Len(t, bookings, 1)
		require.Equal(t, int64(10000), bookings[0].TotalAmountCents)
	})

	s.Run("group fills at capacity and rejects further joins", func() {
		t := s.T()
		created := s.createGroup(t)

		joined, code := s.join(t, created.ID, uuid.New(), 10)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "full", joined.Group.Status)
		require.Equal(t, 0, joined.Group.RemainingSpots)

		_, code = s.join(t, created.ID, uuid.New(), 1)
		require.Equal(t, http.StatusConflict, code)
	})

	s.Run("concurrent joins never exceed capacity", func() {
		t := s.T()
		created := s.createGroup(t)

		const joiners = 15
		tokens := make([]string, joiners)
		for i := range tokens {
			tokens[i] = s.memberToken(uuid.New())
		}

		url := fmt.Sprintf("%s/%s/join", groupReservationsURL, created.ID)
		codes := make(chan int, joiners)
		var wg sync.WaitGroup
		for i := 0; i < joiners; i++ {
			wg.Add(1)
			go func(token string) {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, url,
					request.JoinGroupReservationRequest{UnitCount: 1}, token)
				codes <- w.Code
			}(tokens[i])
		}
		wg.Wait()
		close(codes)

		accepted := 0
		for code := range codes {
			if code == http.StatusOK {
				accepted++
			} else {
				require.Equal(t, http.StatusConflict, code)
			}
		}
		require.Equal(t, 10, accepted)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			groupReservationsURL+"/"+created.ID.String(), nil, tokens[0])
		require.Equal(t, http.StatusOK, w.Code)
		var final response.GroupReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &final))
		require.Equal(t, 10, final.CurrentParticipants)
		require.Equal(t, "full", final.Status)
	})

	s.Run("oversized join is rejected without state change", func() {
		t := s.T()
		created := s.createGroup(t)

		_, code := s.join(t, created.ID, uuid.New(), 11)
		require.Equal(t, http.StatusConflict, code)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			groupReservationsURL+"/"+created.ID.String(), nil, s.memberToken(uuid.New()))
		require.Equal(t, http.StatusOK, w.Code)
		var current response.GroupReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &current))
		require.Equal(t, 0, current.CurrentParticipants)
	})

	s.Run("leave without joining is rejected", func() {
		t := s.T()
		created := s.createGroup(t)

		leaveURL := fmt.Sprintf("%s/%s/leave", groupReservationsURL, created.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, leaveURL,
			request.LeaveGroupReservationRequest{UnitCount: 1}, s.memberToken(uuid.New()))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

// =============================================================================
// TestStatusTransitions
// =============================================================================

func (s *GroupReservationSuite) TestStatusTransitions() {
	s.Run("staff closes a group and joins are refused afterwards", func() {
		t := s.T()
		created := s.createGroup(t)

		statusURL := fmt.Sprintf("%s/%s/status", groupReservationsURL, created.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, statusURL,
			request.TransitionStatusRequest{Status: "closed"}, s.staffToken())
		require.Equal(t, http.StatusNoContent, w.Code)

		_, code := s.join(t, created.ID, uuid.New(), 1)
		require.Equal(t, http.StatusConflict, code)
	})

	s.Run("member role cannot transition status", func() {
		t := s.T()
		created := s.createGroup(t)

		statusURL := fmt.Sprintf("%s/%s/status", groupReservationsURL, created.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, statusURL,
			request.TransitionStatusRequest{Status: "closed"}, s.memberToken(uuid.New()))
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("terminal statuses are sticky", func() {
		t := s.T()
		created := s.createGroup(t)

		statusURL := fmt.Sprintf("%s/%s/status", groupReservationsURL, created.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, statusURL,
			request.TransitionStatusRequest{Status: "cancelled"}, s.staffToken())
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, statusURL,
			request.TransitionStatusRequest{Status: "closed"}, s.staffToken())
		require.Equal(t, http.StatusConflict, w.Code)
	})
}

// =============================================================================
// TestMarketplace
// =============================================================================

func (s *GroupReservationSuite) TestMarketplace() {
	s.Run("anonymous users can browse live groups", func() {
		t := s.T()
		created := s.createGroup(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, marketplaceURL, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var items []response.GroupReservationListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &items))
		require.Len(t, items, 1)
		require.Equal(t, created.ID, items[0].ID)
	})

	s.Run("closed groups drop out of the marketplace", func() {
		t := s.T()
		created := s.createGroup(t)

		statusURL := fmt.Sprintf("%s/%s/status", groupReservationsURL, created.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, statusURL,
			request.TransitionStatusRequest{Status: "closed"}, s.staffToken())
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, marketplaceURL, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var items []response.GroupReservationListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &items))
		require.Empty(t, items)
	})

	s.Run("near threshold filter keeps only groups close to activation", func() {
		t := s.T()
		near := s.createGroup(t)
		for range 3 {
			_, code := s.join(t, near.ID, uuid.New(), 1)
			require.Equal(t, http.StatusOK, code)
		}
		s.createGroup(t) // empty group, 4 away from activation

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, marketplaceURL+"?near_threshold=1", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var items []response.GroupReservationListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &items))
		require.Len(t, items, 1)
		require.Equal(t, near.ID, items[0].ID)
	})
}

// =============================================================================
// TestBookingPayments
// =============================================================================

func (s *GroupReservationSuite) TestBookingPayments() {
	s.Run("owner can capture and refund a booking payment", func() {
		t := s.T()
		created := s.createGroup(t)
		userID := uuid.New()

		joined, code := s.join(t, created.ID, userID, 1)
		require.Equal(t, http.StatusOK, code)

		payURL := fmt.Sprintf("%s/%s/payment", bookingsURL, joined.Booking.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, payURL, nil, s.memberToken(userID))
		require.Equal(t, http.StatusOK, w.Code)

		var paid response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &paid))
		require.Equal(t, "paid", paid.PaymentStatus)

		// Double capture is refused.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, payURL, nil, s.memberToken(userID))
		require.Equal(t, http.StatusConflict, w.Code)

		refundURL := fmt.Sprintf("%s/%s/refund", bookingsURL, joined.Booking.ID)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, refundURL, nil, s.memberToken(userID))
		require.Equal(t, http.StatusOK, w.Code)

		var refunded response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &refunded))
		require.Equal(t, "refunded", refunded.PaymentStatus)
	})

	s.Run("another user cannot touch the booking", func() {
		t := s.T()
		created := s.createGroup(t)

		joined, code := s.join(t, created.ID, uuid.New(), 1)
		require.Equal(t, http.StatusOK, code)

		payURL := fmt.Sprintf("%s/%s/payment", bookingsURL, joined.Booking.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, payURL, nil, s.memberToken(uuid.New()))
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}
