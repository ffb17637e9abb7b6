package api

import (
	"errors"
	"net/http"
	"strconv"

	"groupbook/internal/domain/groupreservation"
	reqdto "groupbook/internal/handler/dto/request"
	resdto "groupbook/internal/handler/dto/response"
	"groupbook/internal/handler/middleware"
	"groupbook/internal/usecase/commands"
	"groupbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// retryAfterSeconds is the hint returned with 503 when the row hold could
// not be acquired in time.
const retryAfterSeconds = "1"

type GroupReservationHandler struct {
	commands commands.GroupReservationCommands
	queries  queries.GroupReservationQueries
}

func NewGroupReservationHandler(cmds commands.GroupReservationCommands, qs queries.GroupReservationQueries) *GroupReservationHandler {
	return &GroupReservationHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary Create group reservation
// @Description Open a new collaborative group reservation for an offering
// @Tags group-reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateGroupReservationRequest true "Group reservation request"
// @Success 201 {object} resdto.GroupReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /group-reservations [post]
func (h *GroupReservationHandler) CreateGroupReservation(c *gin.Context) {
	var req reqdto.CreateGroupReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.commands.Create(c.Request.Context(), commands.CreateGroupReservationRequest{
		OfferingID:        req.OfferingID,
		TargetDate:        req.TargetDate,
		ExpiresAt:         req.ExpiresAt,
		MaxParticipants:   req.MaxParticipants,
		MinParticipants:   req.MinParticipants,
		BasePriceCents:    req.BasePriceCents,
		DiscountStepCents: req.DiscountStepCents,
	})
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromGroupReservationView(view))
}

// @Summary Join group reservation
// @Description Join an open group reservation, creating a booking at the current group price
// @Tags group-reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group reservation ID"
// @Param request body reqdto.JoinGroupReservationRequest true "Join request"
// @Success 200 {object} resdto.JoinResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /group-reservations/{id}/join [post]
func (h *GroupReservationHandler) JoinGroupReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid group reservation ID format",
		})
		return
	}

	var req reqdto.JoinGroupReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.commands.Join(c.Request.Context(), groupID, userID, req.UnitCount)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.JoinResponse{
		Group:   resdto.FromGroupReservationView(result.Group),
		Booking: resdto.FromBookingView(result.Booking),
	})
}

// @Summary Leave group reservation
// @Description Release units from a group reservation and cancel the caller's booking
// @Tags group-reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group reservation ID"
// @Param request body reqdto.LeaveGroupReservationRequest true "Leave request"
// @Success 200 {object} resdto.JoinResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /group-reservations/{id}/leave [post]
func (h *GroupReservationHandler) LeaveGroupReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid group reservation ID format",
		})
		return
	}

	var req reqdto.LeaveGroupReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.commands.Leave(c.Request.Context(), groupID, userID, req.UnitCount)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.JoinResponse{
		Group:   resdto.FromGroupReservationView(result.Group),
		Booking: resdto.FromBookingView(result.Booking),
	})
}

// @Summary Transition group reservation status
// @Description Force a group reservation into a terminal status
// @Tags group-reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group reservation ID"
// @Param request body reqdto.TransitionStatusRequest true "Target status"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /group-reservations/{id}/status [post]
func (h *GroupReservationHandler) TransitionStatus(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid group reservation ID format",
		})
		return
	}

	var req reqdto.TransitionStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.commands.TransitionStatus(c.Request.Context(), groupID, groupreservation.Status(req.Status)); err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get group reservation
// @Description Get a group reservation by ID
// @Tags group-reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group reservation ID"
// @Success 200 {object} resdto.GroupReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /group-reservations/{id} [get]
func (h *GroupReservationHandler) GetGroupReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid group reservation ID format",
		})
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromGroupReservationView(view))
}

// @Summary Get group reservation by invite code
// @Description Look up a group reservation by its shareable invite code
// @Tags group-reservations
// @Produce json
// @Security BearerAuth
// @Param code path string true "Invite code"
// @Success 200 {object} resdto.GroupReservationResponse
// @Failure 404 {object} map[string]string
// @Router /group-reservations/code/{code} [get]
func (h *GroupReservationHandler) GetGroupReservationByCode(c *gin.Context) {
	code := c.Param("code")

	view, err := h.queries.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromGroupReservationView(view))
}

// @Summary List group reservations for offering
// @Description List group reservations attached to one offering
// @Tags group-reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offering ID"
// @Success 200 {array} resdto.GroupReservationListResponse
// @Failure 400 {object} map[string]string
// @Router /offerings/{id}/group-reservations [get]
func (h *GroupReservationHandler) ListByOffering(c *gin.Context) {
	offeringID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid offering ID format",
		})
		return
	}

	items, err := h.queries.ListByOffering(c.Request.Context(), offeringID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromGroupReservationList(items))
}

// @Summary Browse joinable group reservations
// @Description Marketplace view of live group reservations, filterable and sortable
// @Tags group-reservations
// @Produce json
// @Param offering_id query string false "Filter by offering"
// @Param near_threshold query int false "Only groups within N joins of activation"
// @Param sort query string false "Sort key: target_date or price"
// @Param limit query int false "Page size"
// @Success 200 {array} resdto.GroupReservationListResponse
// @Failure 400 {object} map[string]string
// @Router /marketplace/group-reservations [get]
func (h *GroupReservationHandler) BrowseMarketplace(c *gin.Context) {
	filter, err := h.parseMarketplaceFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	items, err := h.queries.Browse(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromGroupReservationList(items))
}

func (h *GroupReservationHandler) parseMarketplaceFilter(c *gin.Context) (queries.MarketplaceFilter, error) {
	var filter queries.MarketplaceFilter

	if raw := c.Query("offering_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("invalid offering_id format")
		}
		filter.OfferingID = &id
	}
	if raw := c.Query("near_threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, errors.New("invalid near_threshold value")
		}
		filter.NearThresholdUnits = n
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, errors.New("invalid limit value")
		}
		filter.Limit = n
	}
	filter.SortBy = c.Query("sort")

	return filter, nil
}

func (h *GroupReservationHandler) respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrGroupNotFound), errors.Is(err, queries.ErrGroupReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Group reservation not found",
		})
	case errors.Is(err, commands.ErrNotAccepting):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Group reservation is not accepting participants",
		})
	case errors.Is(err, commands.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Illegal status transition",
		})
	case errors.Is(err, commands.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Not enough spots left",
		})
	case errors.Is(err, commands.ErrNotAParticipant):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "No active booking for this user in the group",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid group reservation parameters",
		})
	case errors.Is(err, commands.ErrContention):
		c.Header("Retry-After", retryAfterSeconds)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Group reservation is busy, retry shortly",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func (h *GroupReservationHandler) respondQueryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrGroupReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Group reservation not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
