package groupreservation

import (
	"errors"
	"time"

	"groupbook/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrInvalidParticipantBounds = errors.New("min participants must be at least 1 and not exceed max")
	ErrInvalidBasePrice         = errors.New("base price must be positive")
	ErrInvalidDiscountStep      = errors.New("discount step cannot exceed base price")
	ErrInvalidUnitCount         = errors.New("unit count must be at least 1")
	ErrNotAcceptingParticipants = errors.New("reservation is not accepting participants")
	ErrCapacityExceeded         = errors.New("not enough spots left")
	ErrTerminalStatus           = errors.New("reservation is in a terminal status")
	ErrInvalidTransitionTarget  = errors.New("only cancelled, closed or expired may be forced")
)

// priceFloorPercent fixes the minimum unit price at a fraction of the base
// price. Policy constant, never user-supplied, so fill pressure cannot race
// the price to zero.
const priceFloorPercent = 60

// GroupReservation is one shared, fillable slot for an offering on a date.
// The unit price drops as participants join, bounded below by the floor.
type GroupReservation struct {
	id                  uuid.UUID
	offeringID          uuid.UUID
	code                string
	targetDate          time.Time
	expiresAt           *time.Time
	maxParticipants     int
	minParticipants     int
	currentParticipants int
	basePrice           money.Money
	currentPrice        money.Money
	discountStep        money.Money
	priceFloor          money.Money
	status              Status
	createdAt           time.Time
	updatedAt           time.Time
}

func NewGroupReservation(
	offeringID uuid.UUID,
	code string,
	targetDate time.Time,
	expiresAt *time.Time,
	maxParticipants, minParticipants int,
	basePrice, discountStep money.Money,
	now time.Time,
) (*GroupReservation, error) {
	if minParticipants < 1 || maxParticipants < minParticipants {
		return nil, ErrInvalidParticipantBounds
	}
	if basePrice.IsZero() {
		return nil, ErrInvalidBasePrice
	}
	if discountStep.GreaterThan(basePrice) {
		return nil, ErrInvalidDiscountStep
	}

	return &GroupReservation{
		id:              uuid.New(),
		offeringID:      offeringID,
		code:            code,
		targetDate:      targetDate,
		expiresAt:       expiresAt,
		maxParticipants: maxParticipants,
		minParticipants: minParticipants,
		basePrice:       basePrice,
		currentPrice:    basePrice,
		discountStep:    discountStep,
		priceFloor:      basePrice.Percent(priceFloorPercent),
		status:          StatusOpen,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructGroupReservation(
	id, offeringID uuid.UUID,
	code string,
	targetDate time.Time,
	expiresAt *time.Time,
	maxParticipants, minParticipants, currentParticipants int,
	basePrice, currentPrice, discountStep, priceFloor money.Money,
	status Status,
	createdAt, updatedAt time.Time,
) *GroupReservation {
	return &GroupReservation{
		id:                  id,
		offeringID:          offeringID,
		code:                code,
		targetDate:          targetDate,
		expiresAt:           expiresAt,
		maxParticipants:     maxParticipants,
		minParticipants:     minParticipants,
		currentParticipants: currentParticipants,
		basePrice:           basePrice,
		currentPrice:        currentPrice,
		discountStep:        discountStep,
		priceFloor:          priceFloor,
		status:              status,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// AddParticipants claims units of capacity and recomputes price and status.
// Callers must hold the exclusive row lock before invoking this.
func (g *GroupReservation) AddParticipants(units int, now time.Time) error {
	if units < 1 {
		return ErrInvalidUnitCount
	}
	if g.status.IsTerminal() {
		return ErrTerminalStatus
	}
	if !g.status.AcceptsParticipants() {
		return ErrNotAcceptingParticipants
	}
	if g.currentParticipants+units > g.maxParticipants {
		return ErrCapacityExceeded
	}

	g.currentParticipants += units
	g.recompute(now)
	return nil
}

// RemoveParticipants releases units of capacity. Reducing to zero cancels
// the reservation per the transition rule. Price follows the fresh fill
// level, so it may rise back toward base as participants leave.
func (g *GroupReservation) RemoveParticipants(units int, now time.Time) error {
	if units < 1 {
		return ErrInvalidUnitCount
	}
	if g.status.IsTerminal() {
		return ErrTerminalStatus
	}

	g.currentParticipants -= units
	if g.currentParticipants < 0 {
		g.currentParticipants = 0
	}
	g.recompute(now)
	return nil
}

// ForceStatus is the administrative override used by cancellation flows and
// the expiration sweeper. Only terminal targets are legal. Forcing the
// status it already has is a no-op so overlapping sweep runs stay quiet.
func (g *GroupReservation) ForceStatus(target Status, now time.Time) error {
	if !target.IsTerminal() {
		return ErrInvalidTransitionTarget
	}
	if g.status == target {
		return nil
	}
	if g.status.IsTerminal() {
		return ErrTerminalStatus
	}

	g.status = target
	g.updatedAt = now
	return nil
}

func (g *GroupReservation) recompute(now time.Time) {
	if g.currentParticipants == 0 {
		g.currentPrice = g.basePrice
	} else {
		g.currentPrice = ComputePrice(g.basePrice, g.currentParticipants, g.discountStep, g.priceFloor)
	}
	g.status = DeriveStatus(g.currentParticipants, g.minParticipants, g.maxParticipants)
	g.updatedAt = now
}

// IsExpired reports whether the sweeper should pick this reservation up.
// Full reservations are committed and must be cancelled administratively,
// never swept.
func (g *GroupReservation) IsExpired(now time.Time) bool {
	if g.expiresAt == nil {
		return false
	}
	if !g.status.AcceptsParticipants() {
		return false
	}
	return !g.expiresAt.After(now)
}

func (g *GroupReservation) RemainingSpots() int {
	return g.maxParticipants - g.currentParticipants
}

func (g *GroupReservation) ID() uuid.UUID             { return g.id }
func (g *GroupReservation) OfferingID() uuid.UUID     { return g.offeringID }
func (g *GroupReservation) Code() string              { return g.code }
func (g *GroupReservation) TargetDate() time.Time     { return g.targetDate }
func (g *GroupReservation) ExpiresAt() *time.Time     { return g.expiresAt }
func (g *GroupReservation) MaxParticipants() int      { return g.maxParticipants }
func (g *GroupReservation) MinParticipants() int      { return g.minParticipants }
func (g *GroupReservation) CurrentParticipants() int  { return g.currentParticipants }
func (g *GroupReservation) BasePrice() money.Money    { return g.basePrice }
func (g *GroupReservation) CurrentPrice() money.Money { return g.currentPrice }
func (g *GroupReservation) DiscountStep() money.Money { return g.discountStep }
func (g *GroupReservation) PriceFloor() money.Money   { return g.priceFloor }
func (g *GroupReservation) Status() Status            { return g.status }
func (g *GroupReservation) CreatedAt() time.Time      { return g.createdAt }
func (g *GroupReservation) UpdatedAt() time.Time      { return g.updatedAt }
