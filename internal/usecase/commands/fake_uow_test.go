//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	dombooking "groupbook/internal/domain/booking"
	"groupbook/internal/domain/groupreservation"
	"groupbook/internal/infra"
	"groupbook/internal/infra/db"
	"groupbook/internal/usecase/queries"
	"groupbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the database. A single mutex plays
// the part of the per-row exclusive lock: Within holds it for the whole
// callback, so concurrent mutations serialize exactly like FOR UPDATE does.
type fakeStore struct {
	mu       sync.Mutex
	groups   map[uuid.UUID]*groupreservation.GroupReservation
	bookings map[uuid.UUID]*dombooking.Booking
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		groups:   make(map[uuid.UUID]*groupreservation.GroupReservation),
		bookings: make(map[uuid.UUID]*dombooking.Booking),
	}
}

func cloneGroup(g *groupreservation.GroupReservation) *groupreservation.GroupReservation {
	return groupreservation.ReconstructGroupReservation(
		g.ID(), g.OfferingID(), g.Code(), g.TargetDate(), g.ExpiresAt(),
		g.MaxParticipants(), g.MinParticipants(), g.CurrentParticipants(),
		g.BasePrice(), g.CurrentPrice(), g.DiscountStep(), g.PriceFloor(),
		g.Status(), g.CreatedAt(), g.UpdatedAt(),
	)
}

func cloneBooking(b *dombooking.Booking) *dombooking.Booking {
	return dombooking.ReconstructBooking(
		b.ID(), b.GroupID(), b.UserID(), b.UnitCount(), b.TotalAmount(),
		b.Status(), b.PaymentStatus(), b.CreatedAt(), b.UpdatedAt(),
	)
}

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return fn(ctx, nil)
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) GroupReservations() shared.GroupReservationRepository {
	return &fakeGroupRepo{store: t.store}
}

func (t *fakeTx) Bookings() shared.BookingRepository {
	return &fakeBookingRepo{store: t.store}
}

func (t *fakeTx) DB() db.DBTX { return nil }

type fakeGroupRepo struct {
	store *fakeStore
}

func (r *fakeGroupRepo) Create(_ context.Context, _ db.DBTX, g *groupreservation.GroupReservation) error {
	for _, existing := range r.store.groups {
		if existing.Code() == g.Code() {
			return infra.WrapRepoErr("duplicate code", nil, infra.KindDuplicateKey)
		}
	}
	r.store.groups[g.ID()] = cloneGroup(g)
	return nil
}

func (r *fakeGroupRepo) FindByIDForUpdate(_ context.Context, _ db.DBTX, id uuid.UUID) (*groupreservation.GroupReservation, error) {
	g, ok := r.store.groups[id]
	if !ok {
		return nil, infra.WrapRepoErr("group reservation not found", nil, infra.KindNotFound)
	}
	return cloneGroup(g), nil
}

func (r *fakeGroupRepo) UpdateFillState(_ context.Context, _ db.DBTX, g *groupreservation.GroupReservation) error {
	if _, ok := r.store.groups[g.ID()]; !ok {
		return infra.WrapRepoErr("group reservation vanished during update", nil, infra.KindNotFound)
	}
	r.store.groups[g.ID()] = cloneGroup(g)
	return nil
}

func (r *fakeGroupRepo) CodeExists(_ context.Context, _ db.DBTX, code string) (bool, error) {
	for _, g := range r.store.groups {
		if g.Code() == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeGroupRepo) ListExpiredIDs(_ context.Context, _ db.DBTX, now time.Time, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, g := range r.store.groups {
		if g.Status().AcceptsParticipants() && g.ExpiresAt() != nil && !g.ExpiresAt().After(now) {
			ids = append(ids, id)
			if len(ids) >= limit {
				break
			}
		}
	}
	return ids, nil
}

type fakeBookingRepo struct {
	store *fakeStore
}

func (r *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *dombooking.Booking) error {
	r.store.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*dombooking.Booking, error) {
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return cloneBooking(b), nil
}

func (r *fakeBookingRepo) FindActiveByGroupAndUser(_ context.Context, _ db.DBTX, groupID, userID uuid.UUID) (*dombooking.Booking, error) {
	var oldest *dombooking.Booking
	for _, b := range r.store.bookings {
		if b.GroupID() == nil || *b.GroupID() != groupID || b.UserID() != userID {
			continue
		}
		if b.Status() == dombooking.StatusCancelled {
			continue
		}
		if oldest == nil || b.CreatedAt().Before(oldest.CreatedAt()) {
			oldest = b
		}
	}
	if oldest == nil {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return cloneBooking(oldest), nil
}

func (r *fakeBookingRepo) Update(_ context.Context, _ db.DBTX, b *dombooking.Booking) error {
	if _, ok := r.store.bookings[b.ID()]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	r.store.bookings[b.ID()] = cloneBooking(b)
	return nil
}

// Read stores over the same map so read-after-write sees committed state.

type fakeGroupReadStore struct {
	store *fakeStore
}

func (r *fakeGroupReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.GroupReservationView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	g, ok := r.store.groups[id]
	if !ok {
		return nil, infra.WrapRepoErr("group reservation not found", nil, infra.KindNotFound)
	}
	return groupViewOf(g), nil
}

func (r *fakeGroupReadStore) FindByCode(_ context.Context, code string) (*queries.GroupReservationView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, g := range r.store.groups {
		if g.Code() == code {
			return groupViewOf(g), nil
		}
	}
	return nil, infra.WrapRepoErr("group reservation not found", nil, infra.KindNotFound)
}

func (r *fakeGroupReadStore) FindByOffering(_ context.Context, offeringID uuid.UUID) ([]*queries.GroupReservationListItem, error) {
	return nil, nil
}

func (r *fakeGroupReadStore) Browse(_ context.Context, _ queries.MarketplaceFilter) ([]*queries.GroupReservationListItem, error) {
	return nil, nil
}

func groupViewOf(g *groupreservation.GroupReservation) *queries.GroupReservationView {
	return &queries.GroupReservationView{
		ID:                  g.ID(),
		OfferingID:          g.OfferingID(),
		Code:                g.Code(),
		TargetDate:          g.TargetDate(),
		ExpiresAt:           g.ExpiresAt(),
		MaxParticipants:     g.MaxParticipants(),
		MinParticipants:     g.MinParticipants(),
		CurrentParticipants: g.CurrentParticipants(),
		RemainingSpots:      g.RemainingSpots(),
		BasePriceCents:      g.BasePrice().Cents(),
		CurrentPriceCents:   g.CurrentPrice().Cents(),
		DiscountStepCents:   g.DiscountStep().Cents(),
		PriceFloorCents:     g.PriceFloor().Cents(),
		Status:              g.Status().String(),
		CreatedAt:           g.CreatedAt(),
		UpdatedAt:           g.UpdatedAt(),
	}
}

type fakeBookingReadStore struct {
	store *fakeStore
}

func (r *fakeBookingReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return r.bookingViewOf(b), nil
}

func (r *fakeBookingReadStore) FindByUser(_ context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var views []*queries.BookingView
	for _, b := range r.store.bookings {
		if b.UserID() == userID {
			views = append(views, r.bookingViewOf(b))
		}
	}
	return views, nil
}

func (r *fakeBookingReadStore) bookingViewOf(b *dombooking.Booking) *queries.BookingView {
	view := &queries.BookingView{
		ID:                 b.ID(),
		GroupReservationID: b.GroupID(),
		UserID:             b.UserID(),
		UnitCount:          b.UnitCount(),
		TotalAmountCents:   b.TotalAmount().Cents(),
		Status:             b.Status().String(),
		PaymentStatus:      b.PaymentStatus().String(),
		CreatedAt:          b.CreatedAt(),
	}
	if b.GroupID() != nil {
		if g, ok := r.store.groups[*b.GroupID()]; ok {
			code := g.Code()
			view.GroupCode = &code
		}
	}
	return view
}
