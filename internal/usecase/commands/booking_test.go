//go:build unit

package commands_test

import (
	"context"
	"testing"

	dombooking "groupbook/internal/domain/booking"
	"groupbook/internal/usecase/commands"
	"groupbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingCommands(f *commandsFixture) commands.BookingCommands {
	return commands.NewBookingCommands(
		&fakeUoW{store: f.store},
		queries.NewBookingQueries(&fakeBookingReadStore{store: f.store}),
		f.clock,
	)
}

func (f *commandsFixture) mustJoin(t *testing.T, userID uuid.UUID) *commands.JoinResult {
	t.Helper()
	group := f.mustCreate(t)
	result, err := f.commands.Join(context.Background(), group.ID, userID, 1)
	require.NoError(t, err)
	return result
}

func TestBookingCommands_MarkPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("captures payment for the owner", func(t *testing.T) {
		f := newCommandsFixture()
		userID := uuid.New()
		joined := f.mustJoin(t, userID)

		view, err := newBookingCommands(f).MarkPaid(ctx, userID, joined.Booking.ID)
		require.NoError(t, err)

		assert.Equal(t, dombooking.PaymentPaid.String(), view.PaymentStatus)
	})

	t.Run("rejects a double capture", func(t *testing.T) {
		f := newCommandsFixture()
		userID := uuid.New()
		joined := f.mustJoin(t, userID)
		bookingCommands := newBookingCommands(f)
		_, err := bookingCommands.MarkPaid(ctx, userID, joined.Booking.ID)
		require.NoError(t, err)

		_, err = bookingCommands.MarkPaid(ctx, userID, joined.Booking.ID)
		require.ErrorIs(t, err, commands.ErrInvalidPaymentOp)
	})

	t.Run("rejects a non-owner", func(t *testing.T) {
		f := newCommandsFixture()
		joined := f.mustJoin(t, uuid.New())

		_, err := newBookingCommands(f).MarkPaid(ctx, uuid.New(), joined.Booking.ID)
		require.ErrorIs(t, err, commands.ErrBookingNotOwned)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newCommandsFixture()

		_, err := newBookingCommands(f).MarkPaid(ctx, uuid.New(), uuid.New())
		require.ErrorIs(t, err, commands.ErrBookingNotFound)
	})
}

func TestBookingCommands_MarkRefunded(t *testing.T) {
	ctx := context.Background()

	t.Run("refunds a captured payment", func(t *testing.T) {
		f := newCommandsFixture()
		userID := uuid.New()
		joined := f.mustJoin(t, userID)
		bookingCommands := newBookingCommands(f)
		_, err := bookingCommands.MarkPaid(ctx, userID, joined.Booking.ID)
		require.NoError(t, err)

		view, err := bookingCommands.MarkRefunded(ctx, userID, joined.Booking.ID)
		require.NoError(t, err)

		assert.Equal(t, dombooking.PaymentRefunded.String(), view.PaymentStatus)
	})

	t.Run("rejects a refund before capture", func(t *testing.T) {
		f := newCommandsFixture()
		userID := uuid.New()
		joined := f.mustJoin(t, userID)

		_, err := newBookingCommands(f).MarkRefunded(ctx, userID, joined.Booking.ID)
		require.ErrorIs(t, err, commands.ErrInvalidPaymentOp)
	})
}
