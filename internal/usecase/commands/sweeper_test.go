//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"groupbook/internal/domain/groupreservation"
	"groupbook/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSweeper(f *commandsFixture) commands.ExpirationSweeper {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return commands.NewExpirationSweeper(
		&fakeUoW{store: f.store},
		&fakeGroupRepo{store: f.store},
		f.clock,
		logger,
	)
}

func TestExpirationSweeper_ExpireOverdue(t *testing.T) {
	ctx := context.Background()

	t.Run("expires overdue open and confirmed groups", func(t *testing.T) {
		f := newCommandsFixture()
		open := f.mustCreate(t)
		confirmed := f.mustCreate(t)
		for i := 0; i < 4; i++ {
			_, err := f.commands.Join(ctx, confirmed.ID, uuid.New(), 1)
			require.NoError(t, err)
		}

		// Past the 72h deadline set at creation.
		f.clock.Advance(73 * time.Hour)

		swept, err := newSweeper(f).ExpireOverdue(ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, swept)
		assert.Equal(t, groupreservation.StatusExpired, f.store.groups[open.ID].Status())
		assert.Equal(t, groupreservation.StatusExpired, f.store.groups[confirmed.ID].Status())
	})

	t.Run("leaves full groups alone", func(t *testing.T) {
		f := newCommandsFixture()
		full := f.mustCreate(t)
		_, err := f.commands.Join(ctx, full.ID, uuid.New(), 10)
		require.NoError(t, err)

		f.clock.Advance(73 * time.Hour)

		swept, err := newSweeper(f).ExpireOverdue(ctx)
		require.NoError(t, err)

		assert.Equal(t, 0, swept)
		assert.Equal(t, groupreservation.StatusFull, f.store.groups[full.ID].Status())
	})

	t.Run("leaves groups before their deadline alone", func(t *testing.T) {
		f := newCommandsFixture()
		group := f.mustCreate(t)

		f.clock.Advance(71 * time.Hour)

		swept, err := newSweeper(f).ExpireOverdue(ctx)
		require.NoError(t, err)

		assert.Equal(t, 0, swept)
		assert.Equal(t, groupreservation.StatusOpen, f.store.groups[group.ID].Status())
	})

	t.Run("second sweep finds nothing", func(t *testing.T) {
		f := newCommandsFixture()
		f.mustCreate(t)
		f.clock.Advance(73 * time.Hour)

		sweeper := newSweeper(f)
		swept, err := sweeper.ExpireOverdue(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, swept)

		swept, err = sweeper.ExpireOverdue(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, swept)
	})

	t.Run("cancelled context stops the batch", func(t *testing.T) {
		f := newCommandsFixture()
		f.mustCreate(t)
		f.clock.Advance(73 * time.Hour)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		swept, err := newSweeper(f).ExpireOverdue(cancelled)
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, swept)
	})
}
