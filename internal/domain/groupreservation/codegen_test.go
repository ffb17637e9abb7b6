//go:build unit

package groupreservation_test

import (
	"context"
	"strings"
	"testing"

	"groupbook/internal/domain/groupreservation"
	"groupbook/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const codeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

func TestCodeGenerator_Generate(t *testing.T) {
	ctx := context.Background()
	gen := groupreservation.NewCodeGenerator()

	t.Run("produces codes from the unambiguous alphabet", func(t *testing.T) {
		code, err := gen.Generate(ctx, func(_ context.Context, _ string) (bool, error) {
			return false, nil
		})
		require.NoError(t, err)
		assert.Len(t, code, 8)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, r),
				"code contains character outside the alphabet: %q", r)
		}
	})

	t.Run("retries past collisions", func(t *testing.T) {
		collisions := 0
		code, err := gen.Generate(ctx, func(_ context.Context, _ string) (bool, error) {
			if collisions < 3 {
				collisions++
				return true, nil
			}
			return false, nil
		})
		require.NoError(t, err)
		assert.NotEmpty(t, code)
		assert.Equal(t, 3, collisions)
	})

	t.Run("gives up after the attempt bound", func(t *testing.T) {
		probes := 0
		_, err := gen.Generate(ctx, func(_ context.Context, _ string) (bool, error) {
			probes++
			return true, nil
		})
		require.ErrorIs(t, err, groupreservation.ErrCodeSpaceExhausted)
		assert.Equal(t, 10, probes)
	})

	t.Run("propagates probe failures", func(t *testing.T) {
		probeErr := errs.New("connection refused")
		_, err := gen.Generate(ctx, func(_ context.Context, _ string) (bool, error) {
			return false, probeErr
		})
		require.ErrorIs(t, err, probeErr)
	})
}
