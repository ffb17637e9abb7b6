//go:build e2e

package helper

import (
	"testing"
	"time"

	"groupbook/internal/pkg/config"
	"groupbook/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// IssueToken mints a signed bearer token for an arbitrary user, so e2e tests
// can act as members or staff without a user store.
func IssueToken(t *testing.T, cfg config.JWTConfig, userID uuid.UUID, role string) string {
	t.Helper()

	token, err := jwt.NewService(cfg.Secret).GenerateToken(userID, role, time.Hour)
	require.NoError(t, err, "failed to issue test token")
	return token
}
