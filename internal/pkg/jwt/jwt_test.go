package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workhive-crm/crm-backend-go/internal/domain/user"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret-key", "15m")

	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "ana@example.com", user.RoleManager)

	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	// The verifier middleware reads these claims, so the minted token must
	// round-trip through the same JWTAuth key setup.
	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "ana@example.com", claims["email"])
	assert.Equal(t, "manager", claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret-key", "not-a-duration")

	_, _, err := svc.GenerateAccessToken("user-1", "ana@example.com", user.RoleMember)

	assert.Error(t, err)
}
