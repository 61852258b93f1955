package service

import (
	"testing"
	"time"

	"github.com/chronicpal/backend/internal/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateToken(&types.TokenClaims{UserID: userID, Role: types.RolePatient})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, types.RolePatient, claims.Role)
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService("test-secret")
	userID := uuid.New()

	other, err := NewTokenService("other-secret").GenerateToken(&types.TokenClaims{UserID: userID})
	require.NoError(t, err)

	expired, err := svc.GenerateToken(&types.TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	require.NoError(t, err)

	noUser, err := svc.GenerateToken(&types.TokenClaims{Role: types.RolePatient})
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &types.TokenClaims{UserID: userID}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"garbage", "not-a-token", ErrInvalidToken},
		{"wrong secret", other, ErrInvalidToken},
		{"expired", expired, ErrInvalidToken},
		{"alg none", none, ErrInvalidToken},
		{"no user", noUser, ErrMissingUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
