package auth

import (
	"testing"
	"time"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	svc, err := NewTokenService("secret", "lending-core")
	require.NoError(t, err)

	token, err := svc.Mint(entity.Principal{UserID: 42, Role: entity.RoleDeliveryAgent}, time.Now(), time.Hour)
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, entity.Principal{UserID: 42, Role: entity.RoleDeliveryAgent}, claims.Principal())
}

func TestTokenServiceRejects(t *testing.T) {
	svc, err := NewTokenService("secret", "lending-core")
	require.NoError(t, err)

	expired, err := svc.Mint(entity.Principal{UserID: 1, Role: entity.RoleUser}, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)

	other, err := NewTokenService("other-secret", "lending-core")
	require.NoError(t, err)
	forged, err := other.Mint(entity.Principal{UserID: 1, Role: entity.RoleAdmin}, time.Now(), time.Hour)
	require.NoError(t, err)

	wrongIssuer, err := NewTokenService("secret", "someone-else")
	require.NoError(t, err)
	foreign, err := wrongIssuer.Mint(entity.Principal{UserID: 1, Role: entity.RoleUser}, time.Now(), time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, Role: entity.RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: expired},
		{name: "wrong secret", token: forged},
		{name: "wrong issuer", token: foreign},
		{name: "unsigned", token: none},
		{name: "garbage", token: "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Parse(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestMintRejectsInvalidPrincipal(t *testing.T) {
	svc, err := NewTokenService("secret", "")
	require.NoError(t, err)

	_, err = svc.Mint(entity.Principal{UserID: 0, Role: entity.RoleUser}, time.Now(), time.Hour)
	assert.Error(t, err)
	_, err = svc.Mint(entity.Principal{UserID: 1, Role: "ROOT"}, time.Now(), time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService("", "x")
	assert.Error(t, err)
}
