package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", 1)

	token, err := m.Generate("GHS", "STF001", "staff")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, "GHS", claims.SchoolCode)
	assert.Equal(t, "STF001", claims.UserID)
	assert.Equal(t, "staff", claims.Kind)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", 1).Generate("GHS", "STF001", "staff")
	require.NoError(t, err)

	claims, err := NewTokenManager("secret-b", 1).Validate(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	m := &TokenManager{secret: []byte("test-secret"), ttl: -time.Hour}

	token, err := m.Generate("GHS", "STF001", "staff")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestTokenManager_Garbage(t *testing.T) {
	m := NewTokenManager("test-secret", 1)

	claims, err := m.Validate("not.a.token")
	assert.Nil(t, claims)
	assert.Error(t, err)
}
