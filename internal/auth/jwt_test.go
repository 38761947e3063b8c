package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	m := testManager()
	pair, tokenID, err := m.GenerateTokenPair("admin-1", "ops@damda.kr", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenID)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := m.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, "ops@damda.kr", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "damda-admin", claims.Issuer)
}

func TestValidateRefreshToken(t *testing.T) {
	m := testManager()
	pair, tokenID, err := m.GenerateTokenPair("admin-1", "ops@damda.kr", "admin")
	require.NoError(t, err)

	claims, err := m.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := testManager()
	pair, _, err := m.GenerateTokenPair("admin-1", "ops@damda.kr", "admin")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)
	_, err = m.ValidateRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, time.Hour)
	pair, _, err := m.GenerateTokenPair("admin-1", "ops@damda.kr", "admin")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	pair, _, err := testManager().GenerateTokenPair("admin-1", "ops@damda.kr", "admin")
	require.NoError(t, err)

	other := NewJWTManager("different", "different", time.Minute, time.Hour)
	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.Error(t, err)
}
