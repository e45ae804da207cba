package auth

import (
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giaphaapp/giapha-server/internal/domain"
)

func newTestTokenService(t *testing.T, accessDuration time.Duration) *TokenService {
	t.Helper()

	key := make([]byte, keyBytesSize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	svc, err := NewTokenService(hex.EncodeToString(key), accessDuration, 30*24*time.Hour)
	require.NoError(t, err)
	return svc
}

func testUser() *domain.User {
	u := &domain.User{
		Email:       "binh@example.com",
		Role:        domain.RoleMember,
		DisplayName: "Bình",
	}
	u.ID = "usr-test"
	return u
}

func TestNewTokenService_RejectsBadKeys(t *testing.T) {
	_, err := NewTokenService("short", time.Minute, time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(string(make([]byte, keyHexSize)), time.Minute, time.Hour)
	assert.Error(t, err, "non-hex key should be rejected")
}

func TestAccessToken_RoundTrip(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute)

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr-test", claims.UserID)
	assert.Equal(t, "binh@example.com", claims.Email)
	assert.Equal(t, domain.RoleMember, claims.Role)
	assert.Equal(t, "usr-test", claims.Subject)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute)

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	a := newTestTokenService(t, 15*time.Minute)
	b := newTestTokenService(t, 15*time.Minute)

	token, err := a.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = b.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshToken_HashIsStable(t *testing.T) {
	svc := newTestTokenService(t, time.Minute)

	token, err := svc.GenerateRefreshToken()
	require.NoError(t, err)

	other, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	assert.Equal(t, HashRefreshToken(token), HashRefreshToken(token))
	assert.NotEqual(t, HashRefreshToken(token), HashRefreshToken(other))
	assert.NotContains(t, HashRefreshToken(token), token)
}

func TestPassword_HashAndVerify(t *testing.T) {
	hash, err := HashPassword("family-secret-1")
	require.NoError(t, err)

	ok, err := VerifyPassword(hash, "family-secret-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = VerifyPassword("garbage", "family-secret-1")
	require.NoError(t, err)
	assert.False(t, ok, "malformed hash verifies false, not error")
}

func TestHashPassword_EmptyRejected(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}
