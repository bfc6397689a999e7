package auth

import (
	"strings"
	"testing"
	"time"

	"organizer-portal/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: "test-secret"}})
}

func TestInviteToken(t *testing.T) {
	token, err := GenerateInviteToken("inv_1", "evt_1", time.Now())
	require.NoError(t, err)

	claims, err := ValidateInviteToken(token)
	require.NoError(t, err)
	assert.Equal(t, "inv_1", claims.InvitationID)
	assert.Equal(t, "evt_1", claims.EventID)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestInviteToken_Invalid(t *testing.T) {
	expired, err := GenerateInviteToken("inv_1", "evt_1", time.Now().Add(-31*24*time.Hour))
	require.NoError(t, err)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, InviteClaims{InvitationID: "inv_1"})
	foreign, err := other.SignedString([]byte("another-secret"))
	require.NoError(t, err)

	valid, err := GenerateInviteToken("inv_1", "evt_1", time.Now())
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, InviteClaims{InvitationID: "inv_1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"expired":      expired,
		"wrong secret": foreign,
		"tampered":     foreign[:strings.LastIndex(foreign, ".")] + valid[strings.LastIndex(valid, "."):],
		"garbage":      "not-a-token",
		"alg none":     unsigned,
		"empty":        "",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateInviteToken(token)
			assert.ErrorIs(t, err, ErrInvalidInviteToken)
		})
	}
}

func TestJoinCode(t *testing.T) {
	code, hash, err := NewJoinCode()
	require.NoError(t, err)
	assert.Len(t, code, 8)
	assert.NotContains(t, hash, code)

	assert.True(t, CheckJoinCode(hash, code))
	assert.True(t, CheckJoinCode(hash, " "+strings.ToLower(code)+" "))
	assert.False(t, CheckJoinCode(hash, "WRONG123"))
	assert.False(t, CheckJoinCode("", code))
}
