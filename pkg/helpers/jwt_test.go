package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, exp, err := m.Generate("user-1", "a@b.co")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.co", claims.Email)
}

func TestJWTManager_Parse_Failures(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	expired := NewJWTManager("secret", -time.Minute)
	expiredToken, _, err := expired.Generate("user-1", "a@b.co")
	require.NoError(t, err)

	other := NewJWTManager("other-secret", time.Hour)
	forged, _, err := other.Generate("user-1", "a@b.co")
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "user-1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"expired", expiredToken, ErrTokenExpired},
		{"wrong signature", forged, ErrTokenInvalid},
		{"malformed", "not-a-token", ErrTokenInvalid},
		{"none algorithm", unsigned, ErrTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Parse(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
