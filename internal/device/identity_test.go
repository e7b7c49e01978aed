package device

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateID(t *testing.T) {
	t.Run("generated ids are valid v4", func(t *testing.T) {
		id, ok := ValidateID(NewID().String())
		assert.True(t, ok)
		assert.EqualValues(t, 4, id.Version())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, ok := ValidateID("not-a-uuid")
		assert.False(t, ok)
	})

	t.Run("rejects non-v4 uuid", func(t *testing.T) {
		// UUID v1 layout: version nibble is 1.
		_, ok := ValidateID("c232ab00-9414-11ec-b3c8-9f6bdeced846")
		assert.False(t, ok)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, ok := ValidateID("")
		assert.False(t, ok)
	})
}

func TestTokenRoundtrip(t *testing.T) {
	id := NewID()
	secret := "test-secret"

	signed, err := IssueToken(id, secret, time.Hour)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	got, ok := DeviceIDFromToken(token)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
