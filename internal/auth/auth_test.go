// internal/auth/auth_test.go
package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	Init("test-secret")

	id := uuid.New()
	token, err := CreateSessionToken(id, "tester")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	gotID, gotName, err := ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	assert.Equal(t, "tester", gotName)
}

func TestSessionTokenRejectsTampering(t *testing.T) {
	Init("test-secret")
	token, err := CreateSessionToken(uuid.New(), "tester")
	require.NoError(t, err)

	_, _, err = ParseSessionToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = ParseSessionToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokenRejectsWrongKey(t *testing.T) {
	Init("first-secret")
	token, err := CreateSessionToken(uuid.New(), "tester")
	require.NoError(t, err)

	Init("second-secret")
	_, _, err = ParseSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
