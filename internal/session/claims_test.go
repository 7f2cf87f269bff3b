package session_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"taskman/internal/session"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-key"))
	require.NoError(t, err)
	return tok
}

func TestDecodeClaims(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	tok := signed(t, jwt.MapClaims{
		"username": "alice",
		"email":    "alice@example.com",
		"exp":      exp.Unix(),
	})

	user, err := session.DecodeClaims(tok)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "alice@example.com", user.Email)
	require.True(t, exp.Equal(user.ExpiresAt))
}

func TestDecodeClaims_ExpiredStillDecodes(t *testing.T) {
	tok := signed(t, jwt.MapClaims{
		"username": "alice",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})

	user, err := session.DecodeClaims(tok)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
}

func TestDecodeClaims_NoUsername(t *testing.T) {
	tok := signed(t, jwt.MapClaims{"email": "alice@example.com"})

	_, err := session.DecodeClaims(tok)
	require.ErrorIs(t, err, session.ErrNoUsername)
}

func TestDecodeClaims_Garbage(t *testing.T) {
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := session.DecodeClaims(tok)
		require.Error(t, err, tok)
	}
}
