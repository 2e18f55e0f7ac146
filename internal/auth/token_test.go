package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", 24*time.Hour)

	token, exp, err := tm.GenerateToken("user-123", "alice@x.com")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), exp, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.UserID)
	require.Equal(t, "alice@x.com", claims.Email)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	tm := &TokenManager{secret: []byte("k"), ttl: -time.Minute}
	token, _, err := tm.GenerateToken("u1", "u1@x.com")
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenManager("right-secret", time.Hour)
	token, _, err := issuer.GenerateToken("u2", "u2@x.com")
	require.NoError(t, err)

	validator := NewTokenManager("wrong-secret", time.Hour)
	_, err = validator.ParseToken(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_Tampered(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Hour)
	token, _, err := tm.GenerateToken("u3", "u3@x.com")
	require.NoError(t, err)

	// Flip one byte anywhere in the token; the signature check must
	// reject it before any expiry consideration. The final byte is left
	// alone: base64url ignores the trailing bits it encodes.
	for _, i := range []int{0, len(token) / 2, len(token) - 2} {
		raw := []byte(token)
		if raw[i] == 'a' {
			raw[i] = 'b'
		} else {
			raw[i] = 'a'
		}
		_, err := tm.ParseToken(string(raw))
		require.Error(t, err, "tampered at offset %d", i)
		require.NotErrorIs(t, err, ErrTokenExpired)
	}
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Hour)
	for _, tok := range []string{"", "garbage", "not.a.jwt"} {
		_, err := tm.ParseToken(tok)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrTokenInvalid))
	}
}
