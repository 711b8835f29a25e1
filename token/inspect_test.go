package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	clienterrors "github.com/yogendraft21/insight-code-sub000/internal/errors"
	"github.com/yogendraft21/insight-code-sub000/token"
)

func signedTestToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestInspectExtractsClaims(t *testing.T) {
	expires := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	raw := signedTestToken(t, jwtlib.MapClaims{
		"sub":   "user-1",
		"email": "john.doe@example.com",
		"exp":   expires.Unix(),
		"iat":   expires.Add(-time.Hour).Unix(),
	})

	claims, err := token.Inspect(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "john.doe@example.com", claims.Email)
	require.Equal(t, expires.Unix(), claims.ExpiresAt.Unix())
}

func TestInspectMalformed(t *testing.T) {
	_, err := token.Inspect("not-a-jwt")
	require.ErrorIs(t, err, clienterrors.ErrTokenMalformed)

	_, err = token.Inspect("   ")
	require.ErrorIs(t, err, clienterrors.ErrTokenMalformed)
}

func TestExpiresWithin(t *testing.T) {
	soon := signedTestToken(t, jwtlib.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(30 * time.Second).Unix(),
	})
	later := signedTestToken(t, jwtlib.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	require.True(t, token.ExpiresWithin(soon, time.Minute))
	require.False(t, token.ExpiresWithin(later, time.Minute))

	// No exp claim or malformed token never reports imminent expiry.
	noExp := signedTestToken(t, jwtlib.MapClaims{"sub": "user-1"})
	require.False(t, token.ExpiresWithin(noExp, time.Minute))
	require.False(t, token.ExpiresWithin("garbage", time.Minute))
}
