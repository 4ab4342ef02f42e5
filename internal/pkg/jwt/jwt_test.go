package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := GenerateAccessToken(42, "01711111111", "consumer", "secret", 15)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(tok, "secret")
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, "01711111111", claims.Phone)
	require.Equal(t, "consumer", claims.Role)
	require.Equal(t, "42", claims.Subject)

	_, err = ValidateAccessToken(tok, "other")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExpiredAccessToken(t *testing.T) {
	tok, err := GenerateAccessToken(1, "p", "admin", "secret", -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(tok, "secret")
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshTokenCarriesID(t *testing.T) {
	tok, err := GenerateRefreshToken(7, "abc", "refresh", 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(tok, "refresh")
	require.NoError(t, err)
	require.EqualValues(t, 7, claims.UserID)
	require.Equal(t, "abc", claims.TokenID)
}
