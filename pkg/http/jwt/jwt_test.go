package jwt

import (
	"testing"
	"time"

	"github.com/corrigo/corrigo/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("corrigo-test-secret")

func TestGenAndParseToken(t *testing.T) {
	aToken, rToken, err := GenToken("u-1001", testSecret, time.Minute, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, aToken)
	require.NotEmpty(t, rToken)

	claims, err := ParseToken(aToken, string(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "u-1001", claims.UserId)
	assert.Equal(t, "corrigo", claims.Issuer)
}

func TestParseToken_BadSecret(t *testing.T) {
	aToken, _, err := GenToken("u-1001", testSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(aToken, "wrong-secret")
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	aToken, _, err := GenToken("u-1001", testSecret, -time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(aToken, string(testSecret))
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	auth := &http.Auth{
		SecretKey:     string(testSecret),
		AccessExpire:  time.Minute,
		RefreshExpire: time.Hour,
	}

	_, rToken, err := GenToken("u-1001", testSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	pair, err := RefreshToken(auth, "u-1001", rToken)
	require.NoError(t, err)
	require.NotEmpty(t, pair["accessToken"])
	require.NotEmpty(t, pair["refreshToken"])

	claims, err := ParseToken(pair["accessToken"], string(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "u-1001", claims.UserId)
}

func TestRefreshToken_Invalid(t *testing.T) {
	auth := &http.Auth{SecretKey: string(testSecret)}

	_, err := RefreshToken(auth, "u-1001", "not-a-token")
	assert.Error(t, err)
}
