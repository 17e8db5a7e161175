package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidtube/accounts/models"
)

const (
	testIssuer        = "vidtube-accounts"
	testAccessSecret  = "access-secret"
	testRefreshSecret = "refresh-secret"
)

func testUser() models.User {
	return models.User{
		UserID:   "0198b1f0-5a6a-7bbb-8ccc-1ddddeeeefff",
		UserName: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Liddell",
	}
}

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	user := testUser()

	signed, err := GenerateAccessToken(testIssuer, user, time.Minute, testAccessSecret)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := ParseAccessToken(signed, testAccessSecret, testIssuer)
	require.NoError(t, err)

	assert.Equal(t, user.UserID, claims.Subject)
	assert.Equal(t, user.UserName, claims.UserName)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.FullName, claims.FullName)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestGenerateRefreshToken_RoundTrip(t *testing.T) {
	user := testUser()

	signed, err := GenerateRefreshToken(testIssuer, user.UserID, 24*time.Hour, testRefreshSecret)
	require.NoError(t, err)

	claims, err := ParseRefreshToken(signed, testRefreshSecret, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, claims.Subject)
}

func TestGenerateRefreshToken_UniquePerIssuance(t *testing.T) {
	// iat/exp resolve to whole seconds, so uniqueness must come from the
	// jti claim: two issuances for the same account within the same
	// second still have to produce distinct tokens
	first, err := GenerateRefreshToken(testIssuer, testUser().UserID, 24*time.Hour, testRefreshSecret)
	require.NoError(t, err)
	second, err := GenerateRefreshToken(testIssuer, testUser().UserID, 24*time.Hour, testRefreshSecret)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	firstClaims, err := ParseRefreshToken(first, testRefreshSecret, testIssuer)
	require.NoError(t, err)
	secondClaims, err := ParseRefreshToken(second, testRefreshSecret, testIssuer)
	require.NoError(t, err)

	assert.NotEmpty(t, firstClaims.ID)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestParseAccessToken_Expired(t *testing.T) {
	signed, err := GenerateAccessToken(testIssuer, testUser(), -time.Minute, testAccessSecret)
	require.NoError(t, err)

	_, err = ParseAccessToken(signed, testAccessSecret, testIssuer)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseAccessToken_BadSignature(t *testing.T) {
	signed, err := GenerateAccessToken(testIssuer, testUser(), time.Minute, testAccessSecret)
	require.NoError(t, err)

	_, err = ParseAccessToken(signed, "other-secret", testIssuer)
	assert.ErrorIs(t, err, ErrTokenBadSignature)
}

func TestParseToken_CrossSecretForgery(t *testing.T) {
	// a refresh token must not verify against the access secret and
	// vice versa: the two token kinds use independent secrets
	refresh, err := GenerateRefreshToken(testIssuer, testUser().UserID, 24*time.Hour, testRefreshSecret)
	require.NoError(t, err)

	_, err = ParseAccessToken(refresh, testAccessSecret, testIssuer)
	assert.ErrorIs(t, err, ErrTokenBadSignature)

	access, err := GenerateAccessToken(testIssuer, testUser(), time.Minute, testAccessSecret)
	require.NoError(t, err)

	_, err = ParseRefreshToken(access, testRefreshSecret, testIssuer)
	assert.ErrorIs(t, err, ErrTokenBadSignature)
}

func TestParseAccessToken_Malformed(t *testing.T) {
	_, err := ParseAccessToken("not.a.token", testAccessSecret, testIssuer)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	_, err = ParseAccessToken("", testAccessSecret, testIssuer)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParseAccessToken_WrongIssuer(t *testing.T) {
	signed, err := GenerateAccessToken("some-other-service", testUser(), time.Minute, testAccessSecret)
	require.NoError(t, err)

	_, err = ParseAccessToken(signed, testAccessSecret, testIssuer)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestGenerateTokens_InvalidParams(t *testing.T) {
	_, err := GenerateAccessToken("", testUser(), time.Minute, testAccessSecret)
	assert.Error(t, err)

	_, err = GenerateAccessToken(testIssuer, models.User{}, time.Minute, testAccessSecret)
	assert.Error(t, err)

	_, err = GenerateRefreshToken(testIssuer, "user-id", 0, testRefreshSecret)
	assert.Error(t, err)

	_, err = GenerateRefreshToken(testIssuer, "user-id", time.Minute, "")
	assert.Error(t, err)
}
