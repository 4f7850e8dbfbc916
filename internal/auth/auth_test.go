package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckToken(t *testing.T) {
	v := NewVerifier("s3cret", "", "")
	assert.True(t, v.CheckToken("s3cret"))
	assert.False(t, v.CheckToken("wrong"))
	assert.False(t, v.CheckToken(""))

	assert.False(t, NewVerifier("", "", "").CheckToken("anything"))
}

func TestCheckTokenHash(t *testing.T) {
	hash, err := HashToken("s3cret")
	require.NoError(t, err)

	v := NewVerifier("", hash, "")
	assert.True(t, v.CheckToken("s3cret"))
	assert.False(t, v.CheckToken("s3cret "))
}

func TestBearerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("jwt-secret", time.Hour)
	token, err := issuer.Issue("ops")
	require.NoError(t, err)

	sub, err := NewVerifier("", "", "jwt-secret").CheckBearer(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", sub)

	_, err = NewVerifier("", "", "other-secret").CheckBearer(token)
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = NewVerifier("", "", "").CheckBearer(token)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestBearerRejectsExpiredAndNonAdmin(t *testing.T) {
	issuer := NewTokenIssuer("jwt-secret", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := issuer.Issue("ops")
	require.NoError(t, err)

	v := NewVerifier("", "", "jwt-secret")
	_, err = v.CheckBearer(expired)
	assert.ErrorIs(t, err, ErrInvalidCredential)

	userToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "someone",
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("jwt-secret"))
	require.NoError(t, err)
	_, err = v.CheckBearer(userToken)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestIssueWithoutSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour).Issue("ops")
	assert.Error(t, err)
}
