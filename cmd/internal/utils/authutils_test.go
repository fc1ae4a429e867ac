package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func hmacKeyfunc(*jwt.Token) (any, error) {
	return testSecret, nil
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

func TestValidateTokenReadsRole(t *testing.T) {
	v := NewTokenVerifier(hmacKeyfunc)
	exp := time.Now().Add(time.Hour).Unix()

	data, err := v.ValidateToken("Bearer " + signed(t, jwt.MapClaims{
		"sub":     "host-1",
		"email":   "dana@x.com",
		RoleClaim: "host",
		"exp":     exp,
	}))
	require.NoError(t, err)
	assert.Equal(t, "host-1", data.Sub)
	assert.Equal(t, "dana@x.com", data.Email)
	assert.Equal(t, "host", data.Role)
	assert.Equal(t, exp, data.Exp)
}

func TestValidateTokenRejects(t *testing.T) {
	v := NewTokenVerifier(hmacKeyfunc)

	_, err := v.ValidateToken("")
	assert.Error(t, err)

	_, err = v.ValidateToken(signed(t, jwt.MapClaims{"sub": "host-1", "exp": time.Now().Add(-time.Hour).Unix()}))
	assert.Error(t, err)

	_, err = v.ValidateToken(signed(t, jwt.MapClaims{"email": "no-subject@x.com"}))
	assert.Error(t, err)

	var uninitialized *TokenVerifier
	_, err = uninitialized.ValidateToken("Bearer x")
	assert.Error(t, err)
}
