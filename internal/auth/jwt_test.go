package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestGenerateAndParseToken(t *testing.T) {
	req := require.New(t)

	token, err := GenerateToken(testSecret, "user-1", "amy@example.com", "student", time.Hour)
	req.NoError(err)

	claims, err := ParseToken(testSecret, token)
	req.NoError(err)
	req.Equal("user-1", claims.UserID)
	req.Equal("amy@example.com", claims.Email)
	req.Equal("student", claims.UserType)
}

func TestParseTokenExpired(t *testing.T) {
	req := require.New(t)

	token, err := GenerateToken(testSecret, "user-1", "amy@example.com", "student", -time.Minute)
	req.NoError(err)

	_, err = ParseToken(testSecret, token)
	req.ErrorIs(err, ErrExpiredToken)
}

func TestParseTokenWrongSecret(t *testing.T) {
	req := require.New(t)

	token, err := GenerateToken(testSecret, "user-1", "amy@example.com", "student", time.Hour)
	req.NoError(err)

	_, err = ParseToken([]byte("another-secret"), token)
	req.ErrorIs(err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken(testSecret, "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashAndCheckPassword(t *testing.T) {
	req := require.New(t)

	hash, err := HashPassword("hunter22")
	req.NoError(err)
	req.NotEqual("hunter22", hash)

	req.True(CheckPassword(hash, "hunter22"))
	req.False(CheckPassword(hash, "hunter23"))
}
