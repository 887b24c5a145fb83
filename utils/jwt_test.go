package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mYstoRi/medcontest/config"
)

func TestGenerateAndParseToken(t *testing.T) {
	config.SetForTest(config.AppConfig{JWTSecret: "test-secret"})

	token, err := GenerateToken(RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	config.SetForTest(config.AppConfig{JWTSecret: "secret-one"})
	token, err := GenerateToken(RoleAdmin, time.Hour)
	require.NoError(t, err)

	config.SetForTest(config.AppConfig{JWTSecret: "secret-two"})
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	config.SetForTest(config.AppConfig{JWTSecret: "test-secret"})
	token, err := GenerateToken(RoleAdmin, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("open sesame")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "open sesame"))
	assert.False(t, CheckPassword(hash, "open says me"))
	assert.False(t, CheckPassword("not a hash", "open sesame"))
}
