package utils

import (
	"testing"
	"time"

	"tripforge/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken_RoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("user_1", "asha@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", subject)
}

func TestExtractIDFromToken_RejectsExpired(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("user_1", "", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractIDFromToken(token)
	assert.Error(t, err)
}

func TestExtractIDFromToken_RejectsWrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	token, err := GenerateToken("user_1", "", time.Hour)
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "another-secret"
	_, err = ExtractIDFromToken(token)
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	a := HashToken("some-token")
	assert.Equal(t, a, HashToken("some-token"))
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, HashToken("another-token"))
}
