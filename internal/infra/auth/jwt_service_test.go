package auth

import (
	"testing"

	"larder/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testJWTConfig() *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{
			Access: "test_access_secret_key_very_long_for_testing",
		},
	}
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	// Test data
	userID := uuid.New()
	roles := []string{"user", "admin"}

	// Generate token
	accessToken, err := jwtService.GenerateToken(userID, "alice", roles)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	// Validate token
	claims, err := jwtService.ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, roles, claims.Roles)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	// Test invalid token - using clearly non-JWT format
	invalidToken := "clearly-not-a-jwt-token-format"
	claims, err := jwtService.ValidateToken(invalidToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "failed to parse token structure")
}

func TestJWTService_WrongSecret(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	otherService, err := NewJWTService(&config.Config{
		SecretKey: config.SecretKeyConfig{Access: "a_completely_different_secret_key_here"},
	})
	assert.NoError(t, err)

	token, err := jwtService.GenerateToken(uuid.New(), "alice", []string{"user"})
	assert.NoError(t, err)

	claims, err := otherService.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := &config.Config{}

	// Should fail to create service
	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}
