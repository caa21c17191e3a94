package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher()

	// Test valid strong password
	strongPassword := "StrongPhrase123!"
	hash, err := hasher.Hash(strongPassword)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, strongPassword, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(strongPassword, hash))
}

func TestBcryptHasher_HashWithWeakPassword(t *testing.T) {
	hasher := NewBcryptHasher()

	// Test weak passwords that should fail validation
	weakPasswords := []string{
		"123",         // Too short
		"password",    // Forbidden word
		"PHRASE12345", // No lowercase
		"phrase12345", // No uppercase
		"PhraseABCde", // No numbers
		"Phrase12345", // No special characters
	}

	for _, weakPassword := range weakPasswords {
		_, err := hasher.Hash(weakPassword)
		assert.Error(t, err, "Expected error for weak password: %s", weakPassword)
	}
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasher()
	password := "StrongPhrase123!"

	// Generate hash
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("WrongPhrase123!", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := NewBcryptHasher()

	// Test valid passwords
	validPasswords := []string{
		"StrongPhrase123!",
		"MySecure@Pass1",
		"Complex#Secret9",
		"Valid$Phrase2024",
	}

	for _, password := range validPasswords {
		err := hasher.ValidatePasswordStrength(password)
		assert.NoError(t, err, "Expected no error for valid password: %s", password)
	}

	// Test invalid passwords with specific error cases
	testCases := []struct {
		password    string
		expectedErr string
	}{
		{"123", "must be at least 8 characters long"},
		{"PHRASE12345!", "must contain at least one lowercase letter"},
		{"phrase12345!", "must contain at least one uppercase letter"},
		{"PhraseABCde!", "must contain at least one number"},
		{"Phrase12345", "must contain at least one special character"},
		{"Password123!", "contains forbidden words"},
		{"MyAdmin123!", "contains forbidden words"},
	}

	for _, tc := range testCases {
		err := hasher.ValidatePasswordStrength(tc.password)
		assert.Error(t, err, "Expected error for password: %s", tc.password)
		assert.Contains(t, err.Error(), tc.expectedErr, "Error message should contain: %s", tc.expectedErr)
	}
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasherWithCost(customCost)

	password := "StrongPhrase123!"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Verify the hash uses the correct cost
	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, customCost, cost)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_PasswordStrengthHelpers(t *testing.T) {
	hasher := &bcryptHasher{cost: bcrypt.MinCost}

	// Test hasUppercase
	assert.True(t, hasher.hasUppercase("Phrase"))
	assert.False(t, hasher.hasUppercase("phrase"))

	// Test hasLowercase
	assert.True(t, hasher.hasLowercase("Phrase"))
	assert.False(t, hasher.hasLowercase("PHRASE"))

	// Test hasNumbers
	assert.True(t, hasher.hasNumbers("Phrase123"))
	assert.False(t, hasher.hasNumbers("Phrase"))

	// Test hasSpecialChars
	assert.True(t, hasher.hasSpecialChars("Phrase!"))
	assert.False(t, hasher.hasSpecialChars("Phrase"))

	// Test containsForbiddenWords
	words := []string{"password", "admin"}
	assert.True(t, hasher.containsForbiddenWords("MyPassword123", words))
	assert.True(t, hasher.containsForbiddenWords("AdminUser", words))
	assert.False(t, hasher.containsForbiddenWords("SecurePhrase123", words))
}

func TestBcryptHasher_EdgeCases(t *testing.T) {
	hasher := NewBcryptHasher()

	// Test empty password
	err := hasher.ValidatePasswordStrength("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be at least 8 characters long")

	// Test password with unicode characters
	unicodePassword := "Strängphräse123!"
	err = hasher.ValidatePasswordStrength(unicodePassword)
	assert.NoError(t, err) // Should be valid

	// Test password with only special characters
	specialOnlyPassword := "!@#$%^&*()"
	err = hasher.ValidatePasswordStrength(specialOnlyPassword)
	assert.Error(t, err) // Should fail because no letters or numbers
}
