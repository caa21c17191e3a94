// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"larder/internal/domain/service"
	"larder/internal/errors"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// forbiddenWords are substrings that make a password trivially guessable
// regardless of its character mix.
var forbiddenWords = []string{"password", "admin", "larder", "12345678", "qwerty"}

// NewBcryptHasher is the constructor for bcryptHasher with the default cost.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher() service.PasswordHasher {
	return &bcryptHasher{cost: bcrypt.DefaultCost}
}

// NewBcryptHasherWithCost builds a hasher with an explicit cost factor,
// mainly so tests can use a cheap cost.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{cost: cost}
}

// Hash validates password strength and generates a salted hash using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := h.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), errors.Wrap(err, "failed to generate bcrypt hash")
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength rejects passwords that are too short, lack
// character variety, or contain forbidden words.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	if !h.hasLowercase(password) {
		return errors.New("password must contain at least one lowercase letter")
	}
	if !h.hasUppercase(password) {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !h.hasNumbers(password) {
		return errors.New("password must contain at least one number")
	}
	if !h.hasSpecialChars(password) {
		return errors.New("password must contain at least one special character")
	}
	if h.containsForbiddenWords(password, forbiddenWords) {
		return errors.New("password contains forbidden words")
	}

	return nil
}

func (h *bcryptHasher) hasUppercase(s string) bool {
	return strings.ContainsFunc(s, unicode.IsUpper)
}

func (h *bcryptHasher) hasLowercase(s string) bool {
	return strings.ContainsFunc(s, unicode.IsLower)
}

func (h *bcryptHasher) hasNumbers(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}

func (h *bcryptHasher) hasSpecialChars(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func (h *bcryptHasher) containsForbiddenWords(password string, words []string) bool {
	lowered := strings.ToLower(password)
	for _, word := range words {
		if strings.Contains(lowered, word) {
			return true
		}
	}

	return false
}
