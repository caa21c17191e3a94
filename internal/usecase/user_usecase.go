package usecase

import (
	"context"

	"larder/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Username string
	Password string
	Role     entity.Role
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	Username    string
	OldPassword string
	NewPassword string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated token after a successful login.
type LoginOutput struct {
	AccessToken string
	User        *entity.User
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// RegisterUser creates a new account. Admin only.
	RegisterUser(ctx context.Context, input RegisterUserInput) (*RegisterOutput, error)

	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// ChangePassword verifies the old password and stores a new hash.
	ChangePassword(ctx context.Context, input ChangePasswordInput) error

	// DeleteUser removes an account. The bootstrap admin cannot be deleted. Admin only.
	DeleteUser(ctx context.Context, username string) error

	// ListUsers retrieves every account without password hashes. Admin only.
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// EnsureBootstrapAdmin creates the built-in admin account when no users
	// exist yet. Called once on startup.
	EnsureBootstrapAdmin(ctx context.Context) error
}
