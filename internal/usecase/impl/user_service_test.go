package impl

import (
	"context"
	"testing"

	"larder/config"
	"larder/internal/domain/entity"
	domainerrors "larder/internal/domain/errors"
	"larder/internal/domain/repository"
	mockRepo "larder/internal/mocks/repository"
	mockSvc "larder/internal/mocks/service"
	"larder/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userTestDeps struct {
	txManager    *mockRepo.MockTransactionManager
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T) (usecase.UserUsecase, *userTestDeps) {
	deps := &userTestDeps{
		txManager:    mockRepo.NewMockTransactionManager(t),
		hasher:       mockSvc.NewMockPasswordHasher(t),
		tokenService: mockSvc.NewMockTokenService(t),
	}

	svc := NewUserService(UserServiceParams{
		TxManager:    deps.txManager,
		UserRepo:     deps.txManager.Factory.UserRepo,
		Hasher:       deps.hasher,
		TokenService: deps.tokenService,
		Clock:        newFixedClock(),
		Config: &config.Config{
			Auth: &config.AuthConfig{BcryptCost: 12, BootstrapAdminPassword: "ChangeMe-123"},
		},
		Logger: newDiscardLogger(),
	})

	return svc, deps
}

func TestUserService_RegisterUser(t *testing.T) {
	svc, deps := createTestUserService(t)
	ctx := context.Background()

	deps.hasher.On("ValidatePasswordStrength", "Str0ng-pass!").Return(nil)
	deps.hasher.On("Hash", "Str0ng-pass!").Return("$2a$12$hash", nil)
	deps.txManager.Factory.UserRepo.On("FindByUsername", ctx, "alice").Return(nil, repository.ErrUserNotFound)
	deps.txManager.Factory.UserRepo.On("Create", ctx, mock.MatchedBy(func(user *entity.User) bool {
		return user.Username == "alice" && user.Role == entity.RoleUser && user.PasswordHash == "$2a$12$hash"
	})).Return(nil)

	output, err := svc.RegisterUser(ctx, usecase.RegisterUserInput{Username: "alice", Password: "Str0ng-pass!"})

	require.NoError(t, err)
	assert.Equal(t, "alice", output.User.Username)
	assert.Equal(t, entity.RoleUser, output.User.Role, "role defaults to user")
}

func TestUserService_RegisterUser_DuplicateUsername(t *testing.T) {
	svc, deps := createTestUserService(t)
	ctx := context.Background()

	deps.hasher.On("ValidatePasswordStrength", mock.Anything).Return(nil)
	deps.hasher.On("Hash", mock.Anything).Return("$2a$12$hash", nil)
	deps.txManager.Factory.UserRepo.On("FindByUsername", ctx, "alice").
		Return(&entity.User{Username: "alice"}, nil)

	_, err := svc.RegisterUser(ctx, usecase.RegisterUserInput{Username: "alice", Password: "Str0ng-pass!"})

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_RegisterUser_WeakPassword(t *testing.T) {
	svc, deps := createTestUserService(t)

	deps.hasher.On("ValidatePasswordStrength", "123").Return(assert.AnError)

	_, err := svc.RegisterUser(context.Background(), usecase.RegisterUserInput{Username: "bob", Password: "123"})

	assert.ErrorIs(t, err, domainerrors.ErrPasswordStrength)
}

func TestUserService_Login(t *testing.T) {
	svc, deps := createTestUserService(t)
	ctx := context.Background()

	userID := uuid.New()
	user := &entity.User{ID: userID, Username: "alice", PasswordHash: "$2a$12$hash", Role: entity.RoleAdmin}

	deps.txManager.Factory.UserRepo.On("FindByUsername", ctx, "alice").Return(user, nil)
	deps.hasher.On("Check", "Str0ng-pass!", "$2a$12$hash").Return(true)
	deps.tokenService.On("GenerateToken", userID, "alice", []string{"admin"}).Return("token-123", nil)

	output, err := svc.Login(ctx, usecase.LoginInput{Username: "alice", Password: "Str0ng-pass!"})

	require.NoError(t, err)
	assert.Equal(t, "token-123", output.AccessToken)
	assert.Equal(t, user, output.User)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	svc, deps := createTestUserService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Username: "alice", PasswordHash: "$2a$12$hash"}
	deps.txManager.Factory.UserRepo.On("FindByUsername", ctx, "alice").Return(user, nil)
	deps.hasher.On("Check", "wrong", "$2a$12$hash").Return(false)

	_, err := svc.Login(ctx, usecase.LoginInput{Username: "alice", Password: "wrong"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownUserLooksLikeBadCredentials(t *testing.T) {
	svc, deps := createTestUserService(t)
	ctx := context.Background()

	deps.txManager.Factory.UserRepo.On("FindByUsername", ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	_, err := svc.Login(ctx, usecase.LoginInput{Username: "ghost", Password: "whatever"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_ChangePassword(t *testing.T) {
	svc, deps := createTestUserService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Username: "alice", PasswordHash: "$old"}
	deps.txManager.Factory.UserRepo.On("FindByUsername", ctx, "alice").Return(user, nil)
	deps.hasher.On("Check", "old-pass", "$old").Return(true)
	deps.hasher.On("ValidatePasswordStrength", "New-pass-1!").Return(nil)
	deps.hasher.On("Hash", "New-pass-1!").Return("$new", nil)
	deps.txManager.Factory.UserRepo.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.PasswordHash == "$new"
	})).Return(nil)

	err := svc.ChangePassword(ctx, usecase.ChangePasswordInput{
		Username:    "alice",
		OldPassword: "old-pass",
		NewPassword: "New-pass-1!",
	})

	require.NoError(t, err)
}

func TestUserService_DeleteUser_ProtectsBootstrapAdmin(t *testing.T) {
	svc, _ := createTestUserService(t)

	err := svc.DeleteUser(context.Background(), entity.BootstrapAdminUsername)

	assert.ErrorIs(t, err, domainerrors.ErrBootstrapAdminImmutable)
}

func TestUserService_ListUsers_StripsPasswordHashes(t *testing.T) {
	svc, deps := createTestUserService(t)
	ctx := context.Background()

	deps.txManager.Factory.UserRepo.On("List", ctx).Return([]*entity.User{
		{Username: "alice", PasswordHash: "$2a$12$secret"},
		{Username: "bob", PasswordHash: "$2a$12$secret2"},
	}, nil)

	users, err := svc.ListUsers(ctx)

	require.NoError(t, err)
	for _, user := range users {
		assert.Empty(t, user.PasswordHash)
	}
}

func TestUserService_EnsureBootstrapAdmin(t *testing.T) {
	t.Run("creates admin when no users exist", func(t *testing.T) {
		svc, deps := createTestUserService(t)
		ctx := context.Background()

		deps.txManager.Factory.UserRepo.On("List", ctx).Return([]*entity.User{}, nil)
		deps.hasher.On("Hash", "ChangeMe-123").Return("$2a$12$admin", nil)
		deps.txManager.Factory.UserRepo.On("Create", ctx, mock.MatchedBy(func(user *entity.User) bool {
			return user.Username == entity.BootstrapAdminUsername && user.Role == entity.RoleAdmin
		})).Return(nil)

		require.NoError(t, svc.EnsureBootstrapAdmin(ctx))
	})

	t.Run("no-op when users exist", func(t *testing.T) {
		svc, deps := createTestUserService(t)
		ctx := context.Background()

		deps.txManager.Factory.UserRepo.On("List", ctx).Return([]*entity.User{{Username: "alice"}}, nil)

		require.NoError(t, svc.EnsureBootstrapAdmin(ctx))
		deps.txManager.Factory.UserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
