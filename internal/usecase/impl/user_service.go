package impl

import (
	"context"
	"log/slog"

	"larder/config"
	deliverycontext "larder/internal/delivery/context"
	"larder/internal/domain/entity"
	domainerrors "larder/internal/domain/errors"
	"larder/internal/domain/repository"
	"larder/internal/domain/service"
	"larder/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	clock             service.Clock
	bootstrapPassword string
	logger            *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Clock        service.Clock
	Config       *config.Config
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	bootstrapPassword := ""
	if params.Config != nil && params.Config.Auth != nil {
		bootstrapPassword = params.Config.Auth.BootstrapAdminPassword
	}

	return &userService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		clock:             params.Clock,
		bootstrapPassword: bootstrapPassword,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser creates a new account with a bcrypt-hashed password.
func (srv *userService) RegisterUser(ctx context.Context, input usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	if input.Username == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "username must not be empty")
	}
	role := input.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !role.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown role")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordStrength, "password does not meet security requirements")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	now := srv.clock.Now()
	newUser := &entity.User{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, findErr := userRepo.FindByUsername(ctx, input.Username)
		if findErr == nil {
			return errors.WithStack(repository.ErrUserAlreadyExists)
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check username availability")
		}

		return errors.Wrap(userRepo.Create(ctx, newUser), "failed to create user")
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("registration failed")
		}
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.log(ctx).Info("User registered", slog.String("username", newUser.Username), slog.String("role", newUser.Role.String()))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login verifies credentials and issues an access token.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("username", input.Username))

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	roles := entity.Roles{user.Role}
	accessToken, err := srv.tokenService.GenerateToken(user.ID, user.Username, roles.ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken: accessToken,
		User:        user,
	}, nil
}

// ChangePassword verifies the old password and stores a new hash.
func (srv *userService) ChangePassword(ctx context.Context, input usecase.ChangePasswordInput) error {
	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("change password failed")
		}

		return errors.Wrap(err, "failed to load user for password change")
	}

	if !srv.hasher.Check(input.OldPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials.WrapMessage("change password failed")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return errors.Wrap(domainerrors.ErrPasswordStrength, "new password does not meet security requirements")
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	user.PasswordHash = newHash
	user.UpdatedAt = srv.clock.Now()

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to store new password hash")
	}

	srv.log(ctx).Info("Password changed", slog.String("username", input.Username))

	return nil
}

// DeleteUser removes an account. The bootstrap admin is protected.
func (srv *userService) DeleteUser(ctx context.Context, username string) error {
	if username == entity.BootstrapAdminUsername {
		return domainerrors.ErrBootstrapAdminImmutable.WrapMessage("delete user failed")
	}

	if err := srv.userRepo.Delete(ctx, username); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("delete user failed")
		}

		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.String("username", username))

	return nil
}

// ListUsers retrieves every account with password hashes blanked out.
func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	for _, user := range users {
		user.PasswordHash = ""
	}

	return users, nil
}

// EnsureBootstrapAdmin creates the built-in admin account when no users exist
// yet. The initial password comes from config and must be changed after first
// login.
func (srv *userService) EnsureBootstrapAdmin(ctx context.Context) error {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check for existing users")
	}
	if len(users) > 0 {
		return nil
	}
	if srv.bootstrapPassword == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "bootstrap admin password is not configured")
	}

	hashedPassword, err := srv.hasher.Hash(srv.bootstrapPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash bootstrap admin password")
	}

	now := srv.clock.Now()
	admin := &entity.User{
		ID:           uuid.New(),
		Username:     entity.BootstrapAdminUsername,
		PasswordHash: hashedPassword,
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := srv.userRepo.Create(ctx, admin); err != nil {
		return errors.Wrap(err, "failed to create bootstrap admin")
	}

	srv.log(ctx).Info("Bootstrap admin account created")

	return nil
}
