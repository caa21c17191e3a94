// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"larder/internal/delivery/http/middleware"
	"larder/internal/delivery/http/response"
	"larder/internal/domain/entity"
	"larder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// userView is the account shape returned to clients. The password hash
// never leaves the server.
type userView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserView(user *entity.User) userView {
	return userView{
		ID:        user.ID.String(),
		Username:  user.Username,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// Register handles account creation.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role := entity.Role(req.Role)
	if req.Role == "" {
		role = entity.RoleUser
	}

	output, err := h.uc.RegisterUser(c.Request().Context(), usecase.RegisterUserInput{
		Username: req.Username,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserView(output.User), "User registered successfully")
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginView struct {
	AccessToken string   `json:"access_token"`
	User        userView `json:"user"`
}

// Login handles the login request and returns an access token.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loginView{
		AccessToken: output.AccessToken,
		User:        toUserView(output.User),
	}, "Login successful")
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// ChangePassword changes the calling user's own password.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	username, ok := c.Get(middleware.ContextKeyUsername).(string)
	if !ok || username == "" {
		return response.Unauthorized(c, "INVALID_TOKEN", "Username missing from token")
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid change password input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.uc.ChangePassword(c.Request().Context(), usecase.ChangePasswordInput{
		Username:    username,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

// ListUsers returns every account without password hashes.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]userView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}

	return response.Success(c, http.StatusOK, views, "Users retrieved successfully")
}

// DeleteUser removes an account by username.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	username := c.Param("username")
	if err := h.uc.DeleteUser(c.Request().Context(), username); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
