package handlers

import (
	"errors"
	"net/http"

	"brandregistry/internal/common"
	"brandregistry/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles registration and login.
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register handles POST /auth/register.
func (h *AuthHandlers) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return common.SendClientError(c, common.ErrDuplicateEmail.Error())
		}
		c.Logger().Errorf("register: %v", err)
		return common.SendServerError(c, "failed to register user")
	}

	return c.JSON(http.StatusCreated, user)
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /auth/login. Bad credentials are a uniform 401.
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrAuthFailure) {
			return common.SendUnauthorizedError(c)
		}
		c.Logger().Errorf("login: %v", err)
		return common.SendServerError(c, "failed to log in")
	}

	return c.JSON(http.StatusOK, token)
}

// DeleteMe handles DELETE /auth/me. Brand rows cascade with the user.
func (h *AuthHandlers) DeleteMe(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if err := h.authService.DeleteAccount(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.SendNotFoundError(c, "user")
		}
		c.Logger().Errorf("delete account: %v", err)
		return common.SendServerError(c, "failed to delete account")
	}

	return c.JSON(http.StatusOK, map[string]string{"detail": "Account deleted"})
}
