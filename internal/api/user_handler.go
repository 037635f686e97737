package api

import (
	"client-service/internal/entity"
	"client-service/internal/service"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new instance of UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register creates a user --> /register
func (h *UserHandler) Register(c echo.Context) error {
	creds := entity.Credentials{}
	if err := c.Bind(&creds); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
	}

	// Duplicate usernames are not told apart from other failures.
	if err := h.userService.Register(c.Request().Context(), &creds); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Registration failed"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Registration successful"})
}

// Login checks a username and password --> /login
func (h *UserHandler) Login(c echo.Context) error {
	creds := entity.Credentials{}
	if err := c.Bind(&creds); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
	}

	err := h.userService.Login(c.Request().Context(), &creds)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]string{"message": "Login successful"})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Incorrect username or password"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"})
	}
}

// ChangePassword replaces a user's password --> /change-password
func (h *UserHandler) ChangePassword(c echo.Context) error {
	req := entity.ChangePassword{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
	}

	err := h.userService.ChangePassword(c.Request().Context(), &req)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]string{"message": "Password changed successfully"})
	case errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
	case errors.Is(err, service.ErrPasswordReused):
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Password already exists"})
	case errors.Is(err, service.ErrPasswordNotUpdated):
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Error updating password"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"})
	}
}
