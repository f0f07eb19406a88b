package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/api/dto"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/auth"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/service"
	apperrors "github.com/RominaTrazziSpindox/CIAMS-project/pkg/util"
)

// UsersHandler exposes administrative user management endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Get handles GET /users/:username.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.auth.GetUser(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromUser(user))
}

// ListByRole handles GET /users?role=USER&limit=20&offset=0.
func (h *UsersHandler) ListByRole(c *fiber.Ctx) error {
	role, err := auth.ParseRole(c.Query("role", "USER"))
	if err != nil {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": c.Query("role")})
	}

	usernames, err := h.auth.ListUsernamesByRole(c.UserContext(), role, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"role": role.String(), "usernames": usernames})
}

// Delete handles DELETE /users/:username.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.auth.DeleteUser(c.UserContext(), c.Params("username")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
