package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/api/dto"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/service"
	apperrors "github.com/RominaTrazziSpindox/CIAMS-project/pkg/util"
)

// OfficesHandler exposes office endpoints.
type OfficesHandler struct {
	offices *service.OfficeService
}

// NewOfficesHandler constructs handler.
func NewOfficesHandler(offices *service.OfficeService) *OfficesHandler {
	return &OfficesHandler{offices: offices}
}

// List handles GET /offices/all.
func (h *OfficesHandler) List(c *fiber.Ctx) error {
	offices, err := h.offices.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromOffices(offices))
}

// Get handles GET /offices/:name.
func (h *OfficesHandler) Get(c *fiber.Ctx) error {
	office, err := h.offices.GetByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromOffice(office))
}

// Create handles POST /offices/insert.
func (h *OfficesHandler) Create(c *fiber.Ctx) error {
	var req dto.OfficeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	office, err := h.offices.Create(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromOffice(office))
}

// Update handles PUT /offices/update/:name.
func (h *OfficesHandler) Update(c *fiber.Ctx) error {
	var req dto.OfficeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	office, err := h.offices.Rename(c.UserContext(), c.Params("name"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromOffice(office))
}

// Delete handles DELETE /offices/:name.
func (h *OfficesHandler) Delete(c *fiber.Ctx) error {
	if err := h.offices.Delete(c.UserContext(), c.Params("name")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
