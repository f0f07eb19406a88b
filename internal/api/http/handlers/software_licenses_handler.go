package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/api/dto"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/service"
	apperrors "github.com/RominaTrazziSpindox/CIAMS-project/pkg/util"
)

// SoftwareLicensesHandler exposes license endpoints.
type SoftwareLicensesHandler struct {
	licenses *service.SoftwareLicenseService
}

// NewSoftwareLicensesHandler constructs handler.
func NewSoftwareLicensesHandler(licenses *service.SoftwareLicenseService) *SoftwareLicensesHandler {
	return &SoftwareLicensesHandler{licenses: licenses}
}

// List handles GET /software-licenses/all.
func (h *SoftwareLicensesHandler) List(c *fiber.Ctx) error {
	licenses, err := h.licenses.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromSoftwareLicenses(licenses))
}

// Get handles GET /software-licenses/:softwareName.
func (h *SoftwareLicensesHandler) Get(c *fiber.Ctx) error {
	license, err := h.licenses.GetByName(c.UserContext(), c.Params("softwareName"))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromSoftwareLicense(license))
}

// Create handles POST /software-licenses/insert.
func (h *SoftwareLicensesHandler) Create(c *fiber.Ctx) error {
	var req dto.SoftwareLicenseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	license, err := h.licenses.Create(c.UserContext(), service.SoftwareLicenseInput{
		SoftwareName:     req.SoftwareName,
		MaxInstallations: req.MaxInstallations,
		ExpirationDate:   req.ExpirationDate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromSoftwareLicense(license))
}

// Update handles PUT /software-licenses/update/:softwareName.
func (h *SoftwareLicensesHandler) Update(c *fiber.Ctx) error {
	var req dto.SoftwareLicenseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	license, err := h.licenses.Update(c.UserContext(), c.Params("softwareName"), service.SoftwareLicenseInput{
		SoftwareName:     req.SoftwareName,
		MaxInstallations: req.MaxInstallations,
		ExpirationDate:   req.ExpirationDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.FromSoftwareLicense(license))
}

// Delete handles DELETE /software-licenses/:softwareName.
func (h *SoftwareLicensesHandler) Delete(c *fiber.Ctx) error {
	if err := h.licenses.Delete(c.UserContext(), c.Params("softwareName")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Install handles POST /software-licenses/:softwareName/install/:serialNumber.
func (h *SoftwareLicensesHandler) Install(c *fiber.Ctx) error {
	license, err := h.licenses.Install(c.UserContext(), actor(c), c.Params("softwareName"), c.Params("serialNumber"))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromSoftwareLicense(license))
}

// Uninstall handles DELETE /software-licenses/:softwareName/uninstall/:serialNumber.
func (h *SoftwareLicensesHandler) Uninstall(c *fiber.Ctx) error {
	if err := h.licenses.Uninstall(c.UserContext(), actor(c), c.Params("softwareName"), c.Params("serialNumber")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListForAsset handles GET /software-licenses/asset/:serialNumber.
func (h *SoftwareLicensesHandler) ListForAsset(c *fiber.Ctx) error {
	licenses, err := h.licenses.ListForAsset(c.UserContext(), c.Params("serialNumber"))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromSoftwareLicenses(licenses))
}

// ExpiringSoon handles GET /software-licenses/expiring-soon?days=30.
func (h *SoftwareLicensesHandler) ExpiringSoon(c *fiber.Ctx) error {
	licenses, err := h.licenses.ExpiringSoon(c.UserContext(), c.QueryInt("days", 30))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromSoftwareLicenses(licenses))
}
