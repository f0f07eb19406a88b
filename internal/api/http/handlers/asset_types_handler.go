package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/api/dto"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/service"
	apperrors "github.com/RominaTrazziSpindox/CIAMS-project/pkg/util"
)

// AssetTypesHandler exposes asset type endpoints.
type AssetTypesHandler struct {
	assetTypes *service.AssetTypeService
}

// NewAssetTypesHandler constructs handler.
func NewAssetTypesHandler(assetTypes *service.AssetTypeService) *AssetTypesHandler {
	return &AssetTypesHandler{assetTypes: assetTypes}
}

// List handles GET /asset_types/all.
func (h *AssetTypesHandler) List(c *fiber.Ctx) error {
	assetTypes, err := h.assetTypes.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromAssetTypes(assetTypes))
}

// Get handles GET /asset_types/:id.
func (h *AssetTypesHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("invalid asset type id", nil)
	}

	assetType, err := h.assetTypes.GetByID(c.UserContext(), int64(id))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromAssetType(assetType))
}

// Create handles POST /asset_types/insert.
func (h *AssetTypesHandler) Create(c *fiber.Ctx) error {
	var req dto.AssetTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	assetType, err := h.assetTypes.Create(c.UserContext(), service.AssetTypeInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromAssetType(assetType))
}

// Update handles PUT /asset_types/update/:id.
func (h *AssetTypesHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("invalid asset type id", nil)
	}

	var req dto.AssetTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	assetType, err := h.assetTypes.Update(c.UserContext(), int64(id), service.AssetTypeInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.FromAssetType(assetType))
}

// Delete handles DELETE /asset_types/:id.
func (h *AssetTypesHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("invalid asset type id", nil)
	}

	if err := h.assetTypes.Delete(c.UserContext(), int64(id)); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
