package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/api/dto"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/auth"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/service"
	apperrors "github.com/RominaTrazziSpindox/CIAMS-project/pkg/util"
)

// AssetsHandler exposes asset endpoints.
type AssetsHandler struct {
	assets *service.AssetService
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assets *service.AssetService) *AssetsHandler {
	return &AssetsHandler{assets: assets}
}

// List handles GET /assets/all.
func (h *AssetsHandler) List(c *fiber.Ctx) error {
	assets, err := h.assets.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromAssets(assets))
}

// Get handles GET /assets/serial/:serialNumber.
func (h *AssetsHandler) Get(c *fiber.Ctx) error {
	asset, err := h.assets.GetBySerialNumber(c.UserContext(), c.Params("serialNumber"))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromAsset(asset))
}

// GetDetails handles GET /assets/serial/:serialNumber/details.
func (h *AssetsHandler) GetDetails(c *fiber.Ctx) error {
	details, err := h.assets.GetDetails(c.UserContext(), c.Params("serialNumber"))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromAssetDetails(details))
}

// ListByOffice handles GET /assets/office/:officeName.
func (h *AssetsHandler) ListByOffice(c *fiber.Ctx) error {
	assets, err := h.assets.ListByOffice(c.UserContext(), c.Params("officeName"))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromAssets(assets))
}

// ListByAssetType handles GET /assets/type/:assetTypeName.
func (h *AssetsHandler) ListByAssetType(c *fiber.Ctx) error {
	assets, err := h.assets.ListByAssetType(c.UserContext(), c.Params("assetTypeName"))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromAssets(assets))
}

// Create handles POST /assets/insert.
func (h *AssetsHandler) Create(c *fiber.Ctx) error {
	var req dto.AssetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	asset, err := h.assets.Create(c.UserContext(), actor(c), service.AssetInput{
		SerialNumber:  req.SerialNumber,
		PurchaseDate:  req.PurchaseDate,
		AssetTypeName: req.AssetTypeName,
		OfficeName:    req.OfficeName,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromAsset(asset))
}

// Update handles PUT /assets/update/:serialNumber.
func (h *AssetsHandler) Update(c *fiber.Ctx) error {
	var req dto.AssetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	asset, err := h.assets.Update(c.UserContext(), actor(c), c.Params("serialNumber"), service.AssetInput{
		SerialNumber:  req.SerialNumber,
		PurchaseDate:  req.PurchaseDate,
		AssetTypeName: req.AssetTypeName,
		OfficeName:    req.OfficeName,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.FromAsset(asset))
}

// Move handles PATCH /assets/move-name/:serialNumber.
func (h *AssetsHandler) Move(c *fiber.Ctx) error {
	var req dto.MoveAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	asset, err := h.assets.MoveToOffice(c.UserContext(), actor(c), c.Params("serialNumber"), req.OfficeName)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromAsset(asset))
}

// Delete handles DELETE /assets/serial/:serialNumber.
func (h *AssetsHandler) Delete(c *fiber.Ctx) error {
	if err := h.assets.Delete(c.UserContext(), actor(c), c.Params("serialNumber")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// actor resolves the acting subject for audit events. Requests reach the
// mutating handlers only after the policy check, so a missing identity only
// happens on public routes.
func actor(c *fiber.Ctx) string {
	if identity, ok := auth.IdentityFromContext(c); ok {
		return identity.Subject
	}
	return "anonymous"
}
