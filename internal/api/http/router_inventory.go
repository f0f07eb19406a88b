package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/api/http/handlers"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/auth"
)

// InventoryRouteConfig bundles dependencies for the inventory service routes.
type InventoryRouteConfig struct {
	Health     *handlers.HealthHandler
	Offices    *handlers.OfficesHandler
	AssetTypes *handlers.AssetTypesHandler
	Assets     *handlers.AssetsHandler
	Licenses   *handlers.SoftwareLicensesHandler
	Codec      *auth.Codec
	Logger     *zap.Logger
}

// InventoryPolicy is the access rule table of the inventory service.
// Probes are public, deletions are admin only, every other route
// requires an authenticated caller.
func InventoryPolicy() *auth.Policy {
	return auth.NewPolicy(
		auth.Rule{Method: "GET", Pattern: "/health/*", Access: auth.Public()},
		auth.Rule{Method: "DELETE", Pattern: "/offices/*", Access: auth.RequireRole(auth.RoleAdmin)},
		auth.Rule{Method: "DELETE", Pattern: "/asset_types/*", Access: auth.RequireRole(auth.RoleAdmin)},
		auth.Rule{Method: "DELETE", Pattern: "/assets/*", Access: auth.RequireRole(auth.RoleAdmin)},
		auth.Rule{Method: "DELETE", Pattern: "/software-licenses/*", Access: auth.RequireRole(auth.RoleAdmin)},
	)
}

// RegisterInventoryRoutes wires the inventory service HTTP routes.
func RegisterInventoryRoutes(app *fiber.App, cfg InventoryRouteConfig) {
	app.Use(auth.Authenticate(cfg.Codec, cfg.Logger))
	app.Use(InventoryPolicy().Enforce())

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	offices := app.Group("/offices")
	offices.Get("/all", cfg.Offices.List)
	offices.Post("/insert", cfg.Offices.Create)
	offices.Put("/update/:name", cfg.Offices.Update)
	offices.Get("/:name", cfg.Offices.Get)
	offices.Delete("/:name", cfg.Offices.Delete)

	assetTypes := app.Group("/asset_types")
	assetTypes.Get("/all", cfg.AssetTypes.List)
	assetTypes.Post("/insert", cfg.AssetTypes.Create)
	assetTypes.Put("/update/:id", cfg.AssetTypes.Update)
	assetTypes.Get("/:id", cfg.AssetTypes.Get)
	assetTypes.Delete("/:id", cfg.AssetTypes.Delete)

	assets := app.Group("/assets")
	assets.Get("/all", cfg.Assets.List)
	assets.Post("/insert", cfg.Assets.Create)
	assets.Put("/update/:serialNumber", cfg.Assets.Update)
	assets.Patch("/move-name/:serialNumber", cfg.Assets.Move)
	assets.Get("/office/:officeName", cfg.Assets.ListByOffice)
	assets.Get("/type/:assetTypeName", cfg.Assets.ListByAssetType)
	assets.Get("/serial/:serialNumber/details", cfg.Assets.GetDetails)
	assets.Get("/serial/:serialNumber", cfg.Assets.Get)
	assets.Delete("/serial/:serialNumber", cfg.Assets.Delete)

	licenses := app.Group("/software-licenses")
	licenses.Get("/all", cfg.Licenses.List)
	licenses.Get("/expiring-soon", cfg.Licenses.ExpiringSoon)
	licenses.Post("/insert", cfg.Licenses.Create)
	licenses.Put("/update/:softwareName", cfg.Licenses.Update)
	licenses.Get("/asset/:serialNumber", cfg.Licenses.ListForAsset)
	licenses.Post("/:softwareName/install/:serialNumber", cfg.Licenses.Install)
	licenses.Delete("/:softwareName/uninstall/:serialNumber", cfg.Licenses.Uninstall)
	licenses.Get("/:softwareName", cfg.Licenses.Get)
	licenses.Delete("/:softwareName", cfg.Licenses.Delete)
}
