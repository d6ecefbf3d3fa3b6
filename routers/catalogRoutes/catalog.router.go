package catalogRoutes

import (
	catalogControllers "lms/controllers/catalog"
	"lms/middleware"
	catalogValidator "lms/validators/catalog"

	"github.com/gofiber/fiber/v2"
)

// SetupCatalogRoutes sets up category/area/topic and resource-type routes
func SetupCatalogRoutes(app *fiber.App) {
	catalogGroup := app.Group("/catalog")

	catalogGroup.Get("/categories", catalogControllers.ListCategories)
	catalogGroup.Get("/areas", catalogControllers.ListAreas)
	catalogGroup.Get("/topics", catalogControllers.ListTopics)
	catalogGroup.Get("/resource-types", catalogControllers.ListResourceTypes)

	adminGroup := app.Group("/admin/catalog", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Post("/category", catalogValidator.CatalogEntry(), catalogControllers.CreateCategory)
	adminGroup.Put("/category/:id", catalogValidator.EntryID(), catalogValidator.CatalogEntry(), catalogControllers.UpdateCategory)
	adminGroup.Delete("/category/:id", catalogValidator.EntryID(), catalogControllers.DeleteCategory)

	adminGroup.Post("/area", catalogValidator.CatalogEntry(), catalogControllers.CreateArea)
	adminGroup.Put("/area/:id", catalogValidator.EntryID(), catalogValidator.CatalogEntry(), catalogControllers.UpdateArea)
	adminGroup.Delete("/area/:id", catalogValidator.EntryID(), catalogControllers.DeleteArea)

	adminGroup.Post("/topic", catalogValidator.CatalogEntry(), catalogControllers.CreateTopic)
	adminGroup.Put("/topic/:id", catalogValidator.EntryID(), catalogValidator.CatalogEntry(), catalogControllers.UpdateTopic)
	adminGroup.Delete("/topic/:id", catalogValidator.EntryID(), catalogControllers.DeleteTopic)
}
