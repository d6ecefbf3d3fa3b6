package requestRoutes

import (
	requestControllers "lms/controllers/requests"
	"lms/middleware"
	catalogValidator "lms/validators/catalog"

	"github.com/gofiber/fiber/v2"
)

// SetupRequestRoutes sets up training request routes
func SetupRequestRoutes(app *fiber.App) {
	requestGroup := app.Group("/request", middleware.JWTMiddleware)

	requestGroup.Post("/create", catalogValidator.TrainingRequest(), requestControllers.CreateRequest)
	requestGroup.Get("/list", requestControllers.ListRequests)

	adminGroup := app.Group("/admin/request", middleware.JWTMiddleware, middleware.AdminOnly)
	adminGroup.Post("/:id/resolve", catalogValidator.EntryID(), requestControllers.AdminResolveRequest)
}
