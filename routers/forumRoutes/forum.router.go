package forumRoutes

import (
	forumControllers "lms/controllers/forum"
	"lms/middleware"
	catalogValidator "lms/validators/catalog"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupForumRoutes sets up per-course discussion thread routes
func SetupForumRoutes(app *fiber.App) {
	forumGroup := app.Group("/course/:id/forum", middleware.JWTMiddleware, courseValidator.CourseID())

	forumGroup.Get("/threads", forumControllers.ListThreads)
	forumGroup.Post("/threads", catalogValidator.Thread(), forumControllers.CreateThread)

	threadGroup := app.Group("/forum/thread", middleware.JWTMiddleware)
	threadGroup.Delete("/:id", catalogValidator.EntryID(), forumControllers.DeleteThread)
}
