package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	catalogValidator "lms/validators/catalog"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up public and admin course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Public catalog surface
	courseGroup.Get("/list", controllers.ListCourses)
	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourse)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.Enroll)
	courseGroup.Delete("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.Unenroll)

	// Certificates
	courseGroup.Post("/:id/certificate", middleware.JWTMiddleware, validators.CourseID(), controllers.RequestCertificate)

	// Admin course management
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Post("/create", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", validators.CourseID(), validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", validators.CourseID(), controllers.AdminDeleteCourse)
	adminGroup.Get("/:id/enrollments", validators.CourseID(), controllers.AdminListEnrollments)

	// Section management
	adminGroup.Post("/:id/section", validators.CourseID(), validators.CreateSection(), controllers.AdminCreateSection)

	// Resource file uploads
	adminGroup.Post("/upload", controllers.UploadResourceFile)

	// Certificate approval
	certGroup := app.Group("/admin/certificate", middleware.JWTMiddleware, middleware.AdminOnly)
	certGroup.Post("/:id/approve", catalogValidator.EntryID(), controllers.AdminApproveCertificate)
}
