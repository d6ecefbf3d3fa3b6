package catalogControllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// ListResourceTypes returns the fixed lookup of resource kinds
func ListResourceTypes(c *fiber.Ctx) error {
	var types []courseModels.ResourceType
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("id ASC").Find(&types).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch resource types!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource types fetched successfully!", fiber.Map{
		"resource_types": types,
	})
}
