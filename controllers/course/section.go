package controllers

import (
	"lms/lifecycle"
	"lms/middleware"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateSection creates one section; the position is allocated when the
// client supplies none or a taken one
func AdminCreateSection(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedSection").(*courseValidator.CreateSectionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	section, err := Lifecycle.CreateSection(c.Context(), courseID, lifecycle.SectionInput{
		Title:    reqData.Title,
		Status:   reqData.Status,
		Position: reqData.Position,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section created successfully!", section)
}
