package forumControllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	catalogValidator "lms/validators/catalog"

	"github.com/gofiber/fiber/v2"
)

// CreateThread opens a discussion thread on a course
func CreateThread(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedThread").(*catalogValidator.ThreadPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	thread := models.ForumThread{
		CourseID: courseID,
		UserID:   userID,
		Title:    reqData.Title,
		Body:     reqData.Body,
	}
	if err := database.Database.Db.Create(&thread).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create thread!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Thread created successfully!", thread)
}

// ListThreads lists a course's threads
func ListThreads(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var threads []models.ForumThread
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at DESC").
		Find(&threads).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch threads!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Threads fetched successfully!", fiber.Map{
		"threads": threads,
	})
}

// DeleteThread removes a thread; only the author or an admin may delete
func DeleteThread(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	entryID := c.Locals("entryID").(uint)

	var thread models.ForumThread
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", entryID, false).First(&thread).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Thread not found!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	if thread.UserID != userID && user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not allowed to delete this thread!", nil)
	}

	thread.IsDeleted = true
	if err := database.Database.Db.Save(&thread).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete thread!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thread deleted successfully!", nil)
}
