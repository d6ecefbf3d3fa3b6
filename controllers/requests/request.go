package requestControllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	catalogValidator "lms/validators/catalog"

	"github.com/gofiber/fiber/v2"
)

// CreateRequest files a training request for the authenticated user
func CreateRequest(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedRequest").(*catalogValidator.RequestPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	request := models.TrainingRequest{
		UserID: userID,
		Title:  reqData.Title,
		Detail: reqData.Detail,
		Status: "OPEN",
	}
	if err := database.Database.Db.Create(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Request created successfully!", request)
}

// ListRequests lists the authenticated user's requests; admins see all
func ListRequests(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	q := database.Database.Db.Where("is_deleted = ?", false)
	if user.Role != "ADMIN" {
		q = q.Where("user_id = ?", userID)
	}

	var requests []models.TrainingRequest
	if err := q.Order("created_at DESC").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched successfully!", fiber.Map{
		"requests": requests,
	})
}

// AdminResolveRequest approves or rejects an open request
func AdminResolveRequest(c *fiber.Ctx) error {
	entryID := c.Locals("entryID").(uint)

	status := c.Query("status")
	if status != "APPROVED" && status != "REJECTED" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Status must be APPROVED or REJECTED!", nil)
	}

	res := database.Database.Db.Model(&models.TrainingRequest{}).
		Where("id = ? AND status = ? AND is_deleted = ?", entryID, "OPEN", false).
		Update("status", status)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update request!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Open request not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request updated successfully!", nil)
}
