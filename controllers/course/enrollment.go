package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// Mail is the enrollment mail collaborator, wired from main
var Mail services.Mailer

// InitMailer wires the enrollment controllers to the mailer
func InitMailer(m services.Mailer) {
	Mail = m
}

// Enroll enrolls the authenticated user in a course accepting enrollments
func Enroll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if !crs.EnrollmentOpen {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Course is not accepting enrollments!", nil)
	}

	var existing courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
		userID, courseID, courseModels.EnrollmentActive, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled!", nil)
	}

	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   courseModels.EnrollmentActive,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	// Confirmation mail is best-effort
	go func(userID uint, title string) {
		var u models.User
		if err := database.Database.Db.Select("name, email").First(&u, userID).Error; err == nil && u.Email != "" {
			if err := Mail.SendEnrollmentConfirmation(u.Email, u.Name, title); err != nil {
				log.Printf("Enrollment mail failed for user %d: %v", userID, err)
			}
		}
	}(userID, crs.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully!", enrollment)
}

// Unenroll cancels the authenticated user's active enrollment
func Unenroll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
		userID, courseID, courseModels.EnrollmentActive, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	enrollment.Status = courseModels.EnrollmentCancelled
	if err := db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unenroll!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment cancelled!", nil)
}

// AdminListEnrollments lists the enrollments of a course
func AdminListEnrollments(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at DESC").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
	})
}
