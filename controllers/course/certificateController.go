package controllers

import (
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// Renderer is the external certificate renderer, wired from main
var Renderer services.CertificateRenderer

// InitRenderer wires the certificate controllers to the renderer
func InitRenderer(r services.CertificateRenderer) {
	Renderer = r
}

// RequestCertificate requests a certificate for a completed course
func RequestCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}
	if enrollment.Status != courseModels.EnrollmentCompleted {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please complete the course before requesting a certificate!", nil)
	}

	var existing courseModels.CertificateRequest
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&existing).Error; err == nil && existing.Status != "REJECTED" {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate request already exists!", nil)
	}

	request := courseModels.CertificateRequest{
		UserID:       userID,
		CourseID:     courseID,
		EnrollmentID: enrollment.ID,
		Status:       "PENDING",
	}
	if err := db.Create(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create certificate request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate requested!", request)
}

// AdminApproveCertificate approves a pending request and has the external
// renderer produce the document
func AdminApproveCertificate(c *fiber.Ctx) error {
	requestID := c.Locals("entryID").(uint)

	db := database.Database.Db

	var request courseModels.CertificateRequest
	if err := db.Where("id = ? AND status = ? AND is_deleted = ?", requestID, "PENDING", false).
		First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Pending certificate request not found!", nil)
	}

	var user models.User
	var crs courseModels.Course
	if err := db.First(&user, request.UserID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	if err := db.First(&crs, request.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	url, err := Renderer.Render(user.Name, crs.Title, time.Now())
	if err != nil {
		log.Printf("Certificate render failed for request %d: %v", request.ID, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Certificate rendering failed!", nil)
	}

	cert := courseModels.Certificate{
		UserID:      request.UserID,
		CourseID:    request.CourseID,
		DocumentURL: url,
	}
	if err := db.Create(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store certificate!", nil)
	}

	request.Status = "APPROVED"
	db.Save(&request)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate issued!", cert)
}
