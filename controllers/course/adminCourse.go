package controllers

import (
	"errors"
	"time"

	"lms/config"
	"lms/database"
	"lms/lifecycle"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// Lifecycle is the shared course lifecycle service, wired from main
var Lifecycle *lifecycle.Service

// Init wires the controllers to the lifecycle service
func Init(svc *lifecycle.Service) {
	Lifecycle = svc
}

const dateLayout = "2006-01-02"

// serviceError translates lifecycle errors into HTTP responses
func serviceError(c *fiber.Ctx, err error) error {
	var verr *lifecycle.ValidationError
	switch {
	case errors.As(err, &verr):
		return middleware.ValidationErrorResponse(c, verr.Fields)
	case errors.Is(err, lifecycle.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(err, lifecycle.ErrSectionNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	case errors.Is(err, lifecycle.ErrPositionConflict):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Section order changed concurrently, please retry!", nil)
	case errors.Is(err, lifecycle.ErrActiveEnrollments):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course still has active enrollments!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}

// AdminCreateCourse creates a new course; its status flags settle on the next
// scheduler tick
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	start, _ := time.Parse(dateLayout, reqData.StartDate)
	end, _ := time.Parse(dateLayout, reqData.EndDate)

	crs, err := Lifecycle.CreateCourse(c.Context(), reqData.Title, reqData.Description, reqData.Type, reqData.TopicID, start, end)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", crs)
}

// AdminUpdateCourse updates scalar course fields and, when a sections payload
// is present, reconciles the course content with it in the same transaction
func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	fields := lifecycle.CourseFields{
		Title:       reqData.Title,
		Description: reqData.Description,
		TopicID:     reqData.TopicID,
	}
	if reqData.StartDate != nil {
		start, _ := time.Parse(dateLayout, *reqData.StartDate)
		fields.StartDate = &start
	}
	if reqData.EndDate != nil {
		end, _ := time.Parse(dateLayout, *reqData.EndDate)
		fields.EndDate = &end
	}

	crs, err := Lifecycle.UpdateCourse(c.Context(), courseID, fields, toSectionInputs(reqData.Sections))
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", crs)
}

// AdminDeleteCourse removes a course without active enrollments
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	if err := Lifecycle.DeleteCourse(c.Context(), courseID); err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// GetCourse returns a course with its ordered sections and resources
func GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	crs, err := Lifecycle.GetCourse(c.Context(), courseID)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", crs)
}

// ListCourses lists visible courses; admins see everything
func ListCourses(c *fiber.Ctx) error {
	var courses []courseModels.Course
	q := database.Database.Db.Where("is_deleted = ?", false)
	if c.Query("all") != "true" {
		q = q.Where("visible = ?", true)
	}
	if err := q.Order("start_date DESC").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// UploadResourceFile stores an uploaded file and returns the path to use as a
// file-payload resource
func UploadResourceFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file uploaded!", nil)
	}

	path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "File uploaded successfully!", fiber.Map{
		"path": utils.GetFileURL(path),
	})
}

// toSectionInputs maps the wire payload onto the service input. A nil slice
// (field absent) skips reconciliation entirely.
func toSectionInputs(sections []courseValidator.SectionPayload) []lifecycle.SectionInput {
	if sections == nil {
		return nil
	}
	out := make([]lifecycle.SectionInput, 0, len(sections))
	for _, sec := range sections {
		in := lifecycle.SectionInput{
			ID:       sec.ID,
			Title:    sec.Title,
			Status:   sec.Status,
			Position: sec.Position,
		}
		for _, res := range sec.Resources {
			in.Resources = append(in.Resources, lifecycle.ResourceInput{
				ID:       res.ID,
				Title:    res.Title,
				TypeID:   res.TypeID,
				Position: res.Position,
				File:     res.File,
				Link:     res.Link,
				Text:     res.Text,
			})
		}
		out = append(out, in)
	}
	return out
}
