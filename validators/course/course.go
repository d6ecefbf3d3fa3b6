package courseValidator

import (
	"strconv"
	"strings"
	"time"

	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// ResourcePayload is the wire form of one desired resource. Exactly one of
// file, link and text may be set.
type ResourcePayload struct {
	ID       *uint   `json:"id"`
	Title    string  `json:"title"`
	TypeID   uint    `json:"type_id"`
	Position int     `json:"position"`
	File     *string `json:"file"`
	Link     *string `json:"link"`
	Text     *string `json:"text"`
}

// SectionPayload is the wire form of one desired section; a section without an
// id is new.
type SectionPayload struct {
	ID        *uint             `json:"id"`
	Title     string            `json:"title"`
	Status    *string           `json:"status"`
	Position  *int              `json:"position"`
	Resources []ResourcePayload `json:"resources"`
}

type CreateCourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	TopicID     uint   `json:"topic_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type UpdateCourseRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	TopicID     *uint            `json:"topic_id"`
	StartDate   *string          `json:"start_date"`
	EndDate     *string          `json:"end_date"`
	Sections    []SectionPayload `json:"sections"`
}

type CreateSectionRequest struct {
	Title    string  `json:"title"`
	Status   *string `json:"status"`
	Position *int    `json:"position"`
}

// CourseID parses and validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}
		c.Locals("courseID", uint(id))
		return c.Next()
	}
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Type != courseModels.TypeSync && reqData.Type != courseModels.TypeAsync {
			errors["type"] = "Type must be SYNC or ASYNC!"
		}

		start, err := time.Parse(dateLayout, reqData.StartDate)
		if err != nil {
			errors["start_date"] = "Start date must be YYYY-MM-DD!"
		}
		end, err := time.Parse(dateLayout, reqData.EndDate)
		if err != nil {
			errors["end_date"] = "End date must be YYYY-MM-DD!"
		} else if len(errors) == 0 && start.After(end) {
			errors["end_date"] = "Start date must not be after end date!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			errors["title"] = "Title must not be empty!"
		}
		if reqData.StartDate != nil {
			if _, err := time.Parse(dateLayout, *reqData.StartDate); err != nil {
				errors["start_date"] = "Start date must be YYYY-MM-DD!"
			}
		}
		if reqData.EndDate != nil {
			if _, err := time.Parse(dateLayout, *reqData.EndDate); err != nil {
				errors["end_date"] = "End date must be YYYY-MM-DD!"
			}
		}

		validateSections(reqData.Sections, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func CreateSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateSectionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Position != nil && *reqData.Position < 1 {
			errors["position"] = "Position must be a positive integer!"
		}
		if reqData.Status != nil && *reqData.Status != courseModels.SectionEnabled && *reqData.Status != courseModels.SectionDisabled {
			errors["status"] = "Status must be ENABLED or DISABLED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}

// validateSections checks the desired tree at the boundary: duplicate explicit
// positions and ambiguous resource payloads never reach the service.
func validateSections(sections []SectionPayload, errors map[string]string) {
	seen := make(map[int]bool)
	for _, sec := range sections {
		if sec.Position != nil {
			if *sec.Position < 1 {
				errors["sections"] = "Section positions must be positive integers!"
			} else if seen[*sec.Position] {
				errors["sections"] = "Duplicate section positions in payload!"
			}
			seen[*sec.Position] = true
		}
		if sec.ID == nil && strings.TrimSpace(sec.Title) == "" {
			errors["sections"] = "New sections require a title!"
		}
		for _, res := range sec.Resources {
			n := 0
			if res.File != nil && *res.File != "" {
				n++
			}
			if res.Link != nil && *res.Link != "" {
				n++
			}
			if res.Text != nil && *res.Text != "" {
				n++
			}
			if n > 1 {
				errors["resources"] = "A resource must carry only one of file, link and text!"
			}
		}
	}
}
