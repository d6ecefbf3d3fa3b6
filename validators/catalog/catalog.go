package catalogValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

// CatalogEntryRequest covers categories, areas and topics; ParentID is the
// owning category (for areas) or area (for topics) and ignored for categories.
type CatalogEntryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"max=1000"`
	ParentID    uint   `json:"parent_id"`
}

type RequestPayload struct {
	Title  string `json:"title" validate:"required,min=3,max=150"`
	Detail string `json:"detail" validate:"required,min=5"`
}

type ThreadPayload struct {
	Title string `json:"title" validate:"required,min=3,max=150"`
	Body  string `json:"body" validate:"required,min=5"`
}

// EntryID parses and validates the :id route parameter
func EntryID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}
		c.Locals("entryID", uint(id))
		return c.Next()
	}
}

func CatalogEntry() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CatalogEntryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}
		c.Locals("validatedEntry", reqData)
		return c.Next()
	}
}

func TrainingRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RequestPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}
		c.Locals("validatedRequest", reqData)
		return c.Next()
	}
}

func Thread() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ThreadPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}
		c.Locals("validatedThread", reqData)
		return c.Next()
	}
}
