package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance for flat request structs
var Validate = validator.New()

// FieldErrors flattens validator errors into a field -> message map for the
// standard validation response envelope.
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["body"] = "Invalid request body!"
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required!"
		case "email":
			out[field] = "Must be a valid email address!"
		case "min":
			out[field] = "Value is too short!"
		case "max":
			out[field] = "Value is too long!"
		case "oneof":
			out[field] = "Value must be one of: " + fe.Param()
		default:
			out[field] = "Invalid value!"
		}
	}
	return out
}
