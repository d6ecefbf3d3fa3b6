package lifecycle

import "errors"

var (
	// ErrCourseNotFound is returned when the target course does not exist
	ErrCourseNotFound = errors.New("course not found")

	// ErrSectionNotFound is returned when a desired section references an id
	// that does not belong to the course
	ErrSectionNotFound = errors.New("section not found")

	// ErrPositionConflict is returned when a concurrent edit took a section
	// position first; callers should refetch and retry
	ErrPositionConflict = errors.New("section position conflict")

	// ErrActiveEnrollments is returned when deleting a course that still has
	// active enrollments
	ErrActiveEnrollments = errors.New("course has active enrollments")
)

// ValidationError carries field-level detail for requests rejected before any
// write happens.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	for field, msg := range e.Fields {
		return field + ": " + msg
	}
	return "validation failed"
}

func validationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
