package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCancelled = "CANCELLED"
	EnrollmentCompleted = "COMPLETED"
)

// Enrollment tracks a user's enrollment in a course
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	Status      string     `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, CANCELLED, COMPLETED
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`
}
