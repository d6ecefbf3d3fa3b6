package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course types. The type is fixed at creation and governs which status rule
// branch applies on every scheduler tick.
const (
	TypeSync  = "SYNC"
	TypeAsync = "ASYNC"
)

// Course represents a training course. Active, Visible and EnrollmentOpen are
// derived from Type and the date window; the status scheduler is their only
// writer and they are never accepted from clients.
type Course struct {
	gorm.Model
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Type           string         `json:"type" gorm:"not null"` // SYNC, ASYNC
	TopicID        uint           `json:"topic_id" gorm:"index"`
	StartDate      datatypes.Date `json:"start_date"`
	EndDate        datatypes.Date `json:"end_date"`
	Active         bool           `json:"active" gorm:"default:false"`
	Visible        bool           `json:"visible" gorm:"default:false"`
	EnrollmentOpen bool           `json:"enrollment_open" gorm:"default:false"`
	IsDeleted      bool           `gorm:"default:false"`
	Sections       []Section      `json:"sections,omitempty" gorm:"foreignKey:CourseID"`
}
