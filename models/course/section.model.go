package course

import "time"

// Section statuses
const (
	SectionEnabled  = "ENABLED"
	SectionDisabled = "DISABLED"
)

// Section is an ordered block of content within a course. Position is unique
// per course; the composite index backs that invariant at the database level.
// Sections are hard-deleted (no DeletedAt) so freed positions can be reused.
type Section struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	CourseID  uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_sections_course_position"`
	Title     string     `json:"title"`
	Status    string     `json:"status" gorm:"default:'ENABLED'"` // ENABLED, DISABLED
	Position  int        `json:"position" gorm:"not null;uniqueIndex:idx_sections_course_position"`
	Resources []Resource `json:"resources,omitempty" gorm:"foreignKey:SectionID"`
}
