package course

import (
	"time"

	"gorm.io/gorm"
)

// Resource is a single piece of content in a section. Exactly one of
// FilePath, LinkURL and Text carries the payload. Resources are hard-deleted
// together with their section.
type Resource struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SectionID uint      `json:"section_id" gorm:"index;not null"`
	TypeID    uint      `json:"type_id" gorm:"index;not null"`
	Title     string    `json:"title"`
	FilePath  string    `json:"file_path"`
	LinkURL   string    `json:"link_url"`
	Text      string    `json:"text" gorm:"type:text"`
	Position  int       `json:"position" gorm:"default:0"`
}

// ResourceType is the fixed lookup of resource kinds, seeded at migration
type ResourceType struct {
	gorm.Model
	Name      string `json:"name" gorm:"unique;not null"`
	IsDeleted bool   `gorm:"default:false"`
}
