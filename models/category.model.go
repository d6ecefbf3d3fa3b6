package models

import "gorm.io/gorm"

// Category is the top level of the course catalog hierarchy
type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	IsDeleted   bool   `gorm:"default:false"`
}
