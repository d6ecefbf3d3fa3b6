package models

import "gorm.io/gorm"

// Area groups topics under a category
type Area struct {
	gorm.Model
	CategoryID  uint   `json:"category_id" gorm:"index;not null"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	IsDeleted   bool   `gorm:"default:false"`
}
