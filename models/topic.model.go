package models

import "gorm.io/gorm"

// Topic is the leaf of the catalog hierarchy; courses hang off topics
type Topic struct {
	gorm.Model
	AreaID      uint   `json:"area_id" gorm:"index;not null"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	IsDeleted   bool   `gorm:"default:false"`
}
