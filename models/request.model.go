package models

import "gorm.io/gorm"

// TrainingRequest is a user-submitted request for a new training offering
type TrainingRequest struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	Title     string `json:"title"`
	Detail    string `json:"detail" gorm:"type:text"`
	Status    string `json:"status" gorm:"default:'OPEN'"` // OPEN, APPROVED, REJECTED
	IsDeleted bool   `json:"is_deleted" gorm:"default:false"`
}
