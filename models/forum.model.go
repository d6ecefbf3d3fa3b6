package models

import "gorm.io/gorm"

// ForumThread is a discussion thread attached to a course
type ForumThread struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	Title     string `json:"title"`
	Body      string `json:"body" gorm:"type:text"`
	IsDeleted bool   `gorm:"default:false"`
}
