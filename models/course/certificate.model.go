package course

import "gorm.io/gorm"

// CertificateRequest tracks a user's request for a course certificate
type CertificateRequest struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"index;not null"`
	CourseID     uint   `json:"course_id" gorm:"index;not null"`
	EnrollmentID uint   `json:"enrollment_id"`
	Status       string `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	IsDeleted    bool   `gorm:"default:false"`
}

// Certificate is an issued certificate; DocumentURL points at the rendered PDF
type Certificate struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"index;not null"`
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	DocumentURL string `json:"document_url"`
	IsDeleted   bool   `gorm:"default:false"`
}
