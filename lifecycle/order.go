package lifecycle

import (
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// NextPosition returns the next sequential position for a new section of the
// course: max(position) over its existing sections plus one, or 1 when the
// course has none. It must run on the same transaction as the insert it
// services so two concurrent creations cannot allocate the same position.
func NextPosition(tx *gorm.DB, courseID uint) (int, error) {
	var max int
	err := tx.Model(&courseModels.Section{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}
