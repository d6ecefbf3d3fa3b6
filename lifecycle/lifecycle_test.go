package lifecycle

import (
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&courseModels.Course{},
		&courseModels.Section{},
		&courseModels.Resource{},
		&courseModels.ResourceType{},
		&courseModels.Enrollment{},
	))
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewService(db), db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func makeCourse(t *testing.T, db *gorm.DB, courseType string, start, end time.Time) *courseModels.Course {
	t.Helper()
	crs := &courseModels.Course{
		Title:     "Course under test",
		Type:      courseType,
		StartDate: datatypes.Date(start),
		EndDate:   datatypes.Date(end),
	}
	require.NoError(t, db.Create(crs).Error)
	return crs
}

func makeSection(t *testing.T, db *gorm.DB, courseID uint, title string, position int) *courseModels.Section {
	t.Helper()
	sec := &courseModels.Section{
		CourseID: courseID,
		Title:    title,
		Status:   courseModels.SectionEnabled,
		Position: position,
	}
	require.NoError(t, db.Create(sec).Error)
	return sec
}

func makeResource(t *testing.T, db *gorm.DB, sectionID uint, title string, position int) *courseModels.Resource {
	t.Helper()
	res := &courseModels.Resource{
		SectionID: sectionID,
		TypeID:    1,
		Title:     title,
		LinkURL:   "https://example.com/" + title,
		Position:  position,
	}
	require.NoError(t, db.Create(res).Error)
	return res
}

func sectionPositions(t *testing.T, db *gorm.DB, courseID uint) map[uint]int {
	t.Helper()
	var sections []courseModels.Section
	require.NoError(t, db.Where("course_id = ?", courseID).Find(&sections).Error)
	out := make(map[uint]int, len(sections))
	for _, sec := range sections {
		out[sec.ID] = sec.Position
	}
	return out
}

func uintPtr(v uint) *uint { return &v }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
