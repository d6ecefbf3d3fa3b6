package lifecycle

import (
	"context"
	"errors"
	"strings"
	"time"

	courseModels "lms/models/course"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service owns the course lifecycle: status recomputation, section order
// allocation and content reconciliation. It is the only writer of the
// section/resource subtree during an edit.
type Service struct {
	db *gorm.DB
}

// NewService wires the service to a database handle
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateCourse persists a new course. Type is fixed here for good; the status
// flags start false and settle on the next scheduler tick.
func (s *Service) CreateCourse(ctx context.Context, title, description, courseType string, topicID uint, start, end time.Time) (*courseModels.Course, error) {
	if courseType != courseModels.TypeSync && courseType != courseModels.TypeAsync {
		return nil, validationError("type", "type must be SYNC or ASYNC")
	}
	if strings.TrimSpace(title) == "" {
		return nil, validationError("title", "title is required")
	}
	if start.After(end) {
		return nil, validationError("end_date", "start date must not be after end date")
	}

	crs := courseModels.Course{
		Title:       title,
		Description: description,
		Type:        courseType,
		TopicID:     topicID,
		StartDate:   datatypes.Date(start),
		EndDate:     datatypes.Date(end),
	}
	if err := s.db.WithContext(ctx).Create(&crs).Error; err != nil {
		return nil, err
	}
	return &crs, nil
}

// UpdateCourse updates the course's scalar fields and, when a desired section
// tree is supplied, reconciles the persisted content with it, all in one
// transaction. The returned course carries the full reloaded tree.
func (s *Service) UpdateCourse(ctx context.Context, id uint, fields CourseFields, desired []SectionInput) (*courseModels.Course, error) {
	if err := validateDesired(desired); err != nil {
		return nil, err
	}

	var out *courseModels.Course
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		crs, err := lockCourse(tx, id)
		if err != nil {
			return err
		}

		// Date sanity is checked against the merged window before any write
		start := time.Time(crs.StartDate)
		end := time.Time(crs.EndDate)
		if fields.StartDate != nil {
			start = *fields.StartDate
		}
		if fields.EndDate != nil {
			end = *fields.EndDate
		}
		if start.After(end) {
			return validationError("end_date", "start date must not be after end date")
		}

		updates := make(map[string]interface{})
		if fields.Title != nil {
			updates["title"] = *fields.Title
		}
		if fields.Description != nil {
			updates["description"] = *fields.Description
		}
		if fields.TopicID != nil {
			updates["topic_id"] = *fields.TopicID
		}
		if fields.StartDate != nil {
			updates["start_date"] = datatypes.Date(*fields.StartDate)
		}
		if fields.EndDate != nil {
			updates["end_date"] = datatypes.Date(*fields.EndDate)
		}
		if len(updates) > 0 {
			res := tx.Model(&courseModels.Course{}).
				Where("id = ? AND is_deleted = ?", id, false).
				Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrCourseNotFound
			}
		}

		if desired != nil {
			if err := reconcileContent(tx, id, desired); err != nil {
				return err
			}
		}

		reloaded, err := loadCourseTree(tx, id)
		if err != nil {
			return err
		}
		out = reloaded
		return nil
	})
	if err != nil {
		return nil, translateErr(err)
	}
	return out, nil
}

// CreateSection creates one section, allocating the next position when the
// caller supplies none or a taken one.
func (s *Service) CreateSection(ctx context.Context, courseID uint, in SectionInput) (*courseModels.Section, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, validationError("title", "title is required")
	}
	if in.Position != nil && *in.Position < 1 {
		return nil, validationError("position", "position must be a positive integer")
	}

	var out courseModels.Section
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockCourse(tx, courseID); err != nil {
			return err
		}

		var pos int
		if in.Position != nil {
			var count int64
			if err := tx.Model(&courseModels.Section{}).
				Where("course_id = ? AND position = ?", courseID, *in.Position).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				pos = *in.Position
			}
		}
		if pos == 0 {
			p, err := NextPosition(tx, courseID)
			if err != nil {
				return err
			}
			pos = p
		}

		status := courseModels.SectionEnabled
		if in.Status != nil {
			status = *in.Status
		}
		out = courseModels.Section{
			CourseID: courseID,
			Title:    in.Title,
			Status:   status,
			Position: pos,
		}
		return tx.Create(&out).Error
	})
	if err != nil {
		return nil, translateErr(err)
	}
	return &out, nil
}

// DeleteCourse removes a course and its owned subtree. Courses with active
// enrollments are refused.
func (s *Service) DeleteCourse(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockCourse(tx, id); err != nil {
			return err
		}

		var active int64
		if err := tx.Model(&courseModels.Enrollment{}).
			Where("course_id = ? AND status = ? AND is_deleted = ?", id, courseModels.EnrollmentActive, false).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrActiveEnrollments
		}

		// Ownership traversal: resources, then sections, then the course row
		var sectionIDs []uint
		if err := tx.Model(&courseModels.Section{}).
			Where("course_id = ?", id).
			Pluck("id", &sectionIDs).Error; err != nil {
			return err
		}
		if len(sectionIDs) > 0 {
			if err := tx.Where("section_id IN ?", sectionIDs).Delete(&courseModels.Resource{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", sectionIDs).Delete(&courseModels.Section{}).Error; err != nil {
				return err
			}
		}
		return tx.Model(&courseModels.Course{}).Where("id = ?", id).
			Update("is_deleted", true).Error
	})
	return translateErr(err)
}

// GetCourse loads a course with its ordered sections and resources
func (s *Service) GetCourse(ctx context.Context, id uint) (*courseModels.Course, error) {
	return loadCourseTree(s.db.WithContext(ctx), id)
}

// lockCourse fetches the course row under FOR UPDATE, serializing concurrent
// edits of the same course. SQLite has no row locks; its single-writer
// transaction gives the same guarantee in tests.
func lockCourse(tx *gorm.DB, id uint) (*courseModels.Course, error) {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var crs courseModels.Course
	err := q.Where("id = ? AND is_deleted = ?", id, false).First(&crs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &crs, nil
}

func loadCourseTree(tx *gorm.DB, id uint) (*courseModels.Course, error) {
	var crs courseModels.Course
	err := tx.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Sections.Resources", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&crs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &crs, nil
}

// translateErr maps storage-level unique violations onto the retryable
// conflict error; everything else passes through.
func translateErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrPositionConflict
	}
	return err
}
