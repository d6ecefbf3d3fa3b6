package lifecycle

import (
	"context"
	"log"
	"time"

	courseModels "lms/models/course"
)

// Date windows relative to the clock's day
const (
	windowEnded   = "ENDED"   // end_date < tomorrow
	windowOngoing = "ONGOING" // start_date < tomorrow <= end_date
	windowFuture  = "FUTURE"  // start_date >= tomorrow
)

type statusRule struct {
	courseType     string
	window         string
	active         bool
	visible        bool
	enrollmentOpen bool
}

// The six disjoint buckets. Ended synchronous courses stay visible as an
// archive; ended asynchronous courses disappear. Only future courses (and
// ongoing asynchronous ones) accept enrollments.
var statusRules = []statusRule{
	{courseModels.TypeSync, windowEnded, false, true, false},
	{courseModels.TypeSync, windowOngoing, true, true, false},
	{courseModels.TypeSync, windowFuture, false, true, true},
	{courseModels.TypeAsync, windowEnded, false, false, false},
	{courseModels.TypeAsync, windowOngoing, true, true, true},
	{courseModels.TypeAsync, windowFuture, false, true, true},
}

// RecomputeStatuses applies the status rule table to every course as one bulk
// update per bucket. Buckets are independent: a failed bucket is logged and the
// remaining ones still run, since the next tick recomputes everything anyway.
// The write is idempotent for an unchanged clock date.
func (s *Service) RecomputeStatuses(ctx context.Context, now time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	for _, rule := range statusRules {
		q := s.db.WithContext(ctx).Model(&courseModels.Course{}).
			Where("type = ? AND is_deleted = ?", rule.courseType, false)

		switch rule.window {
		case windowEnded:
			q = q.Where("end_date < ?", tomorrow)
		case windowOngoing:
			q = q.Where("start_date < ? AND end_date >= ?", tomorrow, tomorrow)
		case windowFuture:
			q = q.Where("start_date >= ?", tomorrow)
		}

		err := q.Updates(map[string]interface{}{
			"active":          rule.active,
			"visible":         rule.visible,
			"enrollment_open": rule.enrollmentOpen,
		}).Error
		if err != nil {
			log.Printf("[STATUS-SCHEDULER] %s/%s bucket update failed: %v", rule.courseType, rule.window, err)
		}
	}
}
