package lifecycle

import (
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
)

func TestStatusSchedulerColdStartRecompute(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeSync, date(2025, time.April, 1), date(2025, time.April, 10))

	sched := NewStatusScheduler(svc, FixedClock(date(2025, time.April, 5)), time.Hour)
	sched.Start()
	defer sched.Stop()

	// Start runs one tick synchronously before the periodic loop begins.
	got := reloadCourse(t, db, crs.ID)
	assert.True(t, got.Active)
	assert.True(t, got.Visible)
	assert.False(t, got.EnrollmentOpen)
}

func TestStatusSchedulerClampsInterval(t *testing.T) {
	svc, _ := newTestService(t)

	sched := NewStatusScheduler(svc, SystemClock(), 0)
	assert.Equal(t, time.Second, sched.interval)
}

func TestStatusSchedulerStopWithoutStart(t *testing.T) {
	svc, _ := newTestService(t)

	sched := NewStatusScheduler(svc, SystemClock(), time.Minute)
	sched.Stop()
}
