package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPositionEmptyCourse(t *testing.T) {
	db := newTestDB(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))

	pos, err := NextPosition(db, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
}

func TestNextPositionAfterGaps(t *testing.T) {
	db := newTestDB(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	makeSection(t, db, crs.ID, "One", 1)
	makeSection(t, db, crs.ID, "Two", 2)
	makeSection(t, db, crs.ID, "Five", 5)

	pos, err := NextPosition(db, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, pos)
}

func TestNextPositionScopedPerCourse(t *testing.T) {
	db := newTestDB(t)
	first := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	second := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	makeSection(t, db, first.ID, "One", 1)
	makeSection(t, db, first.ID, "Two", 2)

	pos, err := NextPosition(db, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
}

func TestCreateSectionSequentialPositions(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))

	first, err := svc.CreateSection(ctx, crs.ID, SectionInput{Title: "Intro"})
	require.NoError(t, err)
	second, err := svc.CreateSection(ctx, crs.ID, SectionInput{Title: "Basics"})
	require.NoError(t, err)
	third, err := svc.CreateSection(ctx, crs.ID, SectionInput{Title: "Advanced"})
	require.NoError(t, err)

	assert.Equal(t, 1, first.Position)
	assert.Equal(t, 2, second.Position)
	assert.Equal(t, 3, third.Position)
}

func TestCreateSectionConcurrentCallsGetDistinctPositions(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))

	const callers = 8
	positions := make([]int, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sec, err := svc.CreateSection(context.Background(), crs.ID, SectionInput{
				Title: fmt.Sprintf("Section %d", i),
			})
			if err != nil {
				errs[i] = err
				return
			}
			positions[i] = sec.Position
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool, callers)
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[positions[i]], "position %d allocated twice", positions[i])
		seen[positions[i]] = true
	}
	// No gaps either: each call got max+1 under the course lock.
	for p := 1; p <= callers; p++ {
		assert.True(t, seen[p], "position %d missing", p)
	}
}

func TestCreateSectionExplicitFreePosition(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))

	sec, err := svc.CreateSection(context.Background(), crs.ID, SectionInput{Title: "Appendix", Position: intPtr(7)})
	require.NoError(t, err)
	assert.Equal(t, 7, sec.Position)
}

func TestCreateSectionTakenPositionFallsBack(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	makeSection(t, db, crs.ID, "One", 1)
	makeSection(t, db, crs.ID, "Two", 2)

	sec, err := svc.CreateSection(context.Background(), crs.ID, SectionInput{Title: "Extra", Position: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 3, sec.Position)
}

func TestCreateSectionValidation(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))

	_, err := svc.CreateSection(context.Background(), crs.ID, SectionInput{Title: "   "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.CreateSection(context.Background(), crs.ID, SectionInput{Title: "Bad", Position: intPtr(0)})
	require.ErrorAs(t, err, &verr)
}

func TestCreateSectionCourseNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateSection(context.Background(), 999, SectionInput{Title: "Orphan"})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}
