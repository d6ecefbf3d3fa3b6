package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func resourceTitles(t *testing.T, db *gorm.DB, sectionID uint) []string {
	t.Helper()
	var titles []string
	require.NoError(t, db.Model(&courseModels.Resource{}).
		Where("section_id = ?", sectionID).
		Order("position ASC, id ASC").
		Pluck("title", &titles).Error)
	return titles
}

func TestApplyContentSwapsPositions(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	first := makeSection(t, db, crs.ID, "First", 1)
	second := makeSection(t, db, crs.ID, "Second", 2)

	_, err := svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{ID: &first.ID, Position: intPtr(2)},
		{ID: &second.ID, Position: intPtr(1)},
	})
	require.NoError(t, err)

	got := sectionPositions(t, db, crs.ID)
	assert.Equal(t, 2, got[first.ID])
	assert.Equal(t, 1, got[second.ID])
}

func TestApplyContentRotatesPositions(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	a := makeSection(t, db, crs.ID, "A", 1)
	b := makeSection(t, db, crs.ID, "B", 2)
	c := makeSection(t, db, crs.ID, "C", 3)

	_, err := svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{ID: &a.ID, Position: intPtr(2)},
		{ID: &b.ID, Position: intPtr(3)},
		{ID: &c.ID, Position: intPtr(1)},
	})
	require.NoError(t, err)

	got := sectionPositions(t, db, crs.ID)
	assert.Equal(t, 2, got[a.ID])
	assert.Equal(t, 3, got[b.ID])
	assert.Equal(t, 1, got[c.ID])
}

func TestApplyContentMoveOntoUnmovedSection(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	a := makeSection(t, db, crs.ID, "A", 1)
	b := makeSection(t, db, crs.ID, "B", 2)

	_, err := svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{ID: &a.ID, Position: intPtr(2)},
		{ID: &b.ID},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	got := sectionPositions(t, db, crs.ID)
	assert.Equal(t, 1, got[a.ID])
	assert.Equal(t, 2, got[b.ID])
}

func TestApplyContentUpdatesSectionFields(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	sec := makeSection(t, db, crs.ID, "Old title", 1)

	out, err := svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{ID: &sec.ID, Title: "New title", Status: strPtr(courseModels.SectionDisabled)},
	})
	require.NoError(t, err)

	require.Len(t, out.Sections, 1)
	assert.Equal(t, "New title", out.Sections[0].Title)
	assert.Equal(t, courseModels.SectionDisabled, out.Sections[0].Status)
	assert.Equal(t, 1, out.Sections[0].Position)
}

func TestApplyContentEmptyDesiredIsNoOp(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	sec := makeSection(t, db, crs.ID, "Keep me", 1)
	makeResource(t, db, sec.ID, "doc", 1)

	out, err := svc.ApplyContent(context.Background(), crs.ID, []SectionInput{})
	require.NoError(t, err)

	require.Len(t, out.Sections, 1)
	assert.Equal(t, sec.ID, out.Sections[0].ID)
	assert.Len(t, out.Sections[0].Resources, 1)
}

func TestApplyContentPrunesAbsentSections(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	keep := makeSection(t, db, crs.ID, "Keep", 1)
	drop := makeSection(t, db, crs.ID, "Drop", 2)
	makeResource(t, db, drop.ID, "orphaned", 1)

	out, err := svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{ID: &keep.ID},
	})
	require.NoError(t, err)

	require.Len(t, out.Sections, 1)
	assert.Equal(t, keep.ID, out.Sections[0].ID)

	var count int64
	require.NoError(t, db.Model(&courseModels.Resource{}).
		Where("section_id = ?", drop.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestApplyContentCreatesNewSections(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	existing := makeSection(t, db, crs.ID, "Existing", 1)

	out, err := svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{ID: &existing.ID},
		{Title: "Fresh"},
	})
	require.NoError(t, err)

	require.Len(t, out.Sections, 2)
	assert.Equal(t, existing.ID, out.Sections[0].ID)
	assert.Equal(t, "Fresh", out.Sections[1].Title)
	assert.Equal(t, 2, out.Sections[1].Position)
}

func TestApplyContentMoveIntoVacatedPosition(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	keep := makeSection(t, db, crs.ID, "Keep", 1)
	drop := makeSection(t, db, crs.ID, "Drop", 2)
	makeResource(t, db, drop.ID, "stale", 1)

	// The kept section moves into the slot the pruned section held; the
	// removal must land before the reorder or the move collides.
	out, err := svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{ID: &keep.ID, Position: intPtr(2)},
	})
	require.NoError(t, err)

	require.Len(t, out.Sections, 1)
	assert.Equal(t, keep.ID, out.Sections[0].ID)
	assert.Equal(t, 2, out.Sections[0].Position)

	var count int64
	require.NoError(t, db.Model(&courseModels.Section{}).
		Where("course_id = ?", crs.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestApplyContentNewSectionTakesVacatedPosition(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	keep := makeSection(t, db, crs.ID, "Keep", 1)
	makeSection(t, db, crs.ID, "Drop", 2)

	out, err := svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{ID: &keep.ID},
		{Title: "Fresh", Position: intPtr(2)},
	})
	require.NoError(t, err)

	require.Len(t, out.Sections, 2)
	assert.Equal(t, keep.ID, out.Sections[0].ID)
	assert.Equal(t, "Fresh", out.Sections[1].Title)
	assert.Equal(t, 2, out.Sections[1].Position)
}

func TestApplyContentNewSectionKeptPositionFallsBack(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	keep := makeSection(t, db, crs.ID, "Keep", 1)

	// The explicit position collides with a kept section, so the allocator
	// takes over.
	out, err := svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{ID: &keep.ID},
		{Title: "Fresh", Position: intPtr(1)},
	})
	require.NoError(t, err)

	require.Len(t, out.Sections, 2)
	assert.Equal(t, "Fresh", out.Sections[1].Title)
	assert.Equal(t, 2, out.Sections[1].Position)
}

func TestApplyContentUnknownSectionID(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	sec := makeSection(t, db, crs.ID, "Only", 1)

	_, err := svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{ID: uintPtr(999)},
	})
	assert.ErrorIs(t, err, ErrSectionNotFound)

	got := sectionPositions(t, db, crs.ID)
	assert.Equal(t, 1, got[sec.ID])
}

func TestApplyContentValidation(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))

	var verr *ValidationError

	_, err := svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{Title: "A", Position: intPtr(1)},
		{Title: "B", Position: intPtr(1)},
	})
	require.ErrorAs(t, err, &verr, "duplicate positions")

	_, err = svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{Title: "A", Position: intPtr(0)},
	})
	require.ErrorAs(t, err, &verr, "non-positive position")

	_, err = svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{Title: "  "},
	})
	require.ErrorAs(t, err, &verr, "new section without title")

	_, err = svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{Title: "A", Status: strPtr("PAUSED")},
	})
	require.ErrorAs(t, err, &verr, "bad status")

	_, err = svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{Title: "A", Resources: []ResourceInput{
			{Title: "both", TypeID: 1, Link: strPtr("https://x"), Text: strPtr("y")},
		}},
	})
	require.ErrorAs(t, err, &verr, "ambiguous resource payload")
}

func TestApplyContentCreatesResources(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))

	out, err := svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{Title: "Materials", Resources: []ResourceInput{
			{Title: "slides", TypeID: 1, Position: 1, File: strPtr("uploads/slides.pdf")},
			{Title: "homepage", TypeID: 2, Position: 2, Link: strPtr("https://example.com")},
			{Title: "notes", TypeID: 3, Position: 3, Text: strPtr("read chapter 1")},
		}},
	})
	require.NoError(t, err)

	require.Len(t, out.Sections, 1)
	res := out.Sections[0].Resources
	require.Len(t, res, 3)
	assert.Equal(t, "uploads/slides.pdf", res[0].FilePath)
	assert.Equal(t, "https://example.com", res[1].LinkURL)
	assert.Equal(t, "read chapter 1", res[2].Text)
}

func TestApplyContentSkipsMalformedResource(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))

	out, err := svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{Title: "Materials", Resources: []ResourceInput{
			{Title: "good", TypeID: 1, Position: 1, Link: strPtr("https://example.com")},
			{Title: "no payload", TypeID: 1, Position: 2},
			{Title: "no type", Position: 3, Text: strPtr("body")},
		}},
	})
	require.NoError(t, err)

	require.Len(t, out.Sections, 1)
	require.Len(t, out.Sections[0].Resources, 1)
	assert.Equal(t, "good", out.Sections[0].Resources[0].Title)
}

func TestApplyContentPrunesResourcesNotKept(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	sec := makeSection(t, db, crs.ID, "Materials", 1)
	kept := makeResource(t, db, sec.ID, "kept", 1)
	makeResource(t, db, sec.ID, "dropped", 2)

	out, err := svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{ID: &sec.ID, Resources: []ResourceInput{
			{ID: &kept.ID},
			{Title: "added", TypeID: 1, Position: 3, Text: strPtr("new body")},
		}},
	})
	require.NoError(t, err)

	require.Len(t, out.Sections, 1)
	titles := resourceTitles(t, db, sec.ID)
	assert.Equal(t, []string{"kept", "added"}, titles)
}

func TestApplyContentEmptyResourceListClearsSection(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	sec := makeSection(t, db, crs.ID, "Materials", 1)
	makeResource(t, db, sec.ID, "stale", 1)

	out, err := svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{ID: &sec.ID, Resources: []ResourceInput{}},
	})
	require.NoError(t, err)

	require.Len(t, out.Sections, 1)
	assert.Empty(t, out.Sections[0].Resources)
}

func TestApplyContentIdempotentForSameTree(t *testing.T) {
	svc, db := newTestService(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))

	first, err := svc.ApplyContent(context.Background(), crs.ID, []SectionInput{
		{Title: "Materials", Resources: []ResourceInput{
			{Title: "slides", TypeID: 1, Position: 1, File: strPtr("uploads/slides.pdf")},
		}},
	})
	require.NoError(t, err)
	require.Len(t, first.Sections, 1)
	require.Len(t, first.Sections[0].Resources, 1)

	// Re-submitting the persisted tree by id must change nothing.
	desired := []SectionInput{{
		ID: &first.Sections[0].ID,
		Resources: []ResourceInput{
			{ID: &first.Sections[0].Resources[0].ID},
		},
	}}
	second, err := svc.ApplyContent(context.Background(), crs.ID, desired)
	require.NoError(t, err)
	third, err := svc.ApplyContent(context.Background(), crs.ID, desired)
	require.NoError(t, err)

	require.Len(t, third.Sections, 1)
	assert.Equal(t, second.Sections[0].ID, third.Sections[0].ID)
	assert.Equal(t, second.Sections[0].Position, third.Sections[0].Position)
	require.Len(t, third.Sections[0].Resources, 1)
	assert.Equal(t, second.Sections[0].Resources[0].ID, third.Sections[0].Resources[0].ID)
}

func TestReconcileContentRollsBackOnTransactionFailure(t *testing.T) {
	db := newTestDB(t)
	crs := makeCourse(t, db, courseModels.TypeAsync, date(2025, time.April, 1), date(2025, time.April, 10))
	sec := makeSection(t, db, crs.ID, "Original", 1)
	makeResource(t, db, sec.ID, "doc", 1)

	forced := errors.New("forced failure")
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := reconcileContent(tx, crs.ID, []SectionInput{
			{Title: "Replacement", Resources: []ResourceInput{
				{Title: "new doc", TypeID: 1, Position: 1, Text: strPtr("body")},
			}},
		}); err != nil {
			return err
		}
		return forced
	})
	require.ErrorIs(t, err, forced)

	var sections []courseModels.Section
	require.NoError(t, db.Where("course_id = ?", crs.ID).Find(&sections).Error)
	require.Len(t, sections, 1)
	assert.Equal(t, sec.ID, sections[0].ID)
	assert.Equal(t, "Original", sections[0].Title)
	assert.Equal(t, []string{"doc"}, resourceTitles(t, db, sec.ID))
}

func TestApplyContentCourseNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ApplyContent(context.Background(), 424242, []SectionInput{
		{Title: "Anything"},
	})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}
