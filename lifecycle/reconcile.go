package lifecycle

import (
	"context"
	"fmt"
	"log"
	"strings"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// ApplyContent reconciles the persisted section/resource tree of a course with
// the desired tree, as one atomic transaction, and returns the reloaded
// course. Everything rolls back on error except individual resource creation
// failures, which are logged and skipped.
func (s *Service) ApplyContent(ctx context.Context, courseID uint, desired []SectionInput) (*courseModels.Course, error) {
	if err := validateDesired(desired); err != nil {
		return nil, err
	}

	var out *courseModels.Course
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockCourse(tx, courseID); err != nil {
			return err
		}
		if err := reconcileContent(tx, courseID, desired); err != nil {
			return err
		}
		crs, err := loadCourseTree(tx, courseID)
		if err != nil {
			return err
		}
		out = crs
		return nil
	})
	if err != nil {
		return nil, translateErr(err)
	}
	return out, nil
}

// validateDesired rejects payloads that can never be applied, before any
// transaction starts: duplicate or non-positive explicit positions, new
// sections without a title, and resources carrying more than one payload
// variant.
func validateDesired(desired []SectionInput) error {
	seen := make(map[int]bool)
	for _, in := range desired {
		if in.Position != nil {
			if *in.Position < 1 {
				return validationError("sections", "position must be a positive integer")
			}
			if seen[*in.Position] {
				return validationError("sections", fmt.Sprintf("duplicate section position %d", *in.Position))
			}
			seen[*in.Position] = true
		}
		if in.ID == nil && strings.TrimSpace(in.Title) == "" {
			return validationError("sections", "title is required for new sections")
		}
		if in.Status != nil && *in.Status != courseModels.SectionEnabled && *in.Status != courseModels.SectionDisabled {
			return validationError("sections", "status must be ENABLED or DISABLED")
		}
		for _, r := range in.Resources {
			if _, ok := r.payload(); !ok {
				return validationError("resources", "a resource must carry only one of file, link and text")
			}
		}
	}
	return nil
}

// reconcileContent diffs the desired tree against persisted state on the
// caller's transaction and applies the minimal creates, updates and deletes.
// The caller holds the course row lock.
func reconcileContent(tx *gorm.DB, courseID uint, desired []SectionInput) error {
	// An empty desired list is a content no-op, not a truncation; pruning only
	// happens relative to a non-empty tree.
	if len(desired) == 0 {
		return nil
	}

	var persisted []courseModels.Section
	if err := tx.Where("course_id = ?", courseID).Find(&persisted).Error; err != nil {
		return err
	}
	current := make(map[uint]courseModels.Section, len(persisted))
	for _, sec := range persisted {
		current[sec.ID] = sec
	}

	// Step 1: partition into existing (carry an id) and new.
	var existing, fresh []int
	kept := make(map[uint]bool)
	for i, in := range desired {
		if in.ID == nil {
			fresh = append(fresh, i)
			continue
		}
		if _, ok := current[*in.ID]; !ok {
			return ErrSectionNotFound
		}
		kept[*in.ID] = true
		existing = append(existing, i)
	}

	// Resolve the final position of every kept section and collect the moves.
	// A move landing on an unchanged section's position is caught here, while
	// nothing has been written yet.
	type move struct {
		id uint
		to int
	}
	var moves []move
	finals := make(map[int]bool)
	for _, i := range existing {
		in := desired[i]
		pos := current[*in.ID].Position
		if in.Position != nil && *in.Position != pos {
			pos = *in.Position
			moves = append(moves, move{id: *in.ID, to: pos})
		}
		if finals[pos] {
			return validationError("sections", fmt.Sprintf("section position %d assigned twice", pos))
		}
		finals[pos] = true
	}

	// Step 2: delete the sections absent from the desired tree, resources
	// first. Removal runs before the reorder so a kept section can move into
	// a position a pruned section just vacated.
	var removed []uint
	for _, sec := range persisted {
		if !kept[sec.ID] {
			removed = append(removed, sec.ID)
		}
	}
	if len(removed) > 0 {
		if err := tx.Where("section_id IN ?", removed).Delete(&courseModels.Resource{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", removed).Delete(&courseModels.Section{}).Error; err != nil {
			return err
		}
	}

	// Step 3: safe batch reorder. Park every moved row at the negative of its
	// final position first, so no statement of the batch can collide with a
	// live row, then assign the final values. The (course_id, position) unique
	// index holds after every single statement.
	for _, m := range moves {
		if err := tx.Model(&courseModels.Section{}).Where("id = ?", m.id).
			Update("position", -m.to).Error; err != nil {
			return err
		}
	}
	for _, m := range moves {
		if err := tx.Model(&courseModels.Section{}).Where("id = ?", m.id).
			Update("position", m.to).Error; err != nil {
			return err
		}
	}

	// Step 4: mutable section fields, independent of ordering.
	for _, i := range existing {
		in := desired[i]
		updates := make(map[string]interface{})
		if strings.TrimSpace(in.Title) != "" {
			updates["title"] = in.Title
		}
		if in.Status != nil {
			updates["status"] = *in.Status
		}
		if len(updates) == 0 {
			continue
		}
		if err := tx.Model(&courseModels.Section{}).Where("id = ?", *in.ID).
			Updates(updates).Error; err != nil {
			return err
		}
	}

	// Step 5: create new sections. An explicit position is honored unless a
	// kept section ends up holding it; then the allocator assigns the next
	// free slot. Positions vacated by the removals above are free again.
	sectionIDs := make([]uint, len(desired))
	for _, i := range existing {
		sectionIDs[i] = *desired[i].ID
	}
	taken := make(map[int]bool, len(finals))
	for pos := range finals {
		taken[pos] = true
	}
	for _, i := range fresh {
		in := desired[i]
		var pos int
		if in.Position != nil && !taken[*in.Position] {
			pos = *in.Position
		} else {
			p, err := NextPosition(tx, courseID)
			if err != nil {
				return err
			}
			pos = p
		}
		taken[pos] = true

		status := courseModels.SectionEnabled
		if in.Status != nil {
			status = *in.Status
		}
		sec := courseModels.Section{
			CourseID: courseID,
			Title:    in.Title,
			Status:   status,
			Position: pos,
		}
		if err := tx.Create(&sec).Error; err != nil {
			return err
		}
		sectionIDs[i] = sec.ID
	}

	// Step 6: create the desired resources. Resources are never updated in
	// place: an input with an id keeps the persisted row, one without is
	// created fresh. A single bad resource must not block saving the rest of
	// the course, so creation failures roll back to a savepoint, get logged
	// and are skipped.
	keep := make(map[uint][]uint, len(desired))
	for i, in := range desired {
		secID := sectionIDs[i]
		ids := make([]uint, 0, len(in.Resources))
		for _, r := range in.Resources {
			if r.ID != nil {
				ids = append(ids, *r.ID)
				continue
			}
			res, ok := buildResource(secID, r)
			if !ok {
				log.Printf("[RECONCILE] course %d section %d: skipping malformed resource %q", courseID, secID, r.Title)
				continue
			}
			err := tx.Transaction(func(tx2 *gorm.DB) error {
				return tx2.Create(res).Error
			})
			if err != nil {
				log.Printf("[RECONCILE] course %d section %d: skipping resource %q: %v", courseID, secID, r.Title, err)
				continue
			}
			ids = append(ids, res.ID)
		}
		keep[secID] = ids
	}

	// Step 7: within every touched section, delete the resources that were
	// neither kept nor created this pass.
	for secID, ids := range keep {
		q := tx.Where("section_id = ?", secID)
		if len(ids) > 0 {
			q = q.Where("id NOT IN ?", ids)
		}
		if err := q.Delete(&courseModels.Resource{}).Error; err != nil {
			return err
		}
	}

	return nil
}

// buildResource maps a valid resource input onto its row, or reports it as
// malformed (no payload, ambiguous payload, missing type or title).
func buildResource(sectionID uint, in ResourceInput) (*courseModels.Resource, bool) {
	kind, ok := in.payload()
	if !ok || kind == "" || in.TypeID == 0 || strings.TrimSpace(in.Title) == "" {
		return nil, false
	}
	res := &courseModels.Resource{
		SectionID: sectionID,
		TypeID:    in.TypeID,
		Title:     in.Title,
		Position:  in.Position,
	}
	switch kind {
	case "file":
		res.FilePath = *in.File
	case "link":
		res.LinkURL = *in.Link
	case "text":
		res.Text = *in.Text
	}
	return res, true
}
