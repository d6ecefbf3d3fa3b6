package lifecycle

import "time"

// SectionInput is one desired section in a reconciliation payload. A nil ID
// means the section is new; a non-nil ID must reference a section already
// belonging to the course. Nil optional fields are left unchanged.
type SectionInput struct {
	ID        *uint
	Title     string
	Status    *string
	Position  *int
	Resources []ResourceInput
}

// ResourceInput is one desired resource. A nil ID means the resource is to be
// created this pass; a non-nil ID keeps the already-persisted resource.
// Exactly one of File, Link and Text must carry the payload for new resources.
type ResourceInput struct {
	ID       *uint
	Title    string
	TypeID   uint
	Position int
	File     *string
	Link     *string
	Text     *string
}

// CourseFields are the client-editable scalar fields of a course. Type and the
// three status flags are deliberately absent: type is immutable and the flags
// belong to the status scheduler.
type CourseFields struct {
	Title       *string
	Description *string
	TopicID     *uint
	StartDate   *time.Time
	EndDate     *time.Time
}

// payload returns which payload variant a resource carries, or "" when it has
// none, and whether the variant is unambiguous.
func (r ResourceInput) payload() (kind string, ok bool) {
	n := 0
	if r.File != nil && *r.File != "" {
		kind, n = "file", n+1
	}
	if r.Link != nil && *r.Link != "" {
		kind, n = "link", n+1
	}
	if r.Text != nil && *r.Text != "" {
		kind, n = "text", n+1
	}
	return kind, n <= 1
}
