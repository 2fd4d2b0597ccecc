package planner

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/yigit/courseplanner/internal/app/models"
)

// CorequisiteNote is attached to entries added on behalf of another course.
const CorequisiteNote = "Auto-added as corequisite of %s"

// Mutator applies additions, removals and status changes to plans. Every
// method returns a new Plan and leaves its input untouched.
type Mutator struct {
	newID func() string
}

// MutatorOption customizes a Mutator.
type MutatorOption func(*Mutator)

// WithIDGenerator replaces the uuid-based entry id generator.
func WithIDGenerator(fn func() string) MutatorOption {
	return func(m *Mutator) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// NewMutator creates a Mutator.
func NewMutator(opts ...MutatorOption) *Mutator {
	m := &Mutator{newID: uuid.NewString}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddRequest carries a validated course and its resolved corequisites.
type AddRequest struct {
	Course       models.Course
	Decision     AddDecision
	Corequisites []models.Course
	Term         models.Term
	Status       models.PlanStatus
}

// Add appends the course and its corequisites as one unit. On any error the
// returned plan is the input unchanged.
func (m *Mutator) Add(plan models.Plan, req AddRequest) (models.Plan, []models.PlannedCourse, error) {
	if !req.Decision.Addable {
		return plan, nil, fmt.Errorf("%w: %s", ErrNotAddable, req.Course.Code)
	}

	status := req.Status
	if status == "" {
		status = models.PlanStatusPlanning
	}
	if !status.Valid() {
		return plan, nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	codes := make(map[string]struct{}, len(req.Corequisites)+1)
	for _, c := range append([]models.Course{req.Course}, req.Corequisites...) {
		if _, dup := codes[c.Code]; dup || plan.Contains(c.Code) {
			return plan, nil, fmt.Errorf("%w: %s", ErrAlreadyPlanned, c.Code)
		}
		codes[c.Code] = struct{}{}
	}

	primary := m.entry(req.Course, req.Term, status)
	if len(req.Decision.Warnings) > 0 {
		primary.ValidationStatus = models.ValidationWarning
		primary.ValidationNotes = append([]string(nil), req.Decision.Warnings...)
	}

	added := []models.PlannedCourse{primary}
	for _, coreq := range req.Corequisites {
		entry := m.entry(coreq, req.Term, status)
		entry.ValidationNotes = []string{fmt.Sprintf(CorequisiteNote, req.Course.Code)}
		added = append(added, entry)
	}

	out := plan.Clone()
	out.Courses = append(out.Courses, added...)
	return out, added, nil
}

func (m *Mutator) entry(course models.Course, term models.Term, status models.PlanStatus) models.PlannedCourse {
	return models.PlannedCourse{
		ID:               m.newID(),
		Code:             course.Code,
		Title:            course.Title,
		Credits:          NormalizeCredits(course.Credits),
		Semester:         term,
		Status:           status,
		ValidationStatus: models.ValidationValid,
		Prerequisites:    append([]string(nil), course.Prerequisites...),
		Corequisites:     append([]string(nil), course.Corequisites...),
	}
}

// RemovalPreview names the entry to remove and the entries that would go with it.
type RemovalPreview struct {
	Target     models.PlannedCourse   `json:"target"`
	Dependents []models.PlannedCourse `json:"dependents"`
}

// NeedsConfirmation reports whether removing the target cascades.
func (p RemovalPreview) NeedsConfirmation() bool {
	return len(p.Dependents) > 0
}

// DependentsOf lists plan entries that name target as a prerequisite. When
// the target's code is already completed, those prerequisites stay satisfied
// and nothing depends on the plan entry. Only direct dependents are returned.
func DependentsOf(plan models.Plan, target models.PlannedCourse, completed models.CompletedRecord) []models.PlannedCourse {
	deps := []models.PlannedCourse{}
	if completed.IsCompleted(target.Code) {
		return deps
	}
	for _, pc := range plan.Courses {
		if pc.ID == target.ID {
			continue
		}
		for _, prereq := range pc.Prerequisites {
			if prereq == target.Code {
				deps = append(deps, pc)
				break
			}
		}
	}
	return deps
}

// PreviewRemoval computes what removing the entry would take with it.
func (m *Mutator) PreviewRemoval(plan models.Plan, entryID string, completed models.CompletedRecord) (RemovalPreview, error) {
	target, ok := plan.Find(entryID)
	if !ok {
		return RemovalPreview{}, fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
	}
	return RemovalPreview{
		Target:     target,
		Dependents: DependentsOf(plan, target, completed),
	}, nil
}

// ConfirmRemoval removes the entry together with its direct dependents.
func (m *Mutator) ConfirmRemoval(plan models.Plan, entryID string, completed models.CompletedRecord) (models.Plan, RemovalPreview, error) {
	preview, err := m.PreviewRemoval(plan, entryID, completed)
	if err != nil {
		return plan, RemovalPreview{}, err
	}

	drop := map[string]struct{}{preview.Target.ID: {}}
	for _, dep := range preview.Dependents {
		drop[dep.ID] = struct{}{}
	}

	out := plan.Clone()
	kept := out.Courses[:0]
	for _, pc := range out.Courses {
		if _, gone := drop[pc.ID]; gone {
			continue
		}
		kept = append(kept, pc)
	}
	out.Courses = kept
	return out, preview, nil
}

// UpdateStatus changes one entry's status and nothing else.
func (m *Mutator) UpdateStatus(plan models.Plan, entryID string, status models.PlanStatus) (models.Plan, error) {
	if !status.Valid() {
		return plan, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	out := plan.Clone()
	for i := range out.Courses {
		if out.Courses[i].ID == entryID {
			out.Courses[i].Status = status
			return out, nil
		}
	}
	return plan, fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
}
