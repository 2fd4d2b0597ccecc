package planner

import (
	"fmt"
	"strings"

	"github.com/yigit/courseplanner/internal/app/models"
)

// Reasons a corequisite is left out of a resolution.
const (
	SkipSatisfied    = "already completed or planned"
	SkipNotInCatalog = "not found in catalog"
	SkipDuplicate    = "listed more than once"
)

// SkippedCorequisite is a corequisite code that will not be auto-added.
type SkippedCorequisite struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// CorequisiteResolution is the set of courses to add alongside a primary course.
type CorequisiteResolution struct {
	Courses []models.Course      `json:"courses"`
	Skipped []SkippedCorequisite `json:"skipped,omitempty"`
}

// Codes returns the codes of the resolved courses.
func (r CorequisiteResolution) Codes() []string {
	out := make([]string, 0, len(r.Courses))
	for _, c := range r.Courses {
		out = append(out, c.Code)
	}
	return out
}

// Resolver finds the corequisites that must accompany a course.
type Resolver struct {
	catalog   *Catalog
	validator *Validator
}

// NewResolver creates a resolver over a catalog. The validator's banned
// combination check gates every corequisite.
func NewResolver(catalog *Catalog, validator *Validator) *Resolver {
	return &Resolver{catalog: catalog, validator: validator}
}

// Resolve looks only at the course's direct corequisites; corequisites of
// corequisites are not followed.
func (r *Resolver) Resolve(course models.Course, plan models.Plan, completed models.CompletedRecord) CorequisiteResolution {
	res := CorequisiteResolution{Courses: []models.Course{}}
	seen := map[string]struct{}{course.Code: {}}

	for _, code := range course.Corequisites {
		if _, dup := seen[code]; dup {
			res.Skipped = append(res.Skipped, SkippedCorequisite{Code: code, Reason: SkipDuplicate})
			continue
		}
		seen[code] = struct{}{}

		if completed.IsCompleted(code) || plan.Contains(code) {
			res.Skipped = append(res.Skipped, SkippedCorequisite{Code: code, Reason: SkipSatisfied})
			continue
		}

		coreq, ok := r.catalog.Lookup(code)
		if !ok {
			res.Skipped = append(res.Skipped, SkippedCorequisite{Code: code, Reason: SkipNotInCatalog})
			continue
		}

		if conflicts := r.validator.BannedConflicts(coreq, plan, completed); len(conflicts) > 0 {
			res.Skipped = append(res.Skipped, SkippedCorequisite{
				Code:   code,
				Reason: fmt.Sprintf("banned with %s", strings.Join(conflicts, ", ")),
			})
			continue
		}

		res.Courses = append(res.Courses, coreq)
	}

	return res
}
