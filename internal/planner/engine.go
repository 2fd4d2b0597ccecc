package planner

import (
	"errors"
	"fmt"

	"github.com/yigit/courseplanner/internal/app/models"
)

// ErrCourseNotInCatalog is returned when a code does not resolve to a catalog course.
var ErrCourseNotInCatalog = errors.New("course not in catalog")

// Engine wires the components for one curriculum snapshot.
type Engine struct {
	Catalog    *Catalog
	Validator  *Validator
	Resolver   *Resolver
	Mutator    *Mutator
	Aggregator *CreditAggregator
}

// EngineOptions configures NewEngine.
type EngineOptions struct {
	SeniorStandingCredits float64
	Mutator               []MutatorOption
}

// NewEngine builds an engine over a catalog and blacklist.
func NewEngine(courses []models.Course, blacklist []string, opts EngineOptions) *Engine {
	catalog := NewCatalog(courses)
	validator := NewValidator(blacklist, WithSeniorStandingCredits(opts.SeniorStandingCredits))
	return &Engine{
		Catalog:    catalog,
		Validator:  validator,
		Resolver:   NewResolver(catalog, validator),
		Mutator:    NewMutator(opts.Mutator...),
		Aggregator: NewCreditAggregator(catalog),
	}
}

// CheckResult is the validator decision plus the corequisites that would follow.
type CheckResult struct {
	Course       models.Course         `json:"course"`
	Decision     AddDecision           `json:"decision"`
	Corequisites CorequisiteResolution `json:"corequisites"`
}

// Check validates a catalog course for the plan. Corequisites are resolved
// only when the course is addable.
func (e *Engine) Check(code string, plan models.Plan, completed models.CompletedRecord, term models.Term) (CheckResult, error) {
	course, ok := e.Catalog.Lookup(code)
	if !ok {
		return CheckResult{}, fmt.Errorf("%w: %s", ErrCourseNotInCatalog, code)
	}
	res := CheckResult{
		Course:   course,
		Decision: e.Validator.CanAdd(course, plan, completed, term, e.Aggregator.Total),
	}
	if res.Decision.Addable {
		res.Corequisites = e.Resolver.Resolve(course, plan, completed)
	} else {
		res.Corequisites = CorequisiteResolution{Courses: []models.Course{}}
	}
	return res, nil
}

// Add checks the course and, when addable, applies it with its corequisites.
// A non-addable course returns ErrNotAddable together with the check result.
func (e *Engine) Add(
	code string,
	plan models.Plan,
	completed models.CompletedRecord,
	term models.Term,
	status models.PlanStatus,
) (models.Plan, []models.PlannedCourse, CheckResult, error) {
	res, err := e.Check(code, plan, completed, term)
	if err != nil {
		return plan, nil, res, err
	}
	if plan.Contains(code) {
		return plan, nil, res, fmt.Errorf("%w: %s", ErrAlreadyPlanned, code)
	}
	next, added, err := e.Mutator.Add(plan, AddRequest{
		Course:       res.Course,
		Decision:     res.Decision,
		Corequisites: res.Corequisites.Courses,
		Term:         term,
		Status:       status,
	})
	return next, added, res, err
}

// AddableCourse pairs a course with the decision for adding it now.
type AddableCourse struct {
	Course   models.Course `json:"course"`
	Decision AddDecision   `json:"decision"`
}

// Addable lists the courses not yet planned or taken, each with its decision.
func (e *Engine) Addable(plan models.Plan, completed models.CompletedRecord, term models.Term) []AddableCourse {
	courses := AddableCourses(e.Catalog, plan, completed)
	out := make([]AddableCourse, 0, len(courses))
	for _, c := range courses {
		out = append(out, AddableCourse{
			Course:   c,
			Decision: e.Validator.CanAdd(c, plan, completed, term, e.Aggregator.Total),
		})
	}
	return out
}

// PlanSummary totals the credits on a plan.
type PlanSummary struct {
	PlannedCredits   float64                 `json:"plannedCredits"`
	CompletedCredits float64                 `json:"completedCredits"`
	BySemester       map[models.Term]float64 `json:"bySemester"`
}

// Summarize computes credit totals for the plan and history.
func (e *Engine) Summarize(plan models.Plan, completed models.CompletedRecord) PlanSummary {
	return PlanSummary{
		PlannedCredits:   PlannedCredits(plan),
		CompletedCredits: e.Aggregator.CompletedCredits(completed),
		BySemester:       CreditsBySemester(plan),
	}
}
