package planner

import (
	"fmt"
	"strings"

	"github.com/yigit/courseplanner/internal/app/models"
)

// AddDecision is the outcome of checking a course against a plan. Hard
// errors block the addition; warnings are carried onto the planned course.
type AddDecision struct {
	Addable    bool     `json:"addable"`
	HardErrors []string `json:"hardErrors"`
	Warnings   []string `json:"warnings"`
}

func reject(msgs ...string) AddDecision {
	return AddDecision{Addable: false, HardErrors: msgs, Warnings: []string{}}
}

// Validator decides whether a course can go onto a plan for one curriculum.
type Validator struct {
	blacklist     map[string]struct{}
	seniorCredits float64
}

// ValidatorOption customizes a Validator.
type ValidatorOption func(*Validator)

// WithSeniorStandingCredits sets the threshold used when a senior-standing
// course does not carry its own.
func WithSeniorStandingCredits(credits float64) ValidatorOption {
	return func(v *Validator) {
		if credits > 0 {
			v.seniorCredits = credits
		}
	}
}

// NewValidator creates a validator for a curriculum's blacklist.
func NewValidator(blacklist []string, opts ...ValidatorOption) *Validator {
	v := &Validator{
		blacklist:     make(map[string]struct{}, len(blacklist)),
		seniorCredits: models.DefaultSeniorStandingCredits,
	}
	for _, code := range blacklist {
		v.blacklist[strings.TrimSpace(code)] = struct{}{}
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// IsBlacklisted reports whether the curriculum bans code outright.
func (v *Validator) IsBlacklisted(code string) bool {
	_, ok := v.blacklist[code]
	return ok
}

// CanAdd runs the checks in order: blacklist, banned combinations and
// summer-only reject; permission, senior standing and prerequisites warn.
func (v *Validator) CanAdd(
	course models.Course,
	plan models.Plan,
	completed models.CompletedRecord,
	term models.Term,
	totalCredits TotalCreditsFunc,
) AddDecision {
	if v.IsBlacklisted(course.Code) {
		return reject(fmt.Sprintf("%s is blacklisted for this curriculum", course.Code))
	}

	if conflicts := v.BannedConflicts(course, plan, completed); len(conflicts) > 0 {
		msgs := make([]string, 0, len(conflicts))
		for _, code := range conflicts {
			msgs = append(msgs, fmt.Sprintf("%s cannot be taken together with %s", course.Code, code))
		}
		return reject(msgs...)
	}

	if course.SummerOnly && !term.IsSummer() {
		return reject(fmt.Sprintf("%s is offered in summer only", course.Code))
	}

	decision := AddDecision{Addable: true, HardErrors: []string{}, Warnings: []string{}}

	if course.RequiresPermission {
		decision.Warnings = append(decision.Warnings, "Chairperson approval is required")
	}

	if course.RequiresSeniorStanding {
		var total float64
		if totalCredits != nil {
			total = totalCredits(plan, completed)
		} else {
			total = PlannedCredits(plan)
		}
		need := course.SeniorStandingThreshold(v.seniorCredits)
		if total < need {
			decision.Warnings = append(decision.Warnings, fmt.Sprintf(
				"Senior standing required: %s credits, need %s",
				formatCredits(total), formatCredits(need),
			))
		}
	}

	for _, code := range MissingPrerequisites(course, plan, completed) {
		decision.Warnings = append(decision.Warnings, fmt.Sprintf("Missing prerequisite: %s", code))
	}

	return decision
}

// BannedConflicts lists codes from the course's own bannedWith list that are
// completed or on the plan. Bans listed only on the other course are not seen.
func (v *Validator) BannedConflicts(course models.Course, plan models.Plan, completed models.CompletedRecord) []string {
	var out []string
	for _, code := range course.BannedWith {
		if completed.IsCompleted(code) || plan.Contains(code) {
			out = append(out, code)
		}
	}
	return out
}

// MissingPrerequisites lists prerequisites that are neither completed nor
// anywhere on the plan. A planned prerequisite counts as satisfied.
func MissingPrerequisites(course models.Course, plan models.Plan, completed models.CompletedRecord) []string {
	var out []string
	for _, code := range course.Prerequisites {
		if completed.IsCompleted(code) || plan.Contains(code) {
			continue
		}
		out = append(out, code)
	}
	return out
}
