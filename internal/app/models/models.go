package models

import "strings"

// Term is the semester tag a course is planned into, e.g. "1", "2" or "summer".
type Term string

// TermSummer is the tag for the summer session
const TermSummer Term = "summer"

// IsSummer reports whether the term is the summer session.
func (t Term) IsSummer() bool {
	return strings.EqualFold(strings.TrimSpace(string(t)), string(TermSummer))
}

// PlanStatus captures how committed a student is to a planned course
type PlanStatus string

const (
	PlanStatusPlanning    PlanStatus = "planning"
	PlanStatusWillTake    PlanStatus = "will-take"
	PlanStatusConsidering PlanStatus = "considering"
)

// Valid reports whether the status is one of the known plan statuses.
func (s PlanStatus) Valid() bool {
	switch s {
	case PlanStatusPlanning, PlanStatusWillTake, PlanStatusConsidering:
		return true
	}
	return false
}

// ValidationStatus is the outcome attached to a planned course when it was added
type ValidationStatus string

const (
	ValidationValid   ValidationStatus = "valid"
	ValidationWarning ValidationStatus = "warning"
	ValidationError   ValidationStatus = "error"
)
