package planner

import "errors"

var (
	ErrNotAddable     = errors.New("course is not addable")
	ErrAlreadyPlanned = errors.New("course is already on the plan")
	ErrEntryNotFound  = errors.New("plan entry not found")
	ErrInvalidStatus  = errors.New("invalid plan status")
)
