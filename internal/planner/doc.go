// Package planner holds the course-plan rules engine: the constraint
// validator, corequisite resolver, plan mutator, concentration analyzer and
// the credit aggregator they share.
//
// Everything here is synchronous and works on in-memory values handed in by
// the caller. Inputs are never modified; mutations return a new Plan. Callers
// that share a plan between goroutines must serialize access themselves.
package planner
