package models

import "sort"

// CompletionStatus is the state of a course in a student's history
type CompletionStatus string

const (
	CompletionCompleted  CompletionStatus = "completed"
	CompletionInProgress CompletionStatus = "in_progress"
	CompletionPlanning   CompletionStatus = "planning"
)

// CompletionEntry is one course in a student's history.
type CompletionEntry struct {
	Status CompletionStatus `json:"status" yaml:"status"`
	Grade  string           `json:"grade,omitempty" yaml:"grade,omitempty"`
}

// CompletedRecord maps course codes to their history entry.
type CompletedRecord map[string]CompletionEntry

// IsCompleted reports whether code is in the record with status completed.
func (r CompletedRecord) IsCompleted(code string) bool {
	entry, ok := r[code]
	return ok && entry.Status == CompletionCompleted
}

// IsTaken reports whether code is completed or currently in progress.
func (r CompletedRecord) IsTaken(code string) bool {
	entry, ok := r[code]
	return ok && (entry.Status == CompletionCompleted || entry.Status == CompletionInProgress)
}

// CompletedCodes returns the codes with status completed, sorted.
func (r CompletedRecord) CompletedCodes() []string {
	codes := make([]string, 0, len(r))
	for code, entry := range r {
		if entry.Status == CompletionCompleted {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}
