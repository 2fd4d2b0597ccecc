package models

// ConcentrationCourse is one course in a concentration's eligible pool
type ConcentrationCourse struct {
	Code    string      `json:"code" yaml:"code"`
	Name    string      `json:"name" yaml:"name"`
	Credits CreditValue `json:"credits" yaml:"credits"`
}

// Concentration is a specialization track: a pool of eligible courses and the
// number of them a student must complete or plan.
type Concentration struct {
	ID              string                `json:"id" yaml:"id"`
	Name            string                `json:"name" yaml:"name"`
	RequiredCourses int                   `json:"requiredCourses" yaml:"requiredCourses"`
	Courses         []ConcentrationCourse `json:"courses" yaml:"courses"`
}

// ConcentrationProgress reports how far a plan goes toward one concentration.
type ConcentrationProgress struct {
	ConcentrationID  string   `json:"concentrationId"`
	Name             string   `json:"name"`
	RequiredCourses  int      `json:"requiredCourses"`
	CompletedCourses []string `json:"completedCourses"`
	PlannedCourses   []string `json:"plannedCourses"`
	TotalProgress    int      `json:"totalProgress"`
	Progress         float64  `json:"progress"`
	IsEligible       bool     `json:"isEligible"`
	RemainingCourses int      `json:"remainingCourses"`
	Credits          float64  `json:"credits"`
}
