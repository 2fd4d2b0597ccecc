package models

import "fmt"

// PlanKey identifies one student's plan for a curriculum/department pair.
type PlanKey struct {
	StudentID    string `json:"studentId"`
	CurriculumID int64  `json:"curriculumId"`
	DepartmentID int64  `json:"departmentId"`
}

// String renders the key as used by plan stores.
func (k PlanKey) String() string {
	return fmt.Sprintf("%s:%d:%d", k.StudentID, k.CurriculumID, k.DepartmentID)
}

// PlannedCourse is a course placed on a student's plan. Prerequisites and
// corequisites are copied from the catalog at add time.
type PlannedCourse struct {
	ID               string           `json:"id" yaml:"id"`
	Code             string           `json:"code" yaml:"code"`
	Title            string           `json:"title" yaml:"title"`
	Credits          int              `json:"credits" yaml:"credits"`
	Semester         Term             `json:"semester" yaml:"semester"`
	Status           PlanStatus       `json:"status" yaml:"status"`
	ValidationStatus ValidationStatus `json:"validationStatus" yaml:"validationStatus"`
	ValidationNotes  []string         `json:"validationNotes,omitempty" yaml:"validationNotes,omitempty"`
	Prerequisites    []string         `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
	Corequisites     []string         `json:"corequisites,omitempty" yaml:"corequisites,omitempty"`
}

// Plan is the ordered list of planned courses for one curriculum context.
type Plan struct {
	CurriculumID int64           `json:"curriculumId" yaml:"curriculumId"`
	DepartmentID int64           `json:"departmentId" yaml:"departmentId"`
	Courses      []PlannedCourse `json:"courses" yaml:"courses"`
}

// NewPlan creates an empty plan for the given curriculum context.
func NewPlan(curriculumID, departmentID int64) Plan {
	return Plan{
		CurriculumID: curriculumID,
		DepartmentID: departmentID,
		Courses:      []PlannedCourse{},
	}
}

// Contains reports whether any entry carries the given course code.
func (p Plan) Contains(code string) bool {
	for _, pc := range p.Courses {
		if pc.Code == code {
			return true
		}
	}
	return false
}

// Find returns the entry with the given id.
func (p Plan) Find(id string) (PlannedCourse, bool) {
	for _, pc := range p.Courses {
		if pc.ID == id {
			return pc, true
		}
	}
	return PlannedCourse{}, false
}

// Clone returns a plan whose course slice can be modified independently.
func (p Plan) Clone() Plan {
	out := p
	out.Courses = make([]PlannedCourse, len(p.Courses))
	for i, pc := range p.Courses {
		pc.ValidationNotes = append([]string(nil), pc.ValidationNotes...)
		pc.Prerequisites = append([]string(nil), pc.Prerequisites...)
		pc.Corequisites = append([]string(nil), pc.Corequisites...)
		out.Courses[i] = pc
	}
	return out
}
