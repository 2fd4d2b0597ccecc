package planner

import (
	"math"
	"strings"

	"github.com/yigit/courseplanner/internal/app/models"
)

// GeneralConcentration is the selection value meaning "no specific concentration".
const GeneralConcentration = "general"

// SelectConcentrations narrows the set to the selected concentration when the
// selection names one by id or case-insensitive name. An empty, "general" or
// unmatched selection keeps every concentration.
func SelectConcentrations(concentrations []models.Concentration, selected string) []models.Concentration {
	selected = strings.TrimSpace(selected)
	if selected == "" || strings.EqualFold(selected, GeneralConcentration) {
		return concentrations
	}
	for _, c := range concentrations {
		if c.ID == selected || strings.EqualFold(c.Name, selected) {
			return []models.Concentration{c}
		}
	}
	return concentrations
}

// Analyze reports progress toward each selected concentration. The result
// depends only on the arguments.
func Analyze(
	concentrations []models.Concentration,
	selected string,
	completed models.CompletedRecord,
	plan models.Plan,
) []models.ConcentrationProgress {
	chosen := SelectConcentrations(concentrations, selected)
	out := make([]models.ConcentrationProgress, 0, len(chosen))
	for _, c := range chosen {
		out = append(out, AnalyzeConcentration(c, completed, plan))
	}
	return out
}

// AnalyzeConcentration counts pool courses that are completed or planned.
// Progress is a course count, not credit weighted.
func AnalyzeConcentration(c models.Concentration, completed models.CompletedRecord, plan models.Plan) models.ConcentrationProgress {
	pool := make(map[string]models.ConcentrationCourse, len(c.Courses))
	for _, pc := range c.Courses {
		if _, ok := pool[pc.Code]; !ok {
			pool[pc.Code] = pc
		}
	}

	p := models.ConcentrationProgress{
		ConcentrationID:  c.ID,
		Name:             c.Name,
		RequiredCourses:  c.RequiredCourses,
		CompletedCourses: []string{},
		PlannedCourses:   []string{},
	}

	seen := make(map[string]struct{}, len(c.Courses))
	for _, pc := range c.Courses {
		if _, dup := seen[pc.Code]; dup {
			continue
		}
		seen[pc.Code] = struct{}{}
		if completed.IsCompleted(pc.Code) {
			p.CompletedCourses = append(p.CompletedCourses, pc.Code)
			p.Credits += ParseCredits(pc.Credits)
		}
	}

	for _, planned := range plan.Courses {
		if pc, ok := pool[planned.Code]; ok {
			p.PlannedCourses = append(p.PlannedCourses, planned.Code)
			p.Credits += ParseCredits(pc.Credits)
		}
	}

	p.TotalProgress = len(p.CompletedCourses) + len(p.PlannedCourses)

	if c.RequiredCourses <= 0 {
		p.Progress = 100
		p.IsEligible = true
		return p
	}

	p.Progress = math.Min(100, float64(p.TotalProgress)/float64(c.RequiredCourses)*100)
	p.IsEligible = p.TotalProgress >= c.RequiredCourses
	if remaining := c.RequiredCourses - p.TotalProgress; remaining > 0 {
		p.RemainingCourses = remaining
	}
	return p
}
