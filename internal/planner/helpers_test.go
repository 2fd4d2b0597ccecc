package planner_test

import (
	"fmt"

	"github.com/yigit/courseplanner/internal/app/models"
	"github.com/yigit/courseplanner/internal/planner"
)

func course(code string, credits float64) models.Course {
	return models.Course{Code: code, Title: code + " title", Credits: models.NumericCredits(credits)}
}

func planned(id, code string, credits int, prereqs ...string) models.PlannedCourse {
	return models.PlannedCourse{
		ID:               id,
		Code:             code,
		Credits:          credits,
		Semester:         "1",
		Status:           models.PlanStatusPlanning,
		ValidationStatus: models.ValidationValid,
		Prerequisites:    prereqs,
	}
}

func planOf(courses ...models.PlannedCourse) models.Plan {
	p := models.NewPlan(1, 1)
	p.Courses = append(p.Courses, courses...)
	return p
}

func completedOf(codes ...string) models.CompletedRecord {
	r := models.CompletedRecord{}
	for _, c := range codes {
		r[c] = models.CompletionEntry{Status: models.CompletionCompleted, Grade: "A"}
	}
	return r
}

func sequentialIDs() planner.MutatorOption {
	n := 0
	return planner.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("entry-%d", n)
	})
}
