package dto

import (
	"github.com/yigit/courseplanner/internal/app/models"
	"github.com/yigit/courseplanner/internal/planner"
)

// CheckCourseRequest asks whether a course could be added in a term
type CheckCourseRequest struct {
	Code string `json:"code" binding:"required,coursecode" example:"CS101"`
	Term string `json:"term" binding:"required,max=16" example:"1"`
}

// AddCourseRequest adds a catalog course to the plan
type AddCourseRequest struct {
	Code   string `json:"code" binding:"required,coursecode" example:"CS101"`
	Term   string `json:"term" binding:"required,max=16" example:"1"`
	Status string `json:"status" binding:"omitempty,oneof=planning will-take considering" example:"planning"`
}

// UpdateStatusRequest changes one plan entry's status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=planning will-take considering" example:"will-take"`
}

// PlanResponse is a plan with its credit summary
type PlanResponse struct {
	Plan    models.Plan         `json:"plan"`
	Summary planner.PlanSummary `json:"summary"`
}

// AddCourseResponse reports the entries an addition created
type AddCourseResponse struct {
	Plan         models.Plan                   `json:"plan"`
	Added        []models.PlannedCourse        `json:"added"`
	Decision     planner.AddDecision           `json:"decision"`
	Corequisites planner.CorequisiteResolution `json:"corequisites"`
}

// RemovalResponse reports what a confirmed removal took off the plan
type RemovalResponse struct {
	Plan       models.Plan            `json:"plan"`
	Removed    models.PlannedCourse   `json:"removed"`
	Dependents []models.PlannedCourse `json:"dependents"`
}

// ConcentrationReport is the progress view for a plan
type ConcentrationReport struct {
	Selected string                         `json:"selected,omitempty"`
	Progress []models.ConcentrationProgress `json:"progress"`
}
