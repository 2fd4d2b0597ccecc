package main

import (
	"fmt"
	"os"

	"github.com/yigit/courseplanner/internal/app/models"
	"github.com/yigit/courseplanner/internal/app/models/dto"
	"github.com/yigit/courseplanner/internal/planner"
	"gopkg.in/yaml.v3"
)

// Workspace is the on-disk planning state planctl works on
type Workspace struct {
	Catalog   dto.CatalogInput       `yaml:"catalog"`
	Completed models.CompletedRecord `yaml:"completed,omitempty"`
	Plan      models.Plan            `yaml:"plan"`
}

func loadWorkspace(path string) (*Workspace, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace: %w", err)
	}

	var ws Workspace
	if err := yaml.Unmarshal(raw, &ws); err != nil {
		return nil, fmt.Errorf("failed to parse workspace: %w", err)
	}
	if err := ws.Catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	if ws.Completed == nil {
		ws.Completed = models.CompletedRecord{}
	}
	if ws.Plan.CurriculumID == 0 && ws.Plan.DepartmentID == 0 {
		ws.Plan.CurriculumID = ws.Catalog.CurriculumID
		ws.Plan.DepartmentID = ws.Catalog.DepartmentID
	}
	if ws.Plan.Courses == nil {
		ws.Plan.Courses = []models.PlannedCourse{}
	}
	return &ws, nil
}

func (ws *Workspace) save(path string) error {
	raw, err := yaml.Marshal(ws)
	if err != nil {
		return fmt.Errorf("failed to encode workspace: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write workspace: %w", err)
	}
	return nil
}

func (ws *Workspace) engine(seniorCredits float64) *planner.Engine {
	return planner.NewEngine(ws.Catalog.CourseModels(), ws.Catalog.Blacklist, planner.EngineOptions{
		SeniorStandingCredits: seniorCredits,
	})
}
