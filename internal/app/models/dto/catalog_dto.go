package dto

import (
	"github.com/yigit/courseplanner/internal/app/models"
	"github.com/yigit/courseplanner/internal/pkg/validation"
)

// CourseInput is a catalog course as supplied by seed files and workspaces
type CourseInput struct {
	Code                   string             `json:"code" yaml:"code" validate:"required,coursecode"`
	Title                  string             `json:"title" yaml:"title" validate:"required,max=200"`
	Credits                models.CreditValue `json:"credits" yaml:"credits"`
	Category               string             `json:"category,omitempty" yaml:"category,omitempty" validate:"max=64"`
	Prerequisites          []string           `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty" validate:"dive,required"`
	Corequisites           []string           `json:"corequisites,omitempty" yaml:"corequisites,omitempty" validate:"dive,required"`
	BannedWith             []string           `json:"bannedWith,omitempty" yaml:"bannedWith,omitempty" validate:"dive,required"`
	RequiresPermission     bool               `json:"requiresPermission,omitempty" yaml:"requiresPermission,omitempty"`
	SummerOnly             bool               `json:"summerOnly,omitempty" yaml:"summerOnly,omitempty"`
	RequiresSeniorStanding bool               `json:"requiresSeniorStanding,omitempty" yaml:"requiresSeniorStanding,omitempty"`
	MinCreditThreshold     *float64           `json:"minCreditThreshold,omitempty" yaml:"minCreditThreshold,omitempty" validate:"omitempty,gt=0"`
}

// ToModel converts the input into a catalog course
func (in CourseInput) ToModel() models.Course {
	return models.Course{
		Code:                   in.Code,
		Title:                  in.Title,
		Credits:                in.Credits,
		Category:               in.Category,
		Prerequisites:          append([]string(nil), in.Prerequisites...),
		Corequisites:           append([]string(nil), in.Corequisites...),
		BannedWith:             append([]string(nil), in.BannedWith...),
		RequiresPermission:     in.RequiresPermission,
		SummerOnly:             in.SummerOnly,
		RequiresSeniorStanding: in.RequiresSeniorStanding,
		MinCreditThreshold:     in.MinCreditThreshold,
	}
}

// ConcentrationInput is a concentration definition
type ConcentrationInput struct {
	ID              string                       `json:"id" yaml:"id" validate:"required,max=64"`
	Name            string                       `json:"name" yaml:"name" validate:"required,max=200"`
	RequiredCourses int                          `json:"requiredCourses" yaml:"requiredCourses" validate:"min=0"`
	Courses         []models.ConcentrationCourse `json:"courses" yaml:"courses"`
}

// ToModel converts the input into a concentration
func (in ConcentrationInput) ToModel() models.Concentration {
	return models.Concentration{
		ID:              in.ID,
		Name:            in.Name,
		RequiredCourses: in.RequiredCourses,
		Courses:         append([]models.ConcentrationCourse(nil), in.Courses...),
	}
}

// CatalogInput bundles everything known about one curriculum/department pair
type CatalogInput struct {
	CurriculumID   int64                `json:"curriculumId" yaml:"curriculumId" validate:"gt=0"`
	DepartmentID   int64                `json:"departmentId" yaml:"departmentId" validate:"gt=0"`
	Courses        []CourseInput        `json:"courses" yaml:"courses" validate:"dive"`
	Blacklist      []string             `json:"blacklist,omitempty" yaml:"blacklist,omitempty" validate:"dive,required"`
	Concentrations []ConcentrationInput `json:"concentrations,omitempty" yaml:"concentrations,omitempty" validate:"dive"`
}

// Validate checks the catalog against its validate tags
func (in CatalogInput) Validate() error {
	return validation.Struct(in)
}

// CourseModels converts every course input
func (in CatalogInput) CourseModels() []models.Course {
	out := make([]models.Course, 0, len(in.Courses))
	for _, c := range in.Courses {
		out = append(out, c.ToModel())
	}
	return out
}

// ConcentrationModels converts every concentration input
func (in CatalogInput) ConcentrationModels() []models.Concentration {
	out := make([]models.Concentration, 0, len(in.Concentrations))
	for _, c := range in.Concentrations {
		out = append(out, c.ToModel())
	}
	return out
}
