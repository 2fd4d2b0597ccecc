package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/yigit/courseplanner/internal/app/models"
	"github.com/yigit/courseplanner/internal/app/models/dto"
	"github.com/yigit/courseplanner/internal/app/repositories"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// Data is the content of a seed file
type Data struct {
	Catalogs []dto.CatalogInput                `yaml:"catalogs"`
	Students map[string]models.CompletedRecord `yaml:"students"`
}

// Parse decodes and validates seed YAML
func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	for i, c := range data.Catalogs {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("seed catalog %d: %w", i, err)
		}
	}
	return &data, nil
}

// Default returns the bundled demo catalog
func Default() (*Data, error) {
	return Parse(defaultCatalog)
}

// CreateDefaultData loads the bundled catalog into the repositories.
// Writes are upserts, so running it on every start is safe.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	data, err := Default()
	if err != nil {
		return err
	}
	return Apply(ctx, repos, data, lgr)
}

// Apply writes seed data. It keeps going after a failed write and returns
// every error joined.
func Apply(ctx context.Context, repos *repositories.Repositories, data *Data, lgr zerolog.Logger) error {
	var finalErr error

	for _, catalog := range data.Catalogs {
		lgr.Info().
			Int64("curriculum_id", catalog.CurriculumID).
			Int64("department_id", catalog.DepartmentID).
			Int("courses", len(catalog.Courses)).
			Msg("Seeding catalog")

		for i, course := range catalog.CourseModels() {
			if err := repos.Courses.UpsertCourse(ctx, catalog.CurriculumID, catalog.DepartmentID, i, course); err != nil {
				lgr.Error().Err(err).Str("code", course.Code).Msg("Error seeding course")
				finalErr = errors.Join(finalErr, err)
			}
		}
		for _, code := range catalog.Blacklist {
			if err := repos.Blacklists.AddToBlacklist(ctx, catalog.CurriculumID, catalog.DepartmentID, code); err != nil {
				lgr.Error().Err(err).Str("code", code).Msg("Error seeding blacklist")
				finalErr = errors.Join(finalErr, err)
			}
		}
		for _, c := range catalog.ConcentrationModels() {
			if err := repos.Concentrations.UpsertConcentration(ctx, catalog.CurriculumID, catalog.DepartmentID, c); err != nil {
				lgr.Error().Err(err).Str("concentration", c.ID).Msg("Error seeding concentration")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	students := make([]string, 0, len(data.Students))
	for id := range data.Students {
		students = append(students, id)
	}
	sort.Strings(students)

	for _, studentID := range students {
		for code, entry := range data.Students[studentID] {
			if err := repos.Completed.RecordCompletion(ctx, studentID, code, entry); err != nil {
				lgr.Error().Err(err).Str("student", studentID).Str("code", code).Msg("Error seeding history")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	return finalErr
}
