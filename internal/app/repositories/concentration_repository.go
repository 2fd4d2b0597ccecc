package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/courseplanner/internal/app/models"
)

// ConcentrationRepository handles database operations for concentrations
type ConcentrationRepository struct {
	db *pgxpool.Pool
}

// NewConcentrationRepository creates a new concentration repository
func NewConcentrationRepository(db *pgxpool.Pool) *ConcentrationRepository {
	return &ConcentrationRepository{
		db: db,
	}
}

// ListConcentrations returns the concentrations defined for a curriculum/department pair
func (r *ConcentrationRepository) ListConcentrations(ctx context.Context, curriculumID, departmentID int64) ([]models.Concentration, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, required_courses, courses
		FROM concentrations
		WHERE curriculum_id = $1 AND department_id = $2
		ORDER BY id`,
		curriculumID, departmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing concentrations: %w", err)
	}
	defer rows.Close()

	concentrations := []models.Concentration{}
	for rows.Next() {
		var (
			c       models.Concentration
			courses []byte
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.RequiredCourses, &courses); err != nil {
			return nil, fmt.Errorf("error scanning concentration: %w", err)
		}
		if err := json.Unmarshal(courses, &c.Courses); err != nil {
			return nil, fmt.Errorf("error decoding courses of concentration %s: %w", c.ID, err)
		}
		concentrations = append(concentrations, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return concentrations, nil
}

// UpsertConcentration inserts or replaces a concentration definition
func (r *ConcentrationRepository) UpsertConcentration(ctx context.Context, curriculumID, departmentID int64, c models.Concentration) error {
	courses, err := json.Marshal(c.Courses)
	if err != nil {
		return fmt.Errorf("error encoding concentration courses: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO concentrations (curriculum_id, department_id, id, name, required_courses, courses)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (curriculum_id, department_id, id) DO UPDATE SET
			name = EXCLUDED.name,
			required_courses = EXCLUDED.required_courses,
			courses = EXCLUDED.courses`,
		curriculumID, departmentID, c.ID, c.Name, c.RequiredCourses, courses)
	if err != nil {
		return fmt.Errorf("error upserting concentration %s: %w", c.ID, err)
	}
	return nil
}
