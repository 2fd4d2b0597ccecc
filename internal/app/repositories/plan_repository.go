package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/courseplanner/internal/app/models"
	"github.com/yigit/courseplanner/internal/pkg/dberrors"
)

// PlanRepository stores plans as jsonb documents keyed by student and curriculum
type PlanRepository struct {
	db *pgxpool.Pool
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{
		db: db,
	}
}

// Load returns the stored plan, or nil when the student has none yet
func (r *PlanRepository) Load(ctx context.Context, key models.PlanKey) (*models.Plan, error) {
	var doc []byte
	err := r.db.QueryRow(ctx, `
		SELECT plan FROM student_plans
		WHERE student_id = $1 AND curriculum_id = $2 AND department_id = $3`,
		key.StudentID, key.CurriculumID, key.DepartmentID).Scan(&doc)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading plan %s: %w", key, err)
	}

	var plan models.Plan
	if err := json.Unmarshal(doc, &plan); err != nil {
		return nil, fmt.Errorf("error decoding plan %s: %w", key, err)
	}
	if plan.Courses == nil {
		plan.Courses = []models.PlannedCourse{}
	}
	return &plan, nil
}

// Save replaces the stored plan with the given one
func (r *PlanRepository) Save(ctx context.Context, key models.PlanKey, plan models.Plan) error {
	doc, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("error encoding plan %s: %w", key, err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO student_plans (student_id, curriculum_id, department_id, plan, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (student_id, curriculum_id, department_id) DO UPDATE SET
			plan = EXCLUDED.plan,
			updated_at = NOW()`,
		key.StudentID, key.CurriculumID, key.DepartmentID, doc)
	if err != nil {
		return fmt.Errorf("error saving plan %s: %w", key, err)
	}
	return nil
}
