package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/courseplanner/internal/app/models"
)

// CourseRepository handles database operations for curriculum courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// ListCourses returns the catalog in its stored order
func (r *CourseRepository) ListCourses(ctx context.Context, curriculumID, departmentID int64) ([]models.Course, error) {
	query := `
		SELECT code, title, credits, category, prerequisites, corequisites, banned_with,
		       requires_permission, summer_only, requires_senior_standing, min_credit_threshold
		FROM curriculum_courses
		WHERE curriculum_id = $1 AND department_id = $2
		ORDER BY position, code
	`

	rows, err := r.db.Query(ctx, query, curriculumID, departmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var (
			course  models.Course
			credits []byte
		)
		if err := rows.Scan(
			&course.Code,
			&course.Title,
			&credits,
			&course.Category,
			&course.Prerequisites,
			&course.Corequisites,
			&course.BannedWith,
			&course.RequiresPermission,
			&course.SummerOnly,
			&course.RequiresSeniorStanding,
			&course.MinCreditThreshold,
		); err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		if len(credits) > 0 {
			if err := json.Unmarshal(credits, &course.Credits); err != nil {
				return nil, fmt.Errorf("error decoding credits for %s: %w", course.Code, err)
			}
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(courses) == 0 {
		return nil, ErrCatalogNotFound
	}

	return courses, nil
}

// UpsertCourse inserts or replaces one catalog course
func (r *CourseRepository) UpsertCourse(ctx context.Context, curriculumID, departmentID int64, position int, course models.Course) error {
	credits, err := json.Marshal(course.Credits)
	if err != nil {
		return fmt.Errorf("error encoding credits: %w", err)
	}

	query := `
		INSERT INTO curriculum_courses (
			curriculum_id, department_id, code, position, title, credits, category,
			prerequisites, corequisites, banned_with,
			requires_permission, summer_only, requires_senior_standing, min_credit_threshold
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (curriculum_id, department_id, code) DO UPDATE SET
			position = EXCLUDED.position,
			title = EXCLUDED.title,
			credits = EXCLUDED.credits,
			category = EXCLUDED.category,
			prerequisites = EXCLUDED.prerequisites,
			corequisites = EXCLUDED.corequisites,
			banned_with = EXCLUDED.banned_with,
			requires_permission = EXCLUDED.requires_permission,
			summer_only = EXCLUDED.summer_only,
			requires_senior_standing = EXCLUDED.requires_senior_standing,
			min_credit_threshold = EXCLUDED.min_credit_threshold
	`

	_, err = r.db.Exec(ctx, query,
		curriculumID, departmentID, course.Code, position, course.Title, credits, course.Category,
		nonNil(course.Prerequisites), nonNil(course.Corequisites), nonNil(course.BannedWith),
		course.RequiresPermission, course.SummerOnly, course.RequiresSeniorStanding, course.MinCreditThreshold,
	)
	if err != nil {
		return fmt.Errorf("error upserting course %s: %w", course.Code, err)
	}
	return nil
}

// nonNil keeps NOT NULL text[] columns from receiving NULL
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
