package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/courseplanner/internal/app/models"
)

// ErrCatalogNotFound is returned when no courses exist for a curriculum/department pair.
var ErrCatalogNotFound = errors.New("catalog not found")

// CourseStore reads and writes curriculum catalogs
type CourseStore interface {
	ListCourses(ctx context.Context, curriculumID, departmentID int64) ([]models.Course, error)
	UpsertCourse(ctx context.Context, curriculumID, departmentID int64, position int, course models.Course) error
}

// BlacklistStore reads and writes per-curriculum blacklists
type BlacklistStore interface {
	ListBlacklist(ctx context.Context, curriculumID, departmentID int64) ([]string, error)
	AddToBlacklist(ctx context.Context, curriculumID, departmentID int64, code string) error
}

// ConcentrationStore reads and writes concentration definitions
type ConcentrationStore interface {
	ListConcentrations(ctx context.Context, curriculumID, departmentID int64) ([]models.Concentration, error)
	UpsertConcentration(ctx context.Context, curriculumID, departmentID int64, concentration models.Concentration) error
}

// CompletedStore reads and writes a student's course history
type CompletedStore interface {
	GetCompleted(ctx context.Context, studentID string) (models.CompletedRecord, error)
	RecordCompletion(ctx context.Context, studentID, code string, entry models.CompletionEntry) error
}

// PlanStore persists plans. Load returns nil without error when no plan exists.
type PlanStore interface {
	Load(ctx context.Context, key models.PlanKey) (*models.Plan, error)
	Save(ctx context.Context, key models.PlanKey, plan models.Plan) error
}

// Repositories holds all the repository instances
type Repositories struct {
	Courses        CourseStore
	Blacklists     BlacklistStore
	Concentrations ConcentrationStore
	Completed      CompletedStore
	Plans          PlanStore
}

// NewRepositories initializes the Postgres-backed repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Courses:        NewCourseRepository(db),
		Blacklists:     NewBlacklistRepository(db),
		Concentrations: NewConcentrationRepository(db),
		Completed:      NewCompletedRepository(db),
		Plans:          NewPlanRepository(db),
	}
}

// NewMemoryRepositories backs every repository with one in-process store
func NewMemoryRepositories(store *MemoryStore) *Repositories {
	return &Repositories{
		Courses:        store,
		Blacklists:     store,
		Concentrations: store,
		Completed:      store,
		Plans:          store,
	}
}
