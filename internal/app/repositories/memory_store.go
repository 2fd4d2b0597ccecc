package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/yigit/courseplanner/internal/app/models"
)

type catalogKey struct {
	curriculumID int64
	departmentID int64
}

type positionedCourse struct {
	position int
	course   models.Course
}

// MemoryStore implements every store in process. Values are copied on the
// way in and out so callers cannot alias stored state.
type MemoryStore struct {
	mu             sync.RWMutex
	courses        map[catalogKey]map[string]positionedCourse
	blacklists     map[catalogKey]map[string]struct{}
	concentrations map[catalogKey]map[string]models.Concentration
	completed      map[string]models.CompletedRecord
	plans          map[models.PlanKey]models.Plan
}

// NewMemoryStore creates an empty memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		courses:        make(map[catalogKey]map[string]positionedCourse),
		blacklists:     make(map[catalogKey]map[string]struct{}),
		concentrations: make(map[catalogKey]map[string]models.Concentration),
		completed:      make(map[string]models.CompletedRecord),
		plans:          make(map[models.PlanKey]models.Plan),
	}
}

// ListCourses returns the catalog ordered by position then code
func (s *MemoryStore) ListCourses(_ context.Context, curriculumID, departmentID int64) ([]models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.courses[catalogKey{curriculumID, departmentID}]
	if len(stored) == 0 {
		return nil, ErrCatalogNotFound
	}

	list := make([]positionedCourse, 0, len(stored))
	for _, pc := range stored {
		list = append(list, pc)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].position != list[j].position {
			return list[i].position < list[j].position
		}
		return list[i].course.Code < list[j].course.Code
	})

	out := make([]models.Course, 0, len(list))
	for _, pc := range list {
		out = append(out, copyCourse(pc.course))
	}
	return out, nil
}

// UpsertCourse inserts or replaces one catalog course
func (s *MemoryStore) UpsertCourse(_ context.Context, curriculumID, departmentID int64, position int, course models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := catalogKey{curriculumID, departmentID}
	if s.courses[key] == nil {
		s.courses[key] = make(map[string]positionedCourse)
	}
	s.courses[key][course.Code] = positionedCourse{position: position, course: copyCourse(course)}
	return nil
}

// ListBlacklist returns the blacklisted codes, sorted
func (s *MemoryStore) ListBlacklist(_ context.Context, curriculumID, departmentID int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	codes := []string{}
	for code := range s.blacklists[catalogKey{curriculumID, departmentID}] {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

// AddToBlacklist blacklists a code
func (s *MemoryStore) AddToBlacklist(_ context.Context, curriculumID, departmentID int64, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := catalogKey{curriculumID, departmentID}
	if s.blacklists[key] == nil {
		s.blacklists[key] = make(map[string]struct{})
	}
	s.blacklists[key][code] = struct{}{}
	return nil
}

// ListConcentrations returns the concentrations ordered by id
func (s *MemoryStore) ListConcentrations(_ context.Context, curriculumID, departmentID int64) ([]models.Concentration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.concentrations[catalogKey{curriculumID, departmentID}]
	out := make([]models.Concentration, 0, len(stored))
	for _, c := range stored {
		c.Courses = append([]models.ConcentrationCourse(nil), c.Courses...)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpsertConcentration inserts or replaces a concentration
func (s *MemoryStore) UpsertConcentration(_ context.Context, curriculumID, departmentID int64, c models.Concentration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := catalogKey{curriculumID, departmentID}
	if s.concentrations[key] == nil {
		s.concentrations[key] = make(map[string]models.Concentration)
	}
	c.Courses = append([]models.ConcentrationCourse(nil), c.Courses...)
	s.concentrations[key][c.ID] = c
	return nil
}

// GetCompleted returns a copy of the student's history
func (s *MemoryStore) GetCompleted(_ context.Context, studentID string) (models.CompletedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := models.CompletedRecord{}
	for code, entry := range s.completed[studentID] {
		out[code] = entry
	}
	return out, nil
}

// RecordCompletion stores one history entry
func (s *MemoryStore) RecordCompletion(_ context.Context, studentID, code string, entry models.CompletionEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed[studentID] == nil {
		s.completed[studentID] = models.CompletedRecord{}
	}
	s.completed[studentID][code] = entry
	return nil
}

// Load returns a copy of the stored plan, or nil when absent
func (s *MemoryStore) Load(_ context.Context, key models.PlanKey) (*models.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[key]
	if !ok {
		return nil, nil
	}
	out := plan.Clone()
	return &out, nil
}

// Save stores a copy of the plan
func (s *MemoryStore) Save(_ context.Context, key models.PlanKey, plan models.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.plans[key] = plan.Clone()
	return nil
}

func copyCourse(c models.Course) models.Course {
	c.Prerequisites = append([]string(nil), c.Prerequisites...)
	c.Corequisites = append([]string(nil), c.Corequisites...)
	c.BannedWith = append([]string(nil), c.BannedWith...)
	if c.MinCreditThreshold != nil {
		v := *c.MinCreditThreshold
		c.MinCreditThreshold = &v
	}
	return c
}
