package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/courseplanner/internal/app/models"
	"github.com/yigit/courseplanner/internal/app/models/dto"
	"github.com/yigit/courseplanner/internal/app/repositories"
	"github.com/yigit/courseplanner/internal/pkg/apperrors"
	"github.com/yigit/courseplanner/internal/pkg/metrics"
	"github.com/yigit/courseplanner/internal/planner"
	"golang.org/x/sync/errgroup"
)

// PlanServiceConfig carries the planner policy knobs
type PlanServiceConfig struct {
	SeniorStandingCredits float64
	MutatorOptions        []planner.MutatorOption
}

// PlanService loads a student's planning context, runs the planner engine
// over it and persists the resulting plan.
type PlanService struct {
	courses        repositories.CourseStore
	blacklists     repositories.BlacklistStore
	concentrations repositories.ConcentrationStore
	completed      repositories.CompletedStore
	plans          repositories.PlanStore

	cfg     PlanServiceConfig
	metrics *metrics.Metrics
	logger  zerolog.Logger
	locks   *keyedLock
}

// NewPlanService creates a new plan service instance
func NewPlanService(repos *repositories.Repositories, cfg PlanServiceConfig, m *metrics.Metrics, lgr zerolog.Logger) *PlanService {
	return &PlanService{
		courses:        repos.Courses,
		blacklists:     repos.Blacklists,
		concentrations: repos.Concentrations,
		completed:      repos.Completed,
		plans:          repos.Plans,
		cfg:            cfg,
		metrics:        m,
		logger:         lgr.With().Str("component", "plan_service").Logger(),
		locks:          newKeyedLock(),
	}
}

// planContext is everything the engine needs for one request
type planContext struct {
	engine         *planner.Engine
	plan           models.Plan
	completed      models.CompletedRecord
	concentrations []models.Concentration
}

// load fetches catalog, blacklist, history and plan concurrently
func (s *PlanService) load(ctx context.Context, key models.PlanKey, withConcentrations bool) (*planContext, error) {
	if key.StudentID == "" || key.CurriculumID <= 0 || key.DepartmentID <= 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "student, curriculum and department are required")
	}

	var (
		courses        []models.Course
		blacklist      []string
		completed      models.CompletedRecord
		stored         *models.Plan
		concentrations []models.Concentration
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		courses, err = s.courses.ListCourses(gctx, key.CurriculumID, key.DepartmentID)
		if errors.Is(err, repositories.ErrCatalogNotFound) {
			return apperrors.Newf(apperrors.ErrResourceNotFound,
				"no catalog for curriculum %d department %d", key.CurriculumID, key.DepartmentID)
		}
		return err
	})
	g.Go(func() error {
		var err error
		blacklist, err = s.blacklists.ListBlacklist(gctx, key.CurriculumID, key.DepartmentID)
		return err
	})
	g.Go(func() error {
		var err error
		completed, err = s.completed.GetCompleted(gctx, key.StudentID)
		return err
	})
	g.Go(func() error {
		var err error
		stored, err = s.plans.Load(gctx, key)
		return err
	})
	if withConcentrations {
		g.Go(func() error {
			var err error
			concentrations, err = s.concentrations.ListConcentrations(gctx, key.CurriculumID, key.DepartmentID)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("error loading plan context: %w", err)
	}

	plan := models.NewPlan(key.CurriculumID, key.DepartmentID)
	if stored != nil {
		plan = *stored
	}
	if completed == nil {
		completed = models.CompletedRecord{}
	}

	engine := planner.NewEngine(courses, blacklist, planner.EngineOptions{
		SeniorStandingCredits: s.cfg.SeniorStandingCredits,
		Mutator:               s.cfg.MutatorOptions,
	})

	return &planContext{
		engine:         engine,
		plan:           plan,
		completed:      completed,
		concentrations: concentrations,
	}, nil
}

// GetPlan returns the plan with its credit summary
func (s *PlanService) GetPlan(ctx context.Context, key models.PlanKey) (*dto.PlanResponse, error) {
	pc, err := s.load(ctx, key, false)
	if err != nil {
		return nil, err
	}
	return &dto.PlanResponse{
		Plan:    pc.plan,
		Summary: pc.engine.Summarize(pc.plan, pc.completed),
	}, nil
}

// ListAddable returns the catalog courses not yet planned or taken, each
// with the decision for adding it in term.
func (s *PlanService) ListAddable(ctx context.Context, key models.PlanKey, term models.Term) ([]planner.AddableCourse, error) {
	pc, err := s.load(ctx, key, false)
	if err != nil {
		return nil, err
	}
	return pc.engine.Addable(pc.plan, pc.completed, term), nil
}

// CheckCourse reports whether code could be added in term without changing the plan
func (s *PlanService) CheckCourse(ctx context.Context, key models.PlanKey, code string, term models.Term) (*planner.CheckResult, error) {
	pc, err := s.load(ctx, key, false)
	if err != nil {
		return nil, err
	}

	res, err := pc.engine.Check(code, pc.plan, pc.completed, term)
	if err != nil {
		return nil, translatePlannerError(err)
	}
	s.metrics.ObserveDecision(res.Decision.Addable, len(res.Decision.Warnings))
	return &res, nil
}

// AddCourse validates code and adds it, with its corequisites, to the plan
func (s *PlanService) AddCourse(
	ctx context.Context,
	key models.PlanKey,
	code string,
	term models.Term,
	status models.PlanStatus,
) (*dto.AddCourseResponse, error) {
	unlock := s.locks.Lock(key.String())
	defer unlock()

	pc, err := s.load(ctx, key, false)
	if err != nil {
		return nil, err
	}

	next, added, res, err := pc.engine.Add(code, pc.plan, pc.completed, term, status)
	if res.Course.Code != "" {
		s.metrics.ObserveDecision(res.Decision.Addable, len(res.Decision.Warnings))
	}
	if err != nil {
		if errors.Is(err, planner.ErrNotAddable) {
			s.logger.Info().
				Str("plan", key.String()).
				Str("code", code).
				Strs("hard_errors", res.Decision.HardErrors).
				Msg("Course rejected")
			return nil, apperrors.NewCustomError(apperrors.ErrCourseNotAddable,
				fmt.Sprintf("%s cannot be added to the plan", code)).WithDetails(res.Decision)
		}
		return nil, translatePlannerError(err)
	}

	if err := s.plans.Save(ctx, key, next); err != nil {
		return nil, fmt.Errorf("error saving plan: %w", err)
	}
	s.metrics.ObserveAdded(len(added))

	s.logger.Info().
		Str("plan", key.String()).
		Str("code", code).
		Int("entries", len(added)).
		Strs("warnings", res.Decision.Warnings).
		Msg("Course added to plan")

	return &dto.AddCourseResponse{
		Plan:         next,
		Added:        added,
		Decision:     res.Decision,
		Corequisites: res.Corequisites,
	}, nil
}

// PreviewRemoval lists the entries that removing entryID would take with it
func (s *PlanService) PreviewRemoval(ctx context.Context, key models.PlanKey, entryID string) (*planner.RemovalPreview, error) {
	pc, err := s.load(ctx, key, false)
	if err != nil {
		return nil, err
	}

	preview, err := pc.engine.Mutator.PreviewRemoval(pc.plan, entryID, pc.completed)
	if err != nil {
		return nil, translatePlannerError(err)
	}
	return &preview, nil
}

// RemoveCourse removes entryID. When other entries depend on it the removal
// only happens with confirm set; otherwise the preview is returned as the
// error details and the plan is left unchanged.
func (s *PlanService) RemoveCourse(ctx context.Context, key models.PlanKey, entryID string, confirm bool) (*dto.RemovalResponse, error) {
	unlock := s.locks.Lock(key.String())
	defer unlock()

	pc, err := s.load(ctx, key, false)
	if err != nil {
		return nil, err
	}

	preview, err := pc.engine.Mutator.PreviewRemoval(pc.plan, entryID, pc.completed)
	if err != nil {
		return nil, translatePlannerError(err)
	}
	if preview.NeedsConfirmation() && !confirm {
		return nil, apperrors.NewCustomError(apperrors.ErrRemovalNeedsConfirmation,
			fmt.Sprintf("removing %s also removes %d dependent course(s)", preview.Target.Code, len(preview.Dependents))).
			WithDetails(preview)
	}

	next, applied, err := pc.engine.Mutator.ConfirmRemoval(pc.plan, entryID, pc.completed)
	if err != nil {
		return nil, translatePlannerError(err)
	}

	if err := s.plans.Save(ctx, key, next); err != nil {
		return nil, fmt.Errorf("error saving plan: %w", err)
	}
	s.metrics.ObserveRemoval(applied.NeedsConfirmation())

	s.logger.Info().
		Str("plan", key.String()).
		Str("code", applied.Target.Code).
		Int("dependents", len(applied.Dependents)).
		Msg("Course removed from plan")

	return &dto.RemovalResponse{
		Plan:       next,
		Removed:    applied.Target,
		Dependents: applied.Dependents,
	}, nil
}

// UpdateStatus changes the status of one plan entry
func (s *PlanService) UpdateStatus(ctx context.Context, key models.PlanKey, entryID string, status models.PlanStatus) (*models.Plan, error) {
	unlock := s.locks.Lock(key.String())
	defer unlock()

	pc, err := s.load(ctx, key, false)
	if err != nil {
		return nil, err
	}

	next, err := pc.engine.Mutator.UpdateStatus(pc.plan, entryID, status)
	if err != nil {
		return nil, translatePlannerError(err)
	}

	if err := s.plans.Save(ctx, key, next); err != nil {
		return nil, fmt.Errorf("error saving plan: %w", err)
	}
	return &next, nil
}

// AnalyzeConcentrations reports progress toward the selected concentration,
// or every concentration when selected is empty or "general".
func (s *PlanService) AnalyzeConcentrations(ctx context.Context, key models.PlanKey, selected string) (*dto.ConcentrationReport, error) {
	pc, err := s.load(ctx, key, true)
	if err != nil {
		return nil, err
	}

	progress := planner.Analyze(pc.concentrations, selected, pc.completed, pc.plan)
	s.metrics.ObserveAnalysis()

	return &dto.ConcentrationReport{
		Selected: selected,
		Progress: progress,
	}, nil
}

// translatePlannerError maps planner errors onto application errors
func translatePlannerError(err error) error {
	switch {
	case errors.Is(err, planner.ErrCourseNotInCatalog):
		return apperrors.NewCustomError(apperrors.ErrCourseNotFound, err.Error())
	case errors.Is(err, planner.ErrAlreadyPlanned):
		return apperrors.NewCustomError(apperrors.ErrCourseAlreadyPlanned, err.Error())
	case errors.Is(err, planner.ErrEntryNotFound):
		return apperrors.NewCustomError(apperrors.ErrPlanEntryNotFound, err.Error())
	case errors.Is(err, planner.ErrInvalidStatus):
		return apperrors.NewCustomError(apperrors.ErrInvalidPlanStatus, err.Error())
	case errors.Is(err, planner.ErrNotAddable):
		return apperrors.NewCustomError(apperrors.ErrCourseNotAddable, err.Error())
	default:
		return err
	}
}
