package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/courseplanner/internal/app/models"
	"github.com/yigit/courseplanner/internal/planner"
)

func testEngine() *planner.Engine {
	physics := course("PHY101", 3)
	physics.Corequisites = []string{"PHY101L"}
	lab := course("PHY101L", 1)
	lab.Corequisites = []string{"SAFETY"}
	mechanics := course("PHY201", 3)
	mechanics.Prerequisites = []string{"PHY101"}

	return planner.NewEngine([]models.Course{
		physics, lab, mechanics, course("SAFETY", 0), course("BAD", 3), course("HIST", 3),
	}, []string{"BAD"}, planner.EngineOptions{Mutator: []planner.MutatorOption{sequentialIDs()}})
}

func TestEngineAdd_ResolvesCorequisites(t *testing.T) {
	e := testEngine()

	plan, added, res, err := e.Add("PHY101", planOf(), completedOf(), "1", "")

	require.NoError(t, err)
	assert.True(t, res.Decision.Addable)
	assert.Equal(t, []string{"PHY101L"}, res.Corequisites.Codes())
	require.Len(t, added, 2)
	assert.Len(t, plan.Courses, 2)
	assert.False(t, plan.Contains("SAFETY"))
}

func TestEngineAdd_HardRejectionLeavesPlan(t *testing.T) {
	e := testEngine()
	before := planOf(planned("p1", "HIST", 3))

	after, added, res, err := e.Add("BAD", before, completedOf(), "1", "")

	assert.ErrorIs(t, err, planner.ErrNotAddable)
	assert.Nil(t, added)
	assert.Equal(t, before, after)
	assert.False(t, res.Decision.Addable)
	assert.Empty(t, res.Corequisites.Courses)
}

func TestEngineAdd_Errors(t *testing.T) {
	e := testEngine()

	_, _, _, err := e.Add("NOPE", planOf(), completedOf(), "1", "")
	assert.ErrorIs(t, err, planner.ErrCourseNotInCatalog)

	_, _, _, err = e.Add("HIST", planOf(planned("p1", "HIST", 3)), completedOf(), "1", "")
	assert.ErrorIs(t, err, planner.ErrAlreadyPlanned)
}

func TestEngineAdd_PlannedPrerequisite(t *testing.T) {
	e := testEngine()
	plan, _, _, err := e.Add("PHY101", planOf(), completedOf(), "1", "")
	require.NoError(t, err)

	plan, added, res, err := e.Add("PHY201", plan, completedOf(), "2", models.PlanStatusWillTake)

	require.NoError(t, err)
	assert.Empty(t, res.Decision.Warnings)
	assert.Equal(t, models.ValidationValid, added[0].ValidationStatus)
	assert.Len(t, plan.Courses, 3)
}

func TestEngineAddable_FiltersPlannedAndTaken(t *testing.T) {
	e := testEngine()
	completed := completedOf("HIST")
	completed["SAFETY"] = models.CompletionEntry{Status: models.CompletionInProgress}
	plan := planOf(planned("p1", "PHY101", 3))

	got := e.Addable(plan, completed, "1")

	codes := make([]string, 0, len(got))
	for _, a := range got {
		codes = append(codes, a.Course.Code)
	}
	assert.Equal(t, []string{"PHY101L", "PHY201", "BAD"}, codes)
	assert.False(t, got[2].Decision.Addable)
}

func TestEngineSummarize(t *testing.T) {
	e := testEngine()
	summer := planned("p2", "PHY101L", 1)
	summer.Semester = models.TermSummer

	s := e.Summarize(planOf(planned("p1", "PHY101", 3), summer), completedOf("HIST"))

	assert.Equal(t, 4.0, s.PlannedCredits)
	assert.Equal(t, 3.0, s.CompletedCredits)
	assert.Equal(t, 1.0, s.BySemester[models.TermSummer])
}

func TestCatalog_FirstDuplicateWins(t *testing.T) {
	first := course("A", 3)
	second := course("A", 9)

	c := planner.NewCatalog([]models.Course{first, second, course("B", 1)})

	got, ok := c.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, 3.0, planner.ParseCredits(got.Credits))
	assert.Equal(t, 2, c.Len())

	var nilCatalog *planner.Catalog
	_, ok = nilCatalog.Lookup("A")
	assert.False(t, ok)
}
