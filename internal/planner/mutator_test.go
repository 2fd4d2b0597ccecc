package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/courseplanner/internal/app/models"
	"github.com/yigit/courseplanner/internal/planner"
)

func TestMutatorAdd_PrimaryAndCorequisites(t *testing.T) {
	m := planner.NewMutator(sequentialIDs())
	lab := course("CS101L", 1)
	intro := models.Course{
		Code:          "CS101",
		Title:         "Intro",
		Credits:       models.TextCredits("3-0-6"),
		Prerequisites: []string{"MATH100"},
		Corequisites:  []string{"CS101L"},
	}
	decision := planner.AddDecision{Addable: true, Warnings: []string{"Missing prerequisite: MATH100"}}
	before := planOf()

	after, added, err := m.Add(before, planner.AddRequest{
		Course:       intro,
		Decision:     decision,
		Corequisites: []models.Course{lab},
		Term:         "1",
	})

	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Len(t, after.Courses, 2)
	assert.Empty(t, before.Courses)

	primary := after.Courses[0]
	assert.Equal(t, "entry-1", primary.ID)
	assert.Equal(t, 3, primary.Credits)
	assert.Equal(t, models.PlanStatusPlanning, primary.Status)
	assert.Equal(t, models.ValidationWarning, primary.ValidationStatus)
	assert.Equal(t, []string{"Missing prerequisite: MATH100"}, primary.ValidationNotes)
	assert.Equal(t, []string{"MATH100"}, primary.Prerequisites)

	coreq := after.Courses[1]
	assert.Equal(t, "CS101L", coreq.Code)
	assert.Equal(t, models.ValidationValid, coreq.ValidationStatus)
	assert.Equal(t, []string{"Auto-added as corequisite of CS101"}, coreq.ValidationNotes)
	assert.Equal(t, models.Term("1"), coreq.Semester)
}

func TestMutatorAdd_NoWarningsIsValid(t *testing.T) {
	m := planner.NewMutator(sequentialIDs())
	after, _, err := m.Add(planOf(), planner.AddRequest{
		Course:   course("A", 3),
		Decision: planner.AddDecision{Addable: true},
		Term:     "2",
		Status:   models.PlanStatusWillTake,
	})

	require.NoError(t, err)
	assert.Equal(t, models.ValidationValid, after.Courses[0].ValidationStatus)
	assert.Empty(t, after.Courses[0].ValidationNotes)
	assert.Equal(t, models.PlanStatusWillTake, after.Courses[0].Status)
}

func TestMutatorAdd_IsAllOrNothing(t *testing.T) {
	m := planner.NewMutator(sequentialIDs())
	before := planOf(planned("p1", "LAB", 1))

	after, added, err := m.Add(before, planner.AddRequest{
		Course:       course("A", 3),
		Decision:     planner.AddDecision{Addable: true},
		Corequisites: []models.Course{course("NEW", 1), course("LAB", 1)},
		Term:         "1",
	})

	assert.ErrorIs(t, err, planner.ErrAlreadyPlanned)
	assert.Nil(t, added)
	assert.Equal(t, before, after)
}

func TestMutatorAdd_Rejections(t *testing.T) {
	m := planner.NewMutator()

	_, _, err := m.Add(planOf(), planner.AddRequest{
		Course:   course("A", 3),
		Decision: planner.AddDecision{Addable: false, HardErrors: []string{"nope"}},
	})
	assert.ErrorIs(t, err, planner.ErrNotAddable)

	_, _, err = m.Add(planOf(), planner.AddRequest{
		Course:   course("A", 3),
		Decision: planner.AddDecision{Addable: true},
		Status:   "finished",
	})
	assert.ErrorIs(t, err, planner.ErrInvalidStatus)
}

func TestMutatorAdd_GeneratesUUIDs(t *testing.T) {
	after, _, err := planner.NewMutator().Add(planOf(), planner.AddRequest{
		Course:   course("A", 3),
		Decision: planner.AddDecision{Addable: true},
	})

	require.NoError(t, err)
	assert.Len(t, after.Courses[0].ID, 36)
}

func TestRemoval_CascadesToDirectDependents(t *testing.T) {
	m := planner.NewMutator()
	plan := planOf(planned("a", "A", 3), planned("b", "B", 3, "A"))

	preview, err := m.PreviewRemoval(plan, "a", completedOf())
	require.NoError(t, err)
	assert.True(t, preview.NeedsConfirmation())
	require.Len(t, preview.Dependents, 1)
	assert.Equal(t, "B", preview.Dependents[0].Code)

	after, _, err := m.ConfirmRemoval(plan, "a", completedOf())
	require.NoError(t, err)
	assert.Empty(t, after.Courses)
	assert.Len(t, plan.Courses, 2)
}

func TestRemoval_DependentLeavesPrerequisite(t *testing.T) {
	m := planner.NewMutator()
	plan := planOf(planned("a", "A", 3), planned("b", "B", 3, "A"))

	preview, err := m.PreviewRemoval(plan, "b", completedOf())
	require.NoError(t, err)
	assert.False(t, preview.NeedsConfirmation())

	after, _, err := m.ConfirmRemoval(plan, "b", completedOf())
	require.NoError(t, err)
	require.Len(t, after.Courses, 1)
	assert.Equal(t, "A", after.Courses[0].Code)
}

func TestRemoval_CascadeIsSingleLevel(t *testing.T) {
	m := planner.NewMutator()
	plan := planOf(
		planned("a", "A", 3),
		planned("b", "B", 3, "A"),
		planned("c", "C", 3, "B"),
	)

	after, preview, err := m.ConfirmRemoval(plan, "a", completedOf())

	require.NoError(t, err)
	assert.Len(t, preview.Dependents, 1)
	require.Len(t, after.Courses, 1)
	assert.Equal(t, "C", after.Courses[0].Code)
}

func TestRemoval_CompletedPrerequisiteHasNoDependents(t *testing.T) {
	m := planner.NewMutator()
	plan := planOf(planned("a", "A", 3), planned("b", "B", 3, "A"))

	preview, err := m.PreviewRemoval(plan, "a", completedOf("A"))

	require.NoError(t, err)
	assert.Empty(t, preview.Dependents)
}

func TestRemoval_UnknownEntry(t *testing.T) {
	m := planner.NewMutator()
	before := planOf(planned("a", "A", 3))

	_, err := m.PreviewRemoval(before, "zzz", completedOf())
	assert.ErrorIs(t, err, planner.ErrEntryNotFound)

	after, _, err := m.ConfirmRemoval(before, "zzz", completedOf())
	assert.ErrorIs(t, err, planner.ErrEntryNotFound)
	assert.Equal(t, before, after)
}

func TestUpdateStatus(t *testing.T) {
	m := planner.NewMutator()
	a := planned("a", "A", 3)
	a.ValidationStatus = models.ValidationWarning
	a.ValidationNotes = []string{"Missing prerequisite: Z"}
	before := planOf(a, planned("b", "B", 3))

	after, err := m.UpdateStatus(before, "a", models.PlanStatusConsidering)
	require.NoError(t, err)
	assert.Equal(t, models.PlanStatusConsidering, after.Courses[0].Status)
	assert.Equal(t, models.ValidationWarning, after.Courses[0].ValidationStatus)
	assert.Equal(t, a.ValidationNotes, after.Courses[0].ValidationNotes)
	assert.Equal(t, before.Courses[1], after.Courses[1])
	assert.Equal(t, models.PlanStatusPlanning, before.Courses[0].Status)

	_, err = m.UpdateStatus(before, "a", "done")
	assert.ErrorIs(t, err, planner.ErrInvalidStatus)

	_, err = m.UpdateStatus(before, "missing", models.PlanStatusWillTake)
	assert.ErrorIs(t, err, planner.ErrEntryNotFound)
}
