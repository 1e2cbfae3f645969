package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOutline() []ModuleDraft {
	return []ModuleDraft{
		{
			ID: "m1", Title: "Intro", OrderIndex: 0,
			Lessons: []LessonDraft{
				{ID: "l1", Title: "Welcome", OrderIndex: 0},
				{ID: "l2", Title: "Setup", DurationMinutes: 10, OrderIndex: 1},
				{ID: "l3", Title: "Tour", VideoURL: "https://cdn/x.mp4", DurationMinutes: 5, OrderIndex: 2},
			},
		},
		{
			ID: "m2", Title: "Basics", OrderIndex: 1,
			Lessons: []LessonDraft{
				{ID: "l4", Title: "Variables", Content: "# Variables", OrderIndex: 0},
			},
		},
		{ID: "m3", Title: "Advanced", OrderIndex: 2, Lessons: []LessonDraft{}},
	}
}

func assertDenseIndices(t *testing.T, outline []ModuleDraft) {
	t.Helper()
	for i, m := range outline {
		assert.Equal(t, i, m.OrderIndex, "module %s", m.ID)
		for j, l := range m.Lessons {
			assert.Equal(t, j, l.OrderIndex, "lesson %s", l.ID)
		}
	}
}

func TestAddModuleAppendsAtEnd(t *testing.T) {
	outline := sampleOutline()
	next := AddModule(outline)

	require.Len(t, next, 4)
	assert.Equal(t, 3, next[3].OrderIndex)
	assert.Contains(t, next[3].ID, "temp-")
	assert.Empty(t, next[3].Lessons)
	assert.Len(t, outline, 3, "input must not change")
}

func TestUpdateModuleField(t *testing.T) {
	next := UpdateModuleField(sampleOutline(), "m2", "title", "Fundamentals")
	assert.Equal(t, "Fundamentals", next[1].Title)

	next = UpdateModuleField(sampleOutline(), "m2", "description", "start here")
	assert.Equal(t, "start here", next[1].Description)

	// unknown module and unknown field are both no-ops
	assert.Equal(t, sampleOutline(), UpdateModuleField(sampleOutline(), "nope", "title", "x"))
	assert.Equal(t, sampleOutline(), UpdateModuleField(sampleOutline(), "m2", "color", "red"))
}

func TestDeleteModuleRepacksIndices(t *testing.T) {
	next := DeleteModule(sampleOutline(), "m1")

	require.Len(t, next, 2)
	assert.Equal(t, "m2", next[0].ID)
	assert.Equal(t, "m3", next[1].ID)
	assertDenseIndices(t, next)
}

func TestDeleteUnknownModuleIsNoOp(t *testing.T) {
	assert.Equal(t, sampleOutline(), DeleteModule(sampleOutline(), "ghost"))
}

func TestAddLesson(t *testing.T) {
	next := AddLesson(sampleOutline(), "m3")

	require.Len(t, next[2].Lessons, 1)
	assert.Equal(t, 0, next[2].Lessons[0].OrderIndex)
	assert.Contains(t, next[2].Lessons[0].ID, "temp-")

	assert.Equal(t, sampleOutline(), AddLesson(sampleOutline(), "ghost"))
}

func TestUpdateLessonField(t *testing.T) {
	next := UpdateLessonField(sampleOutline(), "m1", "l2", "title", "Installation")
	assert.Equal(t, "Installation", next[0].Lessons[1].Title)

	next = UpdateLessonField(sampleOutline(), "m1", "l2", "durationMinutes", 25)
	assert.Equal(t, 25, next[0].Lessons[1].DurationMinutes)

	// JSON-decoded numbers arrive as float64
	next = UpdateLessonField(sampleOutline(), "m1", "l2", "durationMinutes", float64(30))
	assert.Equal(t, 30, next[0].Lessons[1].DurationMinutes)

	// wrong value type is a no-op
	next = UpdateLessonField(sampleOutline(), "m1", "l2", "title", 42)
	assert.Equal(t, "Setup", next[0].Lessons[1].Title)
}

func TestDeleteLessonRepacksSiblings(t *testing.T) {
	next := DeleteLesson(sampleOutline(), "m1", "l2")

	require.Len(t, next[0].Lessons, 2)
	assert.Equal(t, "l1", next[0].Lessons[0].ID)
	assert.Equal(t, "l3", next[0].Lessons[1].ID)
	assertDenseIndices(t, next)
}

func TestReorderModules(t *testing.T) {
	next := ReorderModules(sampleOutline(), 0, 2)

	require.Len(t, next, 3)
	assert.Equal(t, []string{"m2", "m3", "m1"}, []string{next[0].ID, next[1].ID, next[2].ID})
	assertDenseIndices(t, next)
}

func TestReorderModulesNoOps(t *testing.T) {
	outline := sampleOutline()

	assert.Equal(t, outline, ReorderModules(outline, 1, 1), "equal indices")
	assert.Equal(t, outline, ReorderModules(outline, -1, 0), "negative src")
	assert.Equal(t, outline, ReorderModules(outline, 0, 3), "dst past end")
	assert.Equal(t, outline, ReorderModules(outline, 7, 0), "src past end")
}

func TestReorderModulesRoundTrip(t *testing.T) {
	outline := sampleOutline()
	back := ReorderModules(ReorderModules(outline, 0, 2), 2, 0)
	assert.Equal(t, outline, back)
}

func TestReorderLessons(t *testing.T) {
	next := ReorderLessons(sampleOutline(), "m1", 2, 0)

	lessons := next[0].Lessons
	require.Len(t, lessons, 3)
	assert.Equal(t, []string{"l3", "l1", "l2"}, []string{lessons[0].ID, lessons[1].ID, lessons[2].ID})
	assertDenseIndices(t, next)

	// the other modules are untouched
	assert.Equal(t, sampleOutline()[1], next[1])
}

func TestReorderLessonsNoOps(t *testing.T) {
	outline := sampleOutline()

	assert.Equal(t, outline, ReorderLessons(outline, "m1", 1, 1))
	assert.Equal(t, outline, ReorderLessons(outline, "m1", 0, 9))
	assert.Equal(t, outline, ReorderLessons(outline, "ghost", 0, 1))
}

func TestComputeOutlineStats(t *testing.T) {
	stats := ComputeOutlineStats(sampleOutline())

	assert.Equal(t, 3, stats.TotalModules)
	assert.Equal(t, 4, stats.TotalLessons)
	assert.Equal(t, 15, stats.TotalDuration)
	assert.True(t, stats.HasVideo)
	assert.True(t, stats.HasContent)
}

func TestComputeOutlineStatsEmpty(t *testing.T) {
	stats := ComputeOutlineStats(nil)

	assert.Equal(t, OutlineStats{}, stats)
}

func TestApplyOutlineOpDispatch(t *testing.T) {
	outline := sampleOutline()

	next := ApplyOutlineOp(outline, OutlineOp{Op: "addModule"})
	assert.Len(t, next, 4)

	next = ApplyOutlineOp(outline, OutlineOp{Op: "updateModule", ModuleID: "m1", Field: "title", Value: "Start"})
	assert.Equal(t, "Start", next[0].Title)

	next = ApplyOutlineOp(outline, OutlineOp{Op: "reorderLessons", ModuleID: "m1", Src: 0, Dst: 2})
	assert.Equal(t, "l1", next[0].Lessons[2].ID)

	assert.Equal(t, outline, ApplyOutlineOp(outline, OutlineOp{Op: "explode"}), "unknown op")
}
