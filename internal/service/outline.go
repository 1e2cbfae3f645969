package service

import (
	"strconv"
	"time"
)

// The course outline is the in-memory editing model of a course: an
// ordered tree of modules, each holding ordered lessons. Every operation
// below is a pure transition returning a new tree; the input is never
// mutated, because callers hold the previous value for comparison.
//
// Unknown module or lesson ids are deliberate no-ops: the editing layer
// fails silent on stale references instead of erroring.

type LessonDraft struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	VideoURL        string `json:"videoUrl"`
	DurationMinutes int    `json:"durationMinutes"`
	OrderIndex      int    `json:"orderIndex"`
}

type ModuleDraft struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Lessons     []LessonDraft `json:"lessons"`
	OrderIndex  int           `json:"orderIndex"`
}

// OutlineStats is derived on every call, never stored; caching any of
// these flags risks going stale relative to the tree.
type OutlineStats struct {
	TotalModules  int  `json:"totalModules"`
	TotalLessons  int  `json:"totalLessons"`
	TotalDuration int  `json:"totalDuration"`
	HasVideo      bool `json:"hasVideo"`
	HasContent    bool `json:"hasContent"`
}

// NewTempID returns a client-style placeholder id. Durable ids are
// assigned by the database on save.
func NewTempID() string {
	return "temp-" + strconv.FormatInt(time.Now().UnixNano(), 10)
}

// AddModule appends an empty module at the end of the outline.
func AddModule(outline []ModuleDraft) []ModuleDraft {
	next := make([]ModuleDraft, len(outline), len(outline)+1)
	copy(next, outline)
	return append(next, ModuleDraft{
		ID:         NewTempID(),
		Title:      "",
		Lessons:    []LessonDraft{},
		OrderIndex: len(outline),
	})
}

// UpdateModuleField replaces one scalar field on the matching module.
// Recognized fields: "title", "description".
func UpdateModuleField(outline []ModuleDraft, moduleID, field, value string) []ModuleDraft {
	next := make([]ModuleDraft, len(outline))
	copy(next, outline)
	for i := range next {
		if next[i].ID != moduleID {
			continue
		}
		switch field {
		case "title":
			next[i].Title = value
		case "description":
			next[i].Description = value
		}
		break
	}
	return next
}

// DeleteModule removes a module and all its lessons, then re-packs the
// surviving order indices so they stay a dense zero-based permutation.
func DeleteModule(outline []ModuleDraft, moduleID string) []ModuleDraft {
	next := make([]ModuleDraft, 0, len(outline))
	for _, m := range outline {
		if m.ID == moduleID {
			continue
		}
		next = append(next, m)
	}
	return repackModules(next)
}

// AddLesson appends an empty lesson to the named module.
func AddLesson(outline []ModuleDraft, moduleID string) []ModuleDraft {
	next := make([]ModuleDraft, len(outline))
	copy(next, outline)
	for i := range next {
		if next[i].ID != moduleID {
			continue
		}
		lessons := make([]LessonDraft, len(next[i].Lessons), len(next[i].Lessons)+1)
		copy(lessons, next[i].Lessons)
		next[i].Lessons = append(lessons, LessonDraft{
			ID:         NewTempID(),
			OrderIndex: len(lessons),
		})
		break
	}
	return next
}

// UpdateLessonField replaces one scalar field on one lesson. Recognized
// fields: "title", "content", "videoUrl" (strings), "durationMinutes"
// (int). A value of the wrong type is a no-op.
func UpdateLessonField(outline []ModuleDraft, moduleID, lessonID, field string, value interface{}) []ModuleDraft {
	next := make([]ModuleDraft, len(outline))
	copy(next, outline)
	for i := range next {
		if next[i].ID != moduleID {
			continue
		}
		lessons := make([]LessonDraft, len(next[i].Lessons))
		copy(lessons, next[i].Lessons)
		for j := range lessons {
			if lessons[j].ID != lessonID {
				continue
			}
			switch field {
			case "title":
				if s, ok := value.(string); ok {
					lessons[j].Title = s
				}
			case "content":
				if s, ok := value.(string); ok {
					lessons[j].Content = s
				}
			case "videoUrl":
				if s, ok := value.(string); ok {
					lessons[j].VideoURL = s
				}
			case "durationMinutes":
				switch v := value.(type) {
				case int:
					lessons[j].DurationMinutes = v
				case float64: // JSON numbers decode as float64
					lessons[j].DurationMinutes = int(v)
				}
			}
			break
		}
		next[i].Lessons = lessons
		break
	}
	return next
}

// DeleteLesson removes a lesson from its module and re-packs the
// remaining sibling indices.
func DeleteLesson(outline []ModuleDraft, moduleID, lessonID string) []ModuleDraft {
	next := make([]ModuleDraft, len(outline))
	copy(next, outline)
	for i := range next {
		if next[i].ID != moduleID {
			continue
		}
		lessons := make([]LessonDraft, 0, len(next[i].Lessons))
		for _, l := range next[i].Lessons {
			if l.ID == lessonID {
				continue
			}
			lessons = append(lessons, l)
		}
		next[i].Lessons = repackLessons(lessons)
		break
	}
	return next
}

// ReorderModules moves the module at src to dst and reassigns every
// order index to its new array position. Equal or out-of-range indices
// are a no-op, never an error.
func ReorderModules(outline []ModuleDraft, src, dst int) []ModuleDraft {
	if src == dst || src < 0 || dst < 0 || src >= len(outline) || dst >= len(outline) {
		return outline
	}

	next := make([]ModuleDraft, len(outline))
	copy(next, outline)
	moved := next[src]
	next = append(next[:src], next[src+1:]...)
	next = append(next[:dst], append([]ModuleDraft{moved}, next[dst:]...)...)
	return repackModules(next)
}

// ReorderLessons applies the same permutation within one module's lesson
// list.
func ReorderLessons(outline []ModuleDraft, moduleID string, src, dst int) []ModuleDraft {
	next := make([]ModuleDraft, len(outline))
	copy(next, outline)
	for i := range next {
		if next[i].ID != moduleID {
			continue
		}
		lessons := next[i].Lessons
		if src == dst || src < 0 || dst < 0 || src >= len(lessons) || dst >= len(lessons) {
			return outline
		}
		reordered := make([]LessonDraft, len(lessons))
		copy(reordered, lessons)
		moved := reordered[src]
		reordered = append(reordered[:src], reordered[src+1:]...)
		reordered = append(reordered[:dst], append([]LessonDraft{moved}, reordered[dst:]...)...)
		next[i].Lessons = repackLessons(reordered)
		return next
	}
	return outline
}

// ComputeOutlineStats folds over the tree. Always recomputed, see the
// note on OutlineStats.
func ComputeOutlineStats(outline []ModuleDraft) OutlineStats {
	stats := OutlineStats{TotalModules: len(outline)}
	for _, m := range outline {
		stats.TotalLessons += len(m.Lessons)
		for _, l := range m.Lessons {
			stats.TotalDuration += l.DurationMinutes
			if l.VideoURL != "" {
				stats.HasVideo = true
			}
			if l.Content != "" {
				stats.HasContent = true
			}
		}
	}
	return stats
}

func repackModules(modules []ModuleDraft) []ModuleDraft {
	for i := range modules {
		modules[i].OrderIndex = i
	}
	return modules
}

func repackLessons(lessons []LessonDraft) []LessonDraft {
	for i := range lessons {
		lessons[i].OrderIndex = i
	}
	return lessons
}
