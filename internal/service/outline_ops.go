package service

// OutlineOp is one editing step against a course outline, as sent by the
// authoring UI. Which fields matter depends on Op.
type OutlineOp struct {
	Op       string      `json:"op" binding:"required"`
	ModuleID string      `json:"moduleId"`
	LessonID string      `json:"lessonId"`
	Field    string      `json:"field"`
	Value    interface{} `json:"value"`
	Src      int         `json:"src"`
	Dst      int         `json:"dst"`
}

// ApplyOutlineOp dispatches one op onto the tree. Unknown op names are
// no-ops, matching how the tree ops treat unknown ids.
func ApplyOutlineOp(outline []ModuleDraft, op OutlineOp) []ModuleDraft {
	switch op.Op {
	case "addModule":
		return AddModule(outline)
	case "updateModule":
		value, _ := op.Value.(string)
		return UpdateModuleField(outline, op.ModuleID, op.Field, value)
	case "deleteModule":
		return DeleteModule(outline, op.ModuleID)
	case "addLesson":
		return AddLesson(outline, op.ModuleID)
	case "updateLesson":
		return UpdateLessonField(outline, op.ModuleID, op.LessonID, op.Field, op.Value)
	case "deleteLesson":
		return DeleteLesson(outline, op.ModuleID, op.LessonID)
	case "reorderModules":
		return ReorderModules(outline, op.Src, op.Dst)
	case "reorderLessons":
		return ReorderLessons(outline, op.ModuleID, op.Src, op.Dst)
	default:
		return outline
	}
}
