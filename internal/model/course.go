package model

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
)

type Course struct {
	UUIDBase
	CommunityID string       `gorm:"index;type:varchar(36)" json:"communityId"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	CoverURL    string       `gorm:"size:255" json:"coverUrl"`
	Status      CourseStatus `gorm:"size:20;default:'draft'" json:"status"`
	AuthorID    uint         `gorm:"index" json:"authorId"`
	Author      User         `gorm:"foreignKey:AuthorID" json:"-"`
	Modules     []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseModule is an ordered group of lessons. OrderIndex is a dense,
// zero-based permutation within the course and is the sole authority for
// render and playback order.
type CourseModule struct {
	UUIDBase
	CourseID    string   `gorm:"index;type:varchar(36)" json:"courseId"`
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	OrderIndex  int      `gorm:"default:0" json:"orderIndex"`
	Lessons     []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

func (CourseModule) TableName() string {
	return "modules"
}

// Lesson content is markdown-like text rendered by a fixed substitution
// pass; VideoURL and Content may independently be empty.
type Lesson struct {
	UUIDBase
	ModuleID        string `gorm:"index;type:varchar(36)" json:"moduleId"`
	Title           string `gorm:"size:255;not null" json:"title"`
	Content         string `gorm:"type:text" json:"content"`
	VideoURL        string `gorm:"size:255" json:"videoUrl"`
	DurationMinutes int    `gorm:"default:0" json:"durationMinutes"`
	OrderIndex      int    `gorm:"default:0" json:"orderIndex"` // dense within the parent module
}

func (Lesson) TableName() string {
	return "lessons"
}
