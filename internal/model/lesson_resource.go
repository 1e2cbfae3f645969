package model

type ResourceType string

const (
	ResourceAttachment ResourceType = "attachment"
	ResourceVideo      ResourceType = "video"
	ResourceAudio      ResourceType = "audio"
	ResourceDocument   ResourceType = "document"
	ResourceLink       ResourceType = "link"
)

// LessonResource is a file or link attached to exactly one lesson,
// independent of the lesson's own video/content fields. ViewCount and
// DownloadCount are read-mostly caches of the usage-event log; they are
// reconciled by a background job, never incremented inline.
type LessonResource struct {
	UUIDBase
	LessonID      string       `gorm:"index;type:varchar(36)" json:"lessonId"`
	Title         string       `gorm:"size:255;not null" json:"title"`
	ResourceType  ResourceType `gorm:"size:20;not null" json:"resourceType"`
	FileURL       string       `gorm:"size:512" json:"fileUrl"`
	FileName      string       `gorm:"size:255" json:"fileName"`
	FileSize      int64        `gorm:"default:0" json:"fileSize"`
	FileType      string       `gorm:"size:100" json:"fileType"`
	Category      string       `gorm:"size:50;index" json:"category"`
	Tags          string       `gorm:"size:255" json:"tags"`
	IsPublic      bool         `gorm:"default:false" json:"isPublic"`
	ViewCount     int          `gorm:"default:0" json:"viewCount"`
	DownloadCount int          `gorm:"default:0" json:"downloadCount"`
	OrderIndex    int          `gorm:"default:0" json:"orderIndex"`
}

func (LessonResource) TableName() string {
	return "lesson_resources"
}

// ResourceDetails is the variant payload of a resource, keyed by
// ResourceType: a link carries only its URL, everything else carries
// file metadata. Keeping the variants separate avoids half-cleared
// fields when a resource changes type.
type ResourceDetails struct {
	Link *LinkDetails `json:"link,omitempty"`
	File *FileDetails `json:"file,omitempty"`
}

type LinkDetails struct {
	URL string `json:"url"`
}

type FileDetails struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// Details projects the flat row into its tagged-union form.
func (r *LessonResource) Details() ResourceDetails {
	if r.ResourceType == ResourceLink {
		return ResourceDetails{Link: &LinkDetails{URL: r.FileURL}}
	}
	return ResourceDetails{File: &FileDetails{
		URL:  r.FileURL,
		Name: r.FileName,
		Size: r.FileSize,
		Type: r.FileType,
	}}
}

// ApplyDetails writes a variant back onto the row, clearing the fields
// that do not belong to the variant.
func (r *LessonResource) ApplyDetails(d ResourceDetails) {
	if r.ResourceType == ResourceLink {
		if d.Link != nil {
			r.FileURL = d.Link.URL
		}
		r.FileName = ""
		r.FileSize = 0
		r.FileType = ""
		return
	}
	if d.File != nil {
		r.FileURL = d.File.URL
		r.FileName = d.File.Name
		r.FileSize = d.File.Size
		r.FileType = d.File.Type
	}
}
