package model

import "time"

type ResourceCategory struct {
	ID        string    `gorm:"primaryKey;size:50" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Color     string    `gorm:"size:20" json:"color"`
	Icon      string    `gorm:"size:50" json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ResourceCategory) TableName() string {
	return "resource_categories"
}

// BuiltinCategories is the fixed list substituted whenever the category
// table cannot be reached. Category selection must never be blocked by a
// transient backend outage.
func BuiltinCategories() []ResourceCategory {
	return []ResourceCategory{
		{ID: "documents", Name: "Documentos", Color: "#3B82F6", Icon: "file-text"},
		{ID: "videos", Name: "Videos", Color: "#EF4444", Icon: "video"},
		{ID: "audio", Name: "Audio", Color: "#8B5CF6", Icon: "headphones"},
		{ID: "images", Name: "Imágenes", Color: "#10B981", Icon: "image"},
		{ID: "links", Name: "Enlaces", Color: "#F59E0B", Icon: "link"},
		{ID: "exercises", Name: "Ejercicios", Color: "#EC4899", Icon: "clipboard-list"},
		{ID: "templates", Name: "Plantillas", Color: "#6366F1", Icon: "layout-template"},
		{ID: "code", Name: "Código", Color: "#14B8A6", Icon: "code"},
	}
}
