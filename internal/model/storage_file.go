package model

import "time"

// StorageFile is a handle into the object-storage bucket. ID doubles as
// the storage key. Files are deleted only on explicit request; removing a
// URL from a lesson does not garbage-collect the underlying object.
type StorageFile struct {
	ID        string    `gorm:"primaryKey;size:512" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	URL       string    `gorm:"size:512;not null" json:"url"`
	Size      int64     `gorm:"default:0" json:"size"`
	Type      string    `gorm:"size:100" json:"type"`
	OwnerID   uint      `gorm:"index" json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (StorageFile) TableName() string {
	return "storage_files"
}
