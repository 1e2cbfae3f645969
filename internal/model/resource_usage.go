package model

import "time"

type UsageAction string

const (
	ActionView     UsageAction = "view"
	ActionDownload UsageAction = "download"
	ActionPlay     UsageAction = "play"
)

// ResourceUsageEvent is an append-only telemetry record. Rows are never
// updated or deleted; every analytics view is derived by grouping this
// log on demand.
type ResourceUsageEvent struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	ResourceID      string      `gorm:"index;type:varchar(36);not null" json:"resourceId"`
	UserID          uint        `gorm:"index" json:"userId"`
	ActionType      UsageAction `gorm:"size:20;not null" json:"actionType"`
	ActionTimestamp time.Time   `gorm:"index;not null" json:"actionTimestamp"`
	SessionDuration int         `gorm:"default:0" json:"sessionDuration"` // seconds, only for play
	DeviceInfo      string      `gorm:"size:255" json:"deviceInfo"`
}

func (ResourceUsageEvent) TableName() string {
	return "resource_usage_stats"
}
