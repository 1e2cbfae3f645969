package model

import "time"

type UserRole string

const (
	Member  UserRole = "member"
	Creator UserRole = "creator"
	Admin   UserRole = "admin"
)

// User is the authenticated principal. Authentication itself is delegated
// to JWT middleware; this row only carries identity and profile data.
type User struct {
	BaseModel
	Name       string     `gorm:"size:100;not null" json:"name"`
	Email      string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string     `gorm:"size:255;not null" json:"-"`
	Role       UserRole   `gorm:"size:20;default:'member'" json:"role"`
	Avatar     string     `gorm:"size:255" json:"avatar"`
	Bio        string     `gorm:"type:text" json:"bio"`
	LastSeenAt *time.Time `json:"lastSeenAt"`
}

func (User) TableName() string {
	return "profiles"
}
