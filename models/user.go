// models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Access modes granted to a user over inspection records. The workflow core
// consumes the mode as an opaque capability; checker additionally unlocks the
// review actions (activate/reject/resubmit).
const (
	ModeView   = "view"
	ModeEdit   = "edit"
	ModeCreate = "create"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"size:15;uniqueIndex;not null" json:"phone"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:30;not null;default:'submitter'" json:"role"` // submitter | checker | admin
	Mode         string    `gorm:"size:10;not null;default:'view'" json:"mode"`      // view | edit | create
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = uuid.New()
	return
}

// CanEdit reports whether the user may mutate inspection data.
func (u *User) CanEdit() bool {
	return u.Mode == ModeEdit || u.Mode == ModeCreate
}

// IsChecker reports whether the user may perform review transitions.
func (u *User) IsChecker() bool {
	return u.Role == "checker" || u.Role == "admin"
}
