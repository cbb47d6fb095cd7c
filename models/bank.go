package models

import (
	"time"

	"github.com/google/uuid"
)

// Bank is one bank-branch master row used to drive the dependent
// state → branch → name dropdown cascade on the inspection form.
type Bank struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	State    string    `gorm:"size:100;index;not null" json:"state"`
	Branch   string    `gorm:"size:100;index;not null" json:"branch"`
	BankName string    `gorm:"size:255;not null" json:"bankName"`
	IfscCode string    `gorm:"size:20;uniqueIndex;not null" json:"ifscCode"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName specifies the table name for Bank
func (Bank) TableName() string {
	return "banks"
}
