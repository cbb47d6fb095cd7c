package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MasterPolicies is the jsonb list of insurance policies held on a master
// record (a client or an Agrogreen umbrella policy document). Entries copied
// into an inspection keep a provenance pointer back to the master.
type MasterPolicies []InsuranceEntry

// Scan implements the sql.Scanner interface
func (p *MasterPolicies) Scan(value interface{}) error {
	if value == nil {
		*p = MasterPolicies{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		*p = MasterPolicies{}
		return nil
	}
	return json.Unmarshal(bytes, p)
}

// Value implements the driver.Valuer interface
func (p MasterPolicies) Value() (driver.Value, error) {
	if p == nil {
		return json.Marshal([]InsuranceEntry{})
	}
	return json.Marshal(p)
}

// GormDataType defines the data type for GORM
func (MasterPolicies) GormDataType() string {
	return "jsonb"
}

// Client is a master client record with its own insurance policies, offered
// as a copy source when an inspection's insurance is taken by the client.
type Client struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name    string    `gorm:"size:255;not null;index" json:"name"`
	Address string    `gorm:"size:500" json:"address"`
	Phone   string    `gorm:"size:15" json:"phone,omitempty"`

	Policies MasterPolicies `gorm:"type:jsonb" json:"policies"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clients"
}

// AgrogreenPolicy is one company-held (Agrogreen) master insurance policy
// document that inspections can copy entries from.
type AgrogreenPolicy struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InsuranceID string    `gorm:"size:50;uniqueIndex;not null" json:"insuranceId"`
	Description string    `gorm:"size:500" json:"description,omitempty"`

	Policies MasterPolicies `gorm:"type:jsonb" json:"policies"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for AgrogreenPolicy
func (AgrogreenPolicy) TableName() string {
	return "agrogreen_policies"
}
