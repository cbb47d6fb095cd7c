package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SelectedInsurance is the back-reference an inward record carries to the
// insurance entry covering it.
type SelectedInsurance struct {
	InsuranceID      string `gorm:"column:insurance_id;size:50" json:"insuranceId"`
	InsuranceTakenBy string `gorm:"column:insurance_taken_by;size:30" json:"insuranceTakenBy"`
}

// StockMovement is one downstream inward (stock-in) record. This service only
// reads it, to reconcile accumulated value against policy coverage; it never
// mutates inward data.
type StockMovement struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WarehouseCode string    `gorm:"size:50;index" json:"warehouseCode"`
	CommodityName string    `gorm:"size:255" json:"commodityName"`

	SelectedInsurance SelectedInsurance `gorm:"embedded" json:"selectedInsurance"`

	// Older records populated different value fields; the first present wins.
	TotalValue string `gorm:"size:50" json:"totalValue,omitempty"`
	Value      string `gorm:"size:50" json:"value,omitempty"`
	Amount     string `gorm:"size:50" json:"amount,omitempty"`

	InwardDate JSONTime `json:"inwardDate"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for StockMovement
func (StockMovement) TableName() string {
	return "inwards"
}

// MonetaryValue returns the movement's value as the first parsable of
// totalValue/value/amount; unparsable or missing values count as zero.
func (m *StockMovement) MonetaryValue() decimal.Decimal {
	for _, raw := range []string{m.TotalValue, m.Value, m.Amount} {
		if raw == "" {
			continue
		}
		if d, err := decimal.NewFromString(strings.TrimSpace(raw)); err == nil {
			return d
		}
	}
	return decimal.Zero
}
