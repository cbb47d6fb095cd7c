package handlers

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"p9e.in/agrogreen/config"
	"p9e.in/agrogreen/models"
)

// InsuranceService reconciles insurance entries against downstream inward
// stock movements that cite them.
type InsuranceService struct {
	db *gorm.DB
}

// NewInsuranceService creates a new insurance service instance
func NewInsuranceService() *InsuranceService {
	return &InsuranceService{
		db: config.DB,
	}
}

// NewInsuranceServiceWithDB builds a service on an explicit DB handle.
func NewInsuranceServiceWithDB(db *gorm.DB) *InsuranceService {
	return &InsuranceService{db: db}
}

// ApplicabilityResult reports whether accumulated inward value still fits
// inside an entry's coverage.
type ApplicabilityResult struct {
	TotalValue     decimal.Decimal `json:"totalValue"`
	FireAmount     decimal.Decimal `json:"fireAmount"`
	BurglaryAmount decimal.Decimal `json:"burglaryAmount"`
	Applicable     bool            `json:"applicable"`
}

// CheckApplicability sums the value of movements citing the entry and
// compares against both policy amounts. Strict inequality on both sides: a
// total exactly equal to either coverage amount is already not applicable.
// Pure; the caller fetches the movements.
func CheckApplicability(entry models.InsuranceEntry, movements []models.StockMovement) ApplicabilityResult {
	total := decimal.Zero
	for i := range movements {
		sel := movements[i].SelectedInsurance
		if sel.InsuranceID == entry.InsuranceID && sel.InsuranceTakenBy == entry.InsuranceTakenBy {
			total = total.Add(movements[i].MonetaryValue())
		}
	}

	fire := parseAmount(entry.FirePolicy.Amount)
	burglary := parseAmount(entry.BurglaryPolicy.Amount)

	return ApplicabilityResult{
		TotalValue:     total,
		FireAmount:     fire,
		BurglaryAmount: burglary,
		Applicable:     total.LessThan(fire) && total.LessThan(burglary),
	}
}

func parseAmount(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CheckEntry fetches the inward movements citing the entry and reconciles.
func (s *InsuranceService) CheckEntry(entry models.InsuranceEntry) (ApplicabilityResult, error) {
	var movements []models.StockMovement
	if err := s.db.
		Where("insurance_id = ? AND insurance_taken_by = ?", entry.InsuranceID, entry.InsuranceTakenBy).
		Find(&movements).Error; err != nil {
		return ApplicabilityResult{}, fmt.Errorf("failed to fetch inward movements: %w", err)
	}
	return CheckApplicability(entry, movements), nil
}

// FindEntry locates an insurance entry on an inspection by its stable id.
func FindEntry(rec *models.InspectionRecord, entryID string) (models.InsuranceEntry, bool) {
	for _, e := range rec.Data.InsuranceEntries {
		if e.ID == entryID {
			return e, true
		}
	}
	return models.InsuranceEntry{}, false
}
