package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"p9e.in/agrogreen/models"
)

func coveredEntry(fire, burglary string) models.InsuranceEntry {
	return models.InsuranceEntry{
		ID:               "e1",
		InsuranceID:      "ins-100",
		InsuranceTakenBy: models.TakenByWarehouseOwner,
		FirePolicy:       models.PolicyDetails{Amount: fire},
		BurglaryPolicy:   models.PolicyDetails{Amount: burglary},
	}
}

func movement(insuranceID, takenBy, total string) models.StockMovement {
	return models.StockMovement{
		SelectedInsurance: models.SelectedInsurance{InsuranceID: insuranceID, InsuranceTakenBy: takenBy},
		TotalValue:        total,
	}
}

func TestCheckApplicabilityStrictBoundary(t *testing.T) {
	entry := coveredEntry("500000", "400000")

	tests := []struct {
		name       string
		total      string
		applicable bool
	}{
		{"well under both", "100000", true},
		{"just under smaller", "399999.99", true},
		{"equal to smaller coverage", "400000", false},
		{"between coverages", "450000", false},
		{"equal to larger coverage", "500000", false},
		{"over both", "600000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CheckApplicability(entry, []models.StockMovement{
				movement("ins-100", models.TakenByWarehouseOwner, tt.total),
			})
			assert.Equal(t, tt.applicable, res.Applicable)
		})
	}
}

func TestCheckApplicabilitySumsOnlyMatchingMovements(t *testing.T) {
	entry := coveredEntry("500000", "500000")

	movements := []models.StockMovement{
		movement("ins-100", models.TakenByWarehouseOwner, "100000"),
		movement("ins-100", models.TakenByWarehouseOwner, "150000"),
		movement("ins-999", models.TakenByWarehouseOwner, "900000"), // different policy
		movement("ins-100", models.TakenByBank, "900000"),           // different taker
	}

	res := CheckApplicability(entry, movements)
	assert.Equal(t, "250000", res.TotalValue.String())
	assert.True(t, res.Applicable)
}

func TestCheckApplicabilityValueFieldFallback(t *testing.T) {
	entry := coveredEntry("500000", "500000")

	m := models.StockMovement{
		SelectedInsurance: models.SelectedInsurance{InsuranceID: "ins-100", InsuranceTakenBy: models.TakenByWarehouseOwner},
		Value:             "75000",
	}
	res := CheckApplicability(entry, []models.StockMovement{m})
	assert.Equal(t, "75000", res.TotalValue.String())

	m = models.StockMovement{
		SelectedInsurance: models.SelectedInsurance{InsuranceID: "ins-100", InsuranceTakenBy: models.TakenByWarehouseOwner},
		TotalValue:        "not a number",
		Amount:            "60000",
	}
	res = CheckApplicability(entry, []models.StockMovement{m})
	assert.Equal(t, "60000", res.TotalValue.String())
}

func TestCheckApplicabilityUnparsableCoverageIsZero(t *testing.T) {
	// Coverage amounts that do not parse count as zero, so nothing fits under
	// them and the entry is never applicable.
	entry := coveredEntry("", "400000")
	res := CheckApplicability(entry, nil)
	assert.False(t, res.Applicable)
}

func TestCheckApplicabilityNoMovements(t *testing.T) {
	entry := coveredEntry("500000", "400000")
	res := CheckApplicability(entry, nil)
	assert.True(t, res.TotalValue.IsZero())
	assert.True(t, res.Applicable)
}

func TestFindEntry(t *testing.T) {
	rec := &models.InspectionRecord{Data: models.WarehouseInspectionData{
		InsuranceEntries: []models.InsuranceEntry{{ID: "e1"}, {ID: "e2"}},
	}}

	e, ok := FindEntry(rec, "e2")
	assert.True(t, ok)
	assert.Equal(t, "e2", e.ID)

	_, ok = FindEntry(rec, "missing")
	assert.False(t, ok)
}
