package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"p9e.in/agrogreen/models"
)

// completeRecord returns a record that passes the full-form gate as-is.
func completeRecord() *models.InspectionRecord {
	return &models.InspectionRecord{
		InspectionCode: "INSP-TEST01",
		WarehouseCode:  "WH-01",
		Data: models.WarehouseInspectionData{
			TypeOfWarehouse:           "godown",
			AddressOfWarehouse:        "Survey 12, Industrial Area",
			PinCode:                   "560001",
			NearestPoliceStation:      "Peenya PS",
			DistanceFromPoliceStation: "2 km",
			NearestFireStation:        "Peenya FS",
			DistanceFromFireStation:   "3 km",
			ApproachRoad:              "tar road",
			TypeOfConstruction:        "RCC",
			AgeOfWarehouse:            "5 years",
			TotalPlinthArea:           "12000 sqft",
			StorageCapacity:           "5000 MT",
			NumberOfChambers:          "2",
			License:                   "no",
			OwnershipStatus:           "owned",
			NameOfOwner:               "R. Kumar",
			AddressOfOwner:            "MG Road, Bengaluru",
			ContactNumber:             "9876543210",
			LeasePeriod:               "NA",
			ConditionOfWarehouse:      "good",
			FloorCondition:            "good",
			RoofCondition:             "good",
			WallCondition:             "good",
			ShutterDoorsCondition:     "good",
			Ventilators:               "adequate",
			PlinthHeight:              "2 ft",
			DrainageSystem:            "good",
			SurroundingArea:           "clean",
			SecurityArrangement:       "24x7",
			NumberOfSecurityGuards:    "2",
			CompoundWall:              "yes",
			GateLockArrangement:       "double lock",
			FireFightingEquipment:     "yes",
			NumberOfFireExtinguishers: "4",
			ElectricityConnection:     "yes",
			ElectricalWiringCondition: "concealed",
			CommodityToBeStored:       "paddy",
			StackingPlan:              "standard",
			DunnageAvailable:          "yes",
			DunnageType:               "wooden",
			FumigationRequired:        "yes",
			WeighbridgeAvailability:   "yes",
			DistanceFromWeighbridge:   "0.5 km",
			MoistureMeterAvailable:    "yes",
			Cleanliness:               "good",
			PestControlArrangement:    "monthly",
			RodentControl:             "yes",
			LeakageSeepage:            "none",
			OeName:                    "S. Patil",
			OeDesignation:             "Operations Executive",
			DateOfInspection:          "2025-04-01T00:00:00Z",
			OeRemarks:                 "fit for storage",
			WarehouseFitCertification: true,
		},
	}
}

func TestValidateSubmissionCompleteForm(t *testing.T) {
	assert.Nil(t, ValidateSubmission(completeRecord()))
}

func TestValidateSubmissionReportsFirstMissingInFormOrder(t *testing.T) {
	rec := completeRecord()
	rec.Data.PinCode = ""
	rec.Data.OeRemarks = ""

	verr := ValidateSubmission(rec)
	require.NotNil(t, verr)
	assert.Equal(t, "pinCode", verr.FirstMissing())
	assert.Equal(t, []string{"pinCode", "oeRemarks"}, verr.MissingFields)
}

func TestValidateSubmissionConditionalFields(t *testing.T) {
	t.Run("customWarehouseType only for others", func(t *testing.T) {
		rec := completeRecord()
		rec.Data.TypeOfWarehouse = "Others"
		verr := ValidateSubmission(rec)
		require.NotNil(t, verr)
		assert.Equal(t, "customWarehouseType", verr.FirstMissing())

		rec.Data.CustomWarehouseType = "silo complex"
		assert.Nil(t, ValidateSubmission(rec))
	})

	t.Run("cold storage fields only for cold storage", func(t *testing.T) {
		rec := completeRecord()
		rec.Data.TypeOfWarehouse = "Cold Storage"
		verr := ValidateSubmission(rec)
		require.NotNil(t, verr)
		assert.Contains(t, verr.MissingFields, "coldStorageCapacity")
		assert.Contains(t, verr.MissingFields, "refrigerationUnits")
		assert.Contains(t, verr.MissingFields, "temperatureRange")
		assert.Contains(t, verr.MissingFields, "standbyGenerator")

		rec.Data.ColdStorageCapacity = "2000 MT"
		rec.Data.RefrigerationUnits = "4"
		rec.Data.TemperatureRange = "2-8 C"
		rec.Data.StandbyGenerator = "yes"
		assert.Nil(t, ValidateSubmission(rec))
	})

	t.Run("licenseNumber only when licensed", func(t *testing.T) {
		rec := completeRecord()
		rec.Data.License = "yes"
		verr := ValidateSubmission(rec)
		require.NotNil(t, verr)
		assert.Equal(t, "licenseNumber", verr.FirstMissing())

		rec.Data.LicenseNumber = "WH/2024/0042"
		assert.Nil(t, ValidateSubmission(rec))
	})
}

func TestValidateSubmissionContactNumber(t *testing.T) {
	tests := []struct {
		number string
		valid  bool
	}{
		{"9876543210", true},
		{" 9876543210 ", true},
		{"98765", false},
		{"98765432101", false},
		{"98765abc10", false},
		{"", false},
	}

	for _, tt := range tests {
		rec := completeRecord()
		rec.Data.ContactNumber = tt.number
		verr := ValidateSubmission(rec)
		if tt.valid {
			assert.Nil(t, verr, "number %q", tt.number)
		} else {
			require.NotNil(t, verr, "number %q", tt.number)
			assert.Equal(t, "contactNumber", verr.FirstMissing())
		}
	}
}

func TestValidateSubmissionCMRequiresBankDetails(t *testing.T) {
	rec := completeRecord()
	rec.Data.TypeOfWarehouse = "CM"

	verr := ValidateSubmission(rec)
	require.NotNil(t, verr)
	assert.Equal(t, []string{"bankState", "bankBranch", "bankName", "ifscCode"}, verr.MissingFields)

	rec.BankState = "Karnataka"
	rec.BankBranch = "Bengaluru"
	rec.BankName = "Canara Bank"
	rec.IfscCode = "CNRB0000406"
	assert.Nil(t, ValidateSubmission(rec))
}

func TestValidateSubmissionFitCertificationMandatory(t *testing.T) {
	rec := completeRecord()
	rec.Data.WarehouseFitCertification = false

	verr := ValidateSubmission(rec)
	require.NotNil(t, verr)
	assert.Equal(t, "warehouseFitCertification", verr.FirstMissing())
}

func TestValidateSubmissionWhitespaceIsMissing(t *testing.T) {
	rec := completeRecord()
	rec.Data.OeName = "   "

	verr := ValidateSubmission(rec)
	require.NotNil(t, verr)
	assert.Equal(t, "oeName", verr.FirstMissing())
}

// --- insurance gate ---

func completePolicy() models.PolicyDetails {
	return models.PolicyDetails{
		CompanyName:  "National Insurance",
		PolicyNumber: "NI/2025/991",
		Amount:       "5000000",
		StartDate:    "2025-01-01T00:00:00Z",
		EndDate:      "2025-12-31T00:00:00Z",
	}
}

func TestValidateInsuranceNoEntries(t *testing.T) {
	rec := completeRecord()
	verr := ValidateInsurance(rec)
	require.NotNil(t, verr)
	assert.Equal(t, []string{"Insurance Taken By"}, verr.MissingFields)
}

func TestValidateInsuranceBankBranchSkipsPolicies(t *testing.T) {
	rec := completeRecord()
	rec.Data.InsuranceEntries = []models.InsuranceEntry{{
		ID:               "e1",
		InsuranceTakenBy: models.TakenByBank,
		SelectedBankName: "Canara Bank",
	}}
	assert.Nil(t, ValidateInsurance(rec))

	rec.Data.InsuranceEntries[0].SelectedBankName = ""
	verr := ValidateInsurance(rec)
	require.NotNil(t, verr)
	assert.Equal(t, []string{"Bank Name"}, verr.MissingFields)
}

func TestValidateInsuranceClientBranch(t *testing.T) {
	rec := completeRecord()
	rec.Data.InsuranceEntries = []models.InsuranceEntry{{
		ID:               "e1",
		InsuranceTakenBy: models.TakenByClient,
		FirePolicy:       completePolicy(),
		BurglaryPolicy:   completePolicy(),
	}}

	verr := ValidateInsurance(rec)
	require.NotNil(t, verr)
	assert.Equal(t, []string{"Client Name", "Client Address"}, verr.MissingFields)

	rec.Data.InsuranceEntries[0].ClientName = "Green Agro Traders"
	rec.Data.InsuranceEntries[0].ClientAddress = "APMC Yard, Hubballi"
	assert.Nil(t, ValidateInsurance(rec))
}

func TestValidateInsuranceOwnerNeedsBothPolicies(t *testing.T) {
	rec := completeRecord()
	rec.Data.InsuranceEntries = []models.InsuranceEntry{{
		ID:               "e1",
		InsuranceTakenBy: models.TakenByWarehouseOwner,
		FirePolicy:       completePolicy(),
	}}

	verr := ValidateInsurance(rec)
	require.NotNil(t, verr)
	assert.Equal(t, []string{
		"Burglary Policy Company Name",
		"Burglary Policy Policy Number",
		"Burglary Policy Amount",
		"Burglary Policy Start Date",
		"Burglary Policy End Date",
	}, verr.MissingFields)
}

func TestValidateInsuranceMultipleEntriesArePrefixed(t *testing.T) {
	rec := completeRecord()
	rec.Data.InsuranceEntries = []models.InsuranceEntry{
		{ID: "e1", InsuranceTakenBy: models.TakenByBank, SelectedBankName: "SBI"},
		{ID: "e2", InsuranceTakenBy: models.TakenByBank},
	}

	verr := ValidateInsurance(rec)
	require.NotNil(t, verr)
	assert.Equal(t, []string{"Insurance 2: Bank Name"}, verr.MissingFields)
}

func TestValidateInsuranceEntryWithoutTakenBy(t *testing.T) {
	rec := completeRecord()
	rec.Data.InsuranceEntries = []models.InsuranceEntry{{ID: "e1"}}

	verr := ValidateInsurance(rec)
	require.NotNil(t, verr)
	assert.Equal(t, []string{"Insurance Taken By"}, verr.MissingFields)
}
