package handlers

import (
	"fmt"
	"regexp"
	"strings"

	"p9e.in/agrogreen/models"
)

// submissionRequiredFields is the fixed enumeration the full-form gate walks,
// in form order. Conditional fields sit right after their trigger field and
// are skipped unless the trigger applies. The first offending field in this
// order is the one the UI highlights.
var submissionRequiredFields = []string{
	// warehouse section
	"typeOfWarehouse",
	"customWarehouseType", // iff typeOfWarehouse == others
	"coldStorageCapacity", // iff typeOfWarehouse == cold storage
	"refrigerationUnits",
	"temperatureRange",
	"standbyGenerator",
	"addressOfWarehouse",
	"pinCode",
	"nearestPoliceStation",
	"distanceFromPoliceStation",
	"nearestFireStation",
	"distanceFromFireStation",
	"approachRoad",
	"typeOfConstruction",
	"ageOfWarehouse",
	"totalPlinthArea",
	"storageCapacity",
	"numberOfChambers",
	"license",
	"licenseNumber", // iff license == yes
	// ownership section
	"ownershipStatus",
	"nameOfOwner",
	"addressOfOwner",
	"contactNumber",
	"leasePeriod",
	// physical condition section
	"conditionOfWarehouse",
	"floorCondition",
	"roofCondition",
	"wallCondition",
	"shutterDoorsCondition",
	"ventilators",
	"plinthHeight",
	"drainageSystem",
	"surroundingArea",
	// security section
	"securityArrangement",
	"numberOfSecurityGuards",
	"compoundWall",
	"gateLockArrangement",
	"fireFightingEquipment",
	"numberOfFireExtinguishers",
	"electricityConnection",
	"electricalWiringCondition",
	// stocking section
	"commodityToBeStored",
	"stackingPlan",
	"dunnageAvailable",
	"dunnageType",
	"fumigationRequired",
	"weighbridgeAvailability",
	"distanceFromWeighbridge",
	"moistureMeterAvailable",
	// upkeep section
	"cleanliness",
	"pestControlArrangement",
	"rodentControl",
	"leakageSeepage",
	// OE section
	"oeName",
	"oeDesignation",
	"dateOfInspection",
	"oeRemarks",
	// bank details, record-level, iff warehouse type normalizes to CM
	"bankState",
	"bankBranch",
	"bankName",
	"ifscCode",
	"warehouseFitCertification",
}

var contactNumberRe = regexp.MustCompile(`^\d{10}$`)

// ValidateSubmission is the full-form gate for pending → submitted. Insurance
// fields are deliberately not checked here; they gate activation instead.
// Returns nil when the form is complete.
func ValidateSubmission(rec *models.InspectionRecord) *models.ValidationError {
	fields := rec.Data.Fields()
	warehouseType := strings.ToLower(strings.TrimSpace(rec.Data.TypeOfWarehouse))

	var missing []string
	for _, name := range submissionRequiredFields {
		switch name {
		case "customWarehouseType":
			if warehouseType != "others" {
				continue
			}
		case "coldStorageCapacity", "refrigerationUnits", "temperatureRange", "standbyGenerator":
			if warehouseType != "cold storage" {
				continue
			}
		case "licenseNumber":
			if strings.ToLower(strings.TrimSpace(rec.Data.License)) != "yes" {
				continue
			}
		case "bankState", "bankBranch", "bankName", "ifscCode":
			if !rec.IsCMWarehouse() {
				continue
			}
			if recordBankField(rec, name) == "" {
				missing = append(missing, name)
			}
			continue
		case "contactNumber":
			if !contactNumberRe.MatchString(strings.TrimSpace(rec.Data.ContactNumber)) {
				missing = append(missing, name)
			}
			continue
		case "warehouseFitCertification":
			if !rec.Data.WarehouseFitCertification {
				missing = append(missing, name)
			}
			continue
		}

		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return &models.ValidationError{MissingFields: missing}
	}
	return nil
}

func recordBankField(rec *models.InspectionRecord, name string) string {
	switch name {
	case "bankState":
		return strings.TrimSpace(rec.BankState)
	case "bankBranch":
		return strings.TrimSpace(rec.BankBranch)
	case "bankName":
		return strings.TrimSpace(rec.BankName)
	case "ifscCode":
		return strings.TrimSpace(rec.IfscCode)
	}
	return ""
}

// policyFieldLabels in gate order for one coverage sub-record.
var policyFieldLabels = []struct {
	label string
	get   func(models.PolicyDetails) string
}{
	{"Company Name", func(p models.PolicyDetails) string { return p.CompanyName }},
	{"Policy Number", func(p models.PolicyDetails) string { return p.PolicyNumber }},
	{"Amount", func(p models.PolicyDetails) string { return p.Amount }},
	{"Start Date", func(p models.PolicyDetails) string { return string(p.StartDate) }},
	{"End Date", func(p models.PolicyDetails) string { return string(p.EndDate) }},
}

// ValidateInsurance is the insurance gate for activation and closing. Every
// entry on the record must be complete for its insuranceTakenBy branch; the
// full list of missing field labels is reported.
func ValidateInsurance(rec *models.InspectionRecord) *models.ValidationError {
	entries := rec.Data.InsuranceEntries
	if len(entries) == 0 {
		return &models.ValidationError{MissingFields: []string{"Insurance Taken By"}}
	}

	var missing []string
	for i, e := range entries {
		prefix := ""
		if len(entries) > 1 {
			prefix = fmt.Sprintf("Insurance %d: ", i+1)
		}
		missing = append(missing, validateEntry(e, prefix)...)
	}

	if len(missing) > 0 {
		return &models.ValidationError{MissingFields: missing}
	}
	return nil
}

func validateEntry(e models.InsuranceEntry, prefix string) []string {
	var missing []string
	takenBy := strings.ToLower(strings.TrimSpace(e.InsuranceTakenBy))

	if takenBy == "" {
		return []string{prefix + "Insurance Taken By"}
	}

	if takenBy == models.TakenByBank {
		if strings.TrimSpace(e.SelectedBankName) == "" {
			missing = append(missing, prefix+"Bank Name")
		}
		return missing
	}

	if takenBy == models.TakenByClient {
		if strings.TrimSpace(e.ClientName) == "" {
			missing = append(missing, prefix+"Client Name")
		}
		if strings.TrimSpace(e.ClientAddress) == "" {
			missing = append(missing, prefix+"Client Address")
		}
	}

	for _, f := range policyFieldLabels {
		if strings.TrimSpace(f.get(e.FirePolicy)) == "" {
			missing = append(missing, prefix+"Fire Policy "+f.label)
		}
	}
	for _, f := range policyFieldLabels {
		if strings.TrimSpace(f.get(e.BurglaryPolicy)) == "" {
			missing = append(missing, prefix+"Burglary Policy "+f.label)
		}
	}
	return missing
}
