package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Chamber is one sub-storage unit of a warehouse. Capacity is derived from
// the measurements and the division factor; it is always recomputed, never
// independently edited.
type Chamber struct {
	Name           string `json:"name"`
	Length         string `json:"length"`
	Breadth        string `json:"breadth"`
	Height         string `json:"height"`
	DivisionFactor string `json:"divisionFactor"`
	Capacity       string `json:"capacity"`
}

// RecomputeCapacity sets Capacity = round2((length*breadth)/divisionFactor).
// Any non-numeric input or a zero division factor yields "".
func (c *Chamber) RecomputeCapacity() {
	length, err1 := decimal.NewFromString(strings.TrimSpace(c.Length))
	breadth, err2 := decimal.NewFromString(strings.TrimSpace(c.Breadth))
	factor, err3 := decimal.NewFromString(strings.TrimSpace(c.DivisionFactor))
	if err1 != nil || err2 != nil || err3 != nil || factor.IsZero() {
		c.Capacity = ""
		return
	}
	c.Capacity = length.Mul(breadth).Div(factor).Round(2).String()
}

// WarehouseInspectionData is the embedded survey payload edited by the
// inspection form. It is versioned implicitly by the record's LastUpdated.
type WarehouseInspectionData struct {
	// Warehouse
	TypeOfWarehouse           string   `json:"typeOfWarehouse"`
	CustomWarehouseType       string   `json:"customWarehouseType,omitempty"`
	AddressOfWarehouse        string   `json:"addressOfWarehouse"`
	PinCode                   string   `json:"pinCode"`
	NearestPoliceStation      string   `json:"nearestPoliceStation"`
	DistanceFromPoliceStation string   `json:"distanceFromPoliceStation"`
	NearestFireStation        string   `json:"nearestFireStation"`
	DistanceFromFireStation   string   `json:"distanceFromFireStation"`
	ApproachRoad              string   `json:"approachRoad"`
	TypeOfConstruction        string   `json:"typeOfConstruction"`
	AgeOfWarehouse            string   `json:"ageOfWarehouse"`
	TotalPlinthArea           string   `json:"totalPlinthArea"`
	StorageCapacity           string   `json:"storageCapacity"`
	NumberOfChambers          string   `json:"numberOfChambers"`
	License                   string   `json:"license"`
	LicenseNumber             string   `json:"licenseNumber,omitempty"`
	ColdStorageCapacity       string   `json:"coldStorageCapacity,omitempty"`
	RefrigerationUnits        string   `json:"refrigerationUnits,omitempty"`
	TemperatureRange          string   `json:"temperatureRange,omitempty"`
	StandbyGenerator          string   `json:"standbyGenerator,omitempty"`

	// Ownership
	OwnershipStatus string `json:"ownershipStatus"`
	NameOfOwner     string `json:"nameOfOwner"`
	AddressOfOwner  string `json:"addressOfOwner"`
	ContactNumber   string `json:"contactNumber"`
	LeasePeriod     string `json:"leasePeriod"`

	// Physical condition
	ConditionOfWarehouse  string `json:"conditionOfWarehouse"`
	FloorCondition        string `json:"floorCondition"`
	RoofCondition         string `json:"roofCondition"`
	WallCondition         string `json:"wallCondition"`
	ShutterDoorsCondition string `json:"shutterDoorsCondition"`
	Ventilators           string `json:"ventilators"`
	PlinthHeight          string `json:"plinthHeight"`
	DrainageSystem        string `json:"drainageSystem"`
	SurroundingArea       string `json:"surroundingArea"`

	// Security
	SecurityArrangement       string `json:"securityArrangement"`
	NumberOfSecurityGuards    string `json:"numberOfSecurityGuards"`
	CompoundWall              string `json:"compoundWall"`
	GateLockArrangement       string `json:"gateLockArrangement"`
	FireFightingEquipment     string `json:"fireFightingEquipment"`
	NumberOfFireExtinguishers string `json:"numberOfFireExtinguishers"`
	ElectricityConnection     string `json:"electricityConnection"`
	ElectricalWiringCondition string `json:"electricalWiringCondition"`

	// Stocking plan
	CommodityToBeStored     string `json:"commodityToBeStored"`
	StackingPlan            string `json:"stackingPlan"`
	DunnageAvailable        string `json:"dunnageAvailable"`
	DunnageType             string `json:"dunnageType"`
	FumigationRequired      string `json:"fumigationRequired"`
	WeighbridgeAvailability string `json:"weighbridgeAvailability"`
	DistanceFromWeighbridge string `json:"distanceFromWeighbridge"`
	MoistureMeterAvailable  string `json:"moistureMeterAvailable"`

	// Upkeep
	Cleanliness            string `json:"cleanliness"`
	PestControlArrangement string `json:"pestControlArrangement"`
	RodentControl          string `json:"rodentControl"`
	LeakageSeepage         string `json:"leakageSeepage"`

	// OE section
	OeName                    string   `json:"oeName"`
	OeDesignation             string   `json:"oeDesignation"`
	DateOfInspection          FlexDate `json:"dateOfInspection"`
	OeRemarks                 string   `json:"oeRemarks"`
	WarehouseFitCertification bool     `json:"warehouseFitCertification"`

	Chambers         []Chamber        `json:"chambers,omitempty"`
	InsuranceEntries []InsuranceEntry `json:"insuranceEntries,omitempty"`
}

// Fields exposes the survey answers by their form field name, for the
// submission gate's ordered enumeration.
func (d *WarehouseInspectionData) Fields() map[string]string {
	return map[string]string{
		"typeOfWarehouse":           d.TypeOfWarehouse,
		"customWarehouseType":       d.CustomWarehouseType,
		"addressOfWarehouse":        d.AddressOfWarehouse,
		"pinCode":                   d.PinCode,
		"nearestPoliceStation":      d.NearestPoliceStation,
		"distanceFromPoliceStation": d.DistanceFromPoliceStation,
		"nearestFireStation":        d.NearestFireStation,
		"distanceFromFireStation":   d.DistanceFromFireStation,
		"approachRoad":              d.ApproachRoad,
		"typeOfConstruction":        d.TypeOfConstruction,
		"ageOfWarehouse":            d.AgeOfWarehouse,
		"totalPlinthArea":           d.TotalPlinthArea,
		"storageCapacity":           d.StorageCapacity,
		"numberOfChambers":          d.NumberOfChambers,
		"license":                   d.License,
		"licenseNumber":             d.LicenseNumber,
		"coldStorageCapacity":       d.ColdStorageCapacity,
		"refrigerationUnits":        d.RefrigerationUnits,
		"temperatureRange":          d.TemperatureRange,
		"standbyGenerator":          d.StandbyGenerator,
		"ownershipStatus":           d.OwnershipStatus,
		"nameOfOwner":               d.NameOfOwner,
		"addressOfOwner":            d.AddressOfOwner,
		"contactNumber":             d.ContactNumber,
		"leasePeriod":               d.LeasePeriod,
		"conditionOfWarehouse":      d.ConditionOfWarehouse,
		"floorCondition":            d.FloorCondition,
		"roofCondition":             d.RoofCondition,
		"wallCondition":             d.WallCondition,
		"shutterDoorsCondition":     d.ShutterDoorsCondition,
		"ventilators":               d.Ventilators,
		"plinthHeight":              d.PlinthHeight,
		"drainageSystem":            d.DrainageSystem,
		"surroundingArea":           d.SurroundingArea,
		"securityArrangement":       d.SecurityArrangement,
		"numberOfSecurityGuards":    d.NumberOfSecurityGuards,
		"compoundWall":              d.CompoundWall,
		"gateLockArrangement":       d.GateLockArrangement,
		"fireFightingEquipment":     d.FireFightingEquipment,
		"numberOfFireExtinguishers": d.NumberOfFireExtinguishers,
		"electricityConnection":     d.ElectricityConnection,
		"electricalWiringCondition": d.ElectricalWiringCondition,
		"commodityToBeStored":       d.CommodityToBeStored,
		"stackingPlan":              d.StackingPlan,
		"dunnageAvailable":          d.DunnageAvailable,
		"dunnageType":               d.DunnageType,
		"fumigationRequired":        d.FumigationRequired,
		"weighbridgeAvailability":   d.WeighbridgeAvailability,
		"distanceFromWeighbridge":   d.DistanceFromWeighbridge,
		"moistureMeterAvailable":    d.MoistureMeterAvailable,
		"cleanliness":               d.Cleanliness,
		"pestControlArrangement":    d.PestControlArrangement,
		"rodentControl":             d.RodentControl,
		"leakageSeepage":            d.LeakageSeepage,
		"oeName":                    d.OeName,
		"oeDesignation":             d.OeDesignation,
		"dateOfInspection":          string(d.DateOfInspection),
		"oeRemarks":                 d.OeRemarks,
	}
}

// IsEmpty reports whether the payload carries no survey answers at all.
func (d *WarehouseInspectionData) IsEmpty() bool {
	for _, v := range d.Fields() {
		if v != "" {
			return false
		}
	}
	return !d.WarehouseFitCertification && len(d.Chambers) == 0 && len(d.InsuranceEntries) == 0
}

// Normalize prepares the payload for persistence: insurance entries pass
// through NormalizeForPersistence and chamber capacities are recomputed.
func (d *WarehouseInspectionData) Normalize() {
	for i := range d.InsuranceEntries {
		d.InsuranceEntries[i] = d.InsuranceEntries[i].NormalizeForPersistence()
	}
	for i := range d.Chambers {
		d.Chambers[i].RecomputeCapacity()
	}
	d.DateOfInspection = normalizeDate(d.DateOfInspection)
}

// Scan implements sql.Scanner for the jsonb payload column.
func (d *WarehouseInspectionData) Scan(value interface{}) error {
	if value == nil {
		*d = WarehouseInspectionData{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		*d = WarehouseInspectionData{}
		return nil
	}
	return json.Unmarshal(bytes, d)
}

// Value implements the driver.Valuer interface.
func (d WarehouseInspectionData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// GormDataType defines the data type for GORM
func (WarehouseInspectionData) GormDataType() string {
	return "jsonb"
}

// InspectionRecord is the aggregate entity for one warehouse/bank survey and
// its lifecycle status. One record exists per (warehouse, bank) pairing;
// several records may share a WarehouseCode when multiple banks finance the
// same physical warehouse.
type InspectionRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InspectionCode string    `gorm:"size:50;uniqueIndex;not null" json:"inspectionCode"`
	WarehouseCode  string    `gorm:"size:50;index;not null" json:"warehouseCode"`

	// Empty status means pending (records predating the workflow).
	Status string `gorm:"size:20;index" json:"status,omitempty"`

	State         string `gorm:"size:100" json:"state"`
	Branch        string `gorm:"size:100" json:"branch"`
	Location      string `gorm:"size:255" json:"location"`
	BusinessType  string `gorm:"size:100" json:"businessType"`
	ReceiptType   string `gorm:"size:100" json:"receiptType"`
	WarehouseName string `gorm:"size:255" json:"warehouseName"`

	// Financing bank tuple
	BankState  string `gorm:"size:100" json:"bankState"`
	BankBranch string `gorm:"size:100" json:"bankBranch"`
	BankName   string `gorm:"size:255" json:"bankName"`
	IfscCode   string `gorm:"size:20" json:"ifscCode"`

	CheckerRemarks string `gorm:"size:500" json:"checkerRemarks,omitempty"`

	Data    WarehouseInspectionData `gorm:"type:jsonb" json:"warehouseInspectionData"`
	History StatusHistory           `gorm:"type:jsonb" json:"statusHistory"`

	WarehousePhotos   datatypes.JSON `gorm:"type:jsonb" json:"warehousePhotos,omitempty"`
	UploadedDocuments pq.StringArray `gorm:"type:text[]" json:"uploadedDocuments,omitempty"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	CreatedBy   string   `gorm:"size:255" json:"createdBy,omitempty"`
	Version     int      `gorm:"default:1" json:"version"`
	LastUpdated JSONTime `json:"lastUpdated"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for InspectionRecord
func (InspectionRecord) TableName() string {
	return "inspections"
}

// EffectiveStatus is the status used for filtering and display.
func (r *InspectionRecord) EffectiveStatus() InspectionStatus {
	return EffectiveStatus(r.Status)
}

// IsCMWarehouse reports whether the declared warehouse type normalizes to the
// collateral-manager classification, which mandates bank details at the
// submission gate.
func (r *InspectionRecord) IsCMWarehouse() bool {
	t := strings.ToLower(strings.TrimSpace(r.Data.TypeOfWarehouse))
	switch t {
	case "cm", "collateral manager", "collateral management":
		return true
	}
	return false
}

// InsuranceAlert is the worst alert level across the record's entries.
func (r *InspectionRecord) InsuranceAlert(now time.Time) AlertLevel {
	worst := AlertNone
	for i := range r.Data.InsuranceEntries {
		switch r.Data.InsuranceEntries[i].AlertStatus(now) {
		case AlertExpired:
			return AlertExpired
		case AlertExpiring:
			worst = AlertExpiring
		}
	}
	return worst
}

// InspectionRecordDTO is the API response shape: record fields plus the
// projected flat status stamps and the actions legal from the current status.
type InspectionRecordDTO struct {
	InspectionRecord
	StatusStamps     map[string]string `json:"statusStamps,omitempty"`
	AvailableActions []string          `json:"availableActions,omitempty"`
	InsuranceAlert   AlertLevel        `json:"insuranceAlert"`
}

// ToDTO converts the record for API responses, evaluated at the given instant.
func (r *InspectionRecord) ToDTO(now time.Time) InspectionRecordDTO {
	return InspectionRecordDTO{
		InspectionRecord: *r,
		StatusStamps:     r.History.FlatStamps(),
		AvailableActions: AvailableActions(r.EffectiveStatus()),
		InsuranceAlert:   r.InsuranceAlert(now),
	}
}
