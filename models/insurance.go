package models

import (
	"encoding/json"
	"math"
	"time"
)

// Who arranged the insurance for the stored goods. Which associated-party
// fields apply depends on this value; validation enforces it, not the type.
const (
	TakenByWarehouseOwner = "warehouse owner"
	TakenByClient         = "client"
	TakenByBank           = "bank"
	TakenByAgrogreen      = "agrogreen"
)

// Source collections an entry may be copied from.
const (
	SourceClients   = "clients"
	SourceAgrogreen = "agrogreen"
)

// FlexDate is a date field as persisted inside the survey payload: either ""
// (absent) or an RFC3339 instant. Decoding is total: whatever shape the form
// sends (ISO string, locale string, epoch millis, null) lands as "" or ISO,
// never as a decode error.
type FlexDate string

func (d *FlexDate) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		*d = ""
		return nil
	}
	t, ok := ParseFlexibleDate(v)
	*d = FlexDate(FormatISO(t, ok))
	return nil
}

func (d FlexDate) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

// Time parses the stored value. ok is false when the field is absent.
func (d FlexDate) Time() (time.Time, bool) {
	return ParseFlexibleDate(string(d))
}

// PolicyDetails is one coverage sub-record (fire or burglary).
type PolicyDetails struct {
	CompanyName  string   `json:"companyName"`
	PolicyNumber string   `json:"policyNumber"`
	Amount       string   `json:"amount"`
	StartDate    FlexDate `json:"startDate"`
	EndDate      FlexDate `json:"endDate"`
}

// Empty reports whether no field of the sub-record is filled.
func (p PolicyDetails) Empty() bool {
	return p.CompanyName == "" && p.PolicyNumber == "" && p.Amount == "" &&
		p.StartDate == "" && p.EndDate == ""
}

// InsuranceEntry is one fire+burglary policy pairing attached to an
// InspectionRecord. It exists only inside its owning record's payload and is
// written on every record save.
type InsuranceEntry struct {
	ID               string `json:"id"` // client-generated, stable for the entry's life
	InsuranceID      string `json:"insuranceId,omitempty"`
	InsuranceTakenBy string `json:"insuranceTakenBy"`

	// Applicable when InsuranceTakenBy == client
	ClientName    string `json:"clientName,omitempty"`
	ClientAddress string `json:"clientAddress,omitempty"`

	// Applicable when InsuranceTakenBy == bank
	SelectedBankName string `json:"selectedBankName,omitempty"`

	FirePolicy     PolicyDetails `json:"firePolicy"`
	BurglaryPolicy PolicyDetails `json:"burglaryPolicy"`

	// Provenance: which master record this entry was copied from, so later
	// edits to the master can be traced back.
	SourceDocumentID string `json:"sourceDocumentId,omitempty"`
	SourceCollection string `json:"sourceCollection,omitempty"`
}

// AlertLevel is the derived expiry state of an entry. Derived, never stored:
// "now" moves, so it is recomputed on every read.
type AlertLevel string

const (
	AlertNone     AlertLevel = "none"
	AlertExpiring AlertLevel = "expiring"
	AlertExpired  AlertLevel = "expired"
)

// expiryWindowDays is the canonical alert threshold. The source carried a
// second 5-day red/orange variant for row badges; the 10-day rule is applied
// uniformly instead.
const expiryWindowDays = 10

// AlertStatus evaluates the entry's expiry alert at the given instant.
// The soonest valid policy end date drives the result; entries with no
// parsable end date never alert.
func (e *InsuranceEntry) AlertStatus(now time.Time) AlertLevel {
	var soonest time.Time
	for _, d := range []FlexDate{e.FirePolicy.EndDate, e.BurglaryPolicy.EndDate} {
		t, ok := d.Time()
		if !ok {
			continue
		}
		if soonest.IsZero() || t.Before(soonest) {
			soonest = t
		}
	}
	if soonest.IsZero() {
		return AlertNone
	}

	diffDays := int(math.Ceil(soonest.Sub(now).Hours() / 24))
	switch {
	case diffDays < 0:
		return AlertExpired
	case diffDays <= expiryWindowDays:
		return AlertExpiring
	default:
		return AlertNone
	}
}

// NormalizeForPersistence returns a copy safe to write: every date field is
// "" or an RFC3339 string, every other field a plain string with the form's
// "undefined"/"NaN" artifacts scrubbed. Runs before every write.
func (e InsuranceEntry) NormalizeForPersistence() InsuranceEntry {
	e.ID = scrubField(e.ID)
	e.InsuranceID = scrubField(e.InsuranceID)
	e.InsuranceTakenBy = scrubField(e.InsuranceTakenBy)
	e.ClientName = scrubField(e.ClientName)
	e.ClientAddress = scrubField(e.ClientAddress)
	e.SelectedBankName = scrubField(e.SelectedBankName)
	e.SourceDocumentID = scrubField(e.SourceDocumentID)
	e.SourceCollection = scrubField(e.SourceCollection)
	e.FirePolicy = e.FirePolicy.normalize()
	e.BurglaryPolicy = e.BurglaryPolicy.normalize()
	return e
}

func (p PolicyDetails) normalize() PolicyDetails {
	p.CompanyName = scrubField(p.CompanyName)
	p.PolicyNumber = scrubField(p.PolicyNumber)
	p.Amount = scrubField(p.Amount)
	p.StartDate = normalizeDate(p.StartDate)
	p.EndDate = normalizeDate(p.EndDate)
	return p
}

func normalizeDate(d FlexDate) FlexDate {
	t, ok := d.Time()
	return FlexDate(FormatISO(t, ok))
}

func scrubField(s string) string {
	switch s {
	case "undefined", "NaN", "null":
		return ""
	}
	return s
}
