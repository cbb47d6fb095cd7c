package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// InspectionStatus is the lifecycle state of an InspectionRecord.
type InspectionStatus string

const (
	StatusPending     InspectionStatus = "pending"
	StatusSubmitted   InspectionStatus = "submitted"
	StatusActivated   InspectionStatus = "activated"
	StatusRejected    InspectionStatus = "rejected"
	StatusResubmitted InspectionStatus = "resubmitted"
	StatusClosed      InspectionStatus = "closed"
	StatusReactivate  InspectionStatus = "reactivate"
)

// AllStatuses in workflow order, used by the dashboard counters.
var AllStatuses = []InspectionStatus{
	StatusPending, StatusSubmitted, StatusActivated,
	StatusRejected, StatusResubmitted, StatusClosed, StatusReactivate,
}

// EffectiveStatus maps a raw status field to its workflow status. Records
// written before the workflow existed carry no status at all; they are
// pending everywhere, including in query filters.
func EffectiveStatus(raw string) InspectionStatus {
	if raw == "" {
		return StatusPending
	}
	return InspectionStatus(raw)
}

// GateKind names the validation gate a transition must pass.
type GateKind string

const (
	GateNone      GateKind = ""
	GateFullForm  GateKind = "full_form"
	GateInsurance GateKind = "insurance"
	GatePayload   GateKind = "payload" // survey payload must be non-empty
)

// TransitionDef is one row of the workflow transition table.
type TransitionDef struct {
	From            InspectionStatus `json:"from"`
	Action          string           `json:"action"`
	To              InspectionStatus `json:"to"`
	Gate            GateKind         `json:"gate,omitempty"`
	RequiresRemarks bool             `json:"requires_remarks,omitempty"`
}

// StatusTransitions is the full transition table. rejected and reactivate
// expose no outgoing actions in the UI; rejected is terminal here,
// reactivate re-enters through activate.
var StatusTransitions = []TransitionDef{
	{From: StatusPending, Action: "submit", To: StatusSubmitted, Gate: GateFullForm},
	{From: StatusSubmitted, Action: "activate", To: StatusActivated, Gate: GateInsurance},
	{From: StatusSubmitted, Action: "reject", To: StatusRejected},
	{From: StatusSubmitted, Action: "resubmit", To: StatusResubmitted, RequiresRemarks: true},
	{From: StatusActivated, Action: "close", To: StatusClosed, Gate: GateInsurance},
	{From: StatusResubmitted, Action: "edit", To: StatusPending},
	{From: StatusResubmitted, Action: "submit", To: StatusSubmitted, Gate: GatePayload},
	{From: StatusClosed, Action: "reactivate", To: StatusReactivate},
	{From: StatusReactivate, Action: "activate", To: StatusActivated, Gate: GateInsurance},
}

// FindTransition looks up the transition for an action from the given status.
func FindTransition(from InspectionStatus, action string) (TransitionDef, bool) {
	for _, t := range StatusTransitions {
		if t.From == from && t.Action == action {
			return t, true
		}
	}
	return TransitionDef{}, false
}

// AvailableActions lists the actions legal from a status.
func AvailableActions(from InspectionStatus) []string {
	var actions []string
	for _, t := range StatusTransitions {
		if t.From == from {
			actions = append(actions, t.Action)
		}
	}
	return actions
}

// StatusStamp records one entry into a status.
type StatusStamp struct {
	Status    InspectionStatus `json:"status"`
	EnteredAt time.Time        `json:"enteredAt"`
}

// StatusHistory is the ordered, append-only list of status entries. It
// replaces the source data's dynamically named `${status}At` sibling fields.
type StatusHistory []StatusStamp

// Append records entry into a status at the given instant.
func (h StatusHistory) Append(status InspectionStatus, at time.Time) StatusHistory {
	return append(h, StatusStamp{Status: status, EnteredAt: at})
}

// EnteredAt returns the most recent instant the record entered a status.
func (h StatusHistory) EnteredAt(status InspectionStatus) (time.Time, bool) {
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].Status == status {
			return h[i].EnteredAt, true
		}
	}
	return time.Time{}, false
}

// FlatStamps projects the history back to the legacy flat-field shape
// (`submittedAt`, `activatedAt`, …) for exports and API compatibility.
func (h StatusHistory) FlatStamps() map[string]string {
	out := make(map[string]string, len(h))
	for _, s := range h {
		out[string(s.Status)+"At"] = s.EnteredAt.UTC().Format(time.RFC3339)
	}
	return out
}

// Scan implements sql.Scanner for the jsonb column.
func (h *StatusHistory) Scan(value interface{}) error {
	if value == nil {
		*h = StatusHistory{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		*h = StatusHistory{}
		return nil
	}
	return json.Unmarshal(bytes, h)
}

// Value implements the driver.Valuer interface.
func (h StatusHistory) Value() (driver.Value, error) {
	if h == nil {
		return json.Marshal([]StatusStamp{})
	}
	return json.Marshal(h)
}

// GormDataType defines the data type for GORM
func (StatusHistory) GormDataType() string {
	return "jsonb"
}
