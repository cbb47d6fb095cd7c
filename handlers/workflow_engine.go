package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"p9e.in/agrogreen/config"
	"p9e.in/agrogreen/models"

	"gorm.io/gorm"
)

// WorkflowEngine drives inspection status transitions: it resolves the target
// record, runs the transition's gate, stamps status history and persists the
// whole payload in one write.
type WorkflowEngine struct {
	db *gorm.DB
}

// NewWorkflowEngine creates a new workflow engine instance
func NewWorkflowEngine() *WorkflowEngine {
	return &WorkflowEngine{
		db: config.DB,
	}
}

// NewWorkflowEngineWithDB builds an engine on an explicit DB handle.
func NewWorkflowEngineWithDB(db *gorm.DB) *WorkflowEngine {
	return &WorkflowEngine{db: db}
}

// TransitionRequest carries one UI action against an inspection.
type TransitionRequest struct {
	// Primary lookup key; when absent the engine falls back to
	// (WarehouseCode, status == submitted).
	InspectionCode string `json:"inspectionCode"`
	WarehouseCode  string `json:"warehouseCode,omitempty"`

	Action string `json:"action"`

	// Checker remarks, required by the resubmit action.
	Remarks string `json:"remarks,omitempty"`

	// The full current survey payload; persisted as part of the same write
	// when present.
	Data *models.WarehouseInspectionData `json:"warehouseInspectionData,omitempty"`

	// Optimistic-lock token. Zero skips the check (legacy clients).
	ExpectedVersion int `json:"expectedVersion,omitempty"`
}

// ApplyTransition runs the state machine over an in-memory record: gate
// check, status change, history stamp, payload normalization. It mutates the
// record only when the transition passes; on gate failure it returns the
// structured validation result and leaves the record untouched.
func ApplyTransition(rec *models.InspectionRecord, action, remarks string, now time.Time) error {
	from := rec.EffectiveStatus()
	t, ok := models.FindTransition(from, action)
	if !ok {
		return fmt.Errorf("invalid transition: action '%s' not allowed from status '%s'", action, from)
	}

	switch t.Gate {
	case models.GateFullForm:
		if verr := ValidateSubmission(rec); verr != nil {
			return verr
		}
	case models.GateInsurance:
		if verr := ValidateInsurance(rec); verr != nil {
			return verr
		}
	case models.GatePayload:
		if rec.Data.IsEmpty() {
			return &models.ValidationError{MissingFields: []string{"warehouseInspectionData"}}
		}
	}

	if t.RequiresRemarks {
		remarks = strings.TrimSpace(remarks)
		if remarks == "" {
			return errors.New("reviewer remarks are required for this action")
		}
		if len(remarks) > 500 {
			return errors.New("reviewer remarks must be 500 characters or fewer")
		}
		rec.CheckerRemarks = remarks
	}

	rec.Status = string(t.To)
	rec.History = rec.History.Append(t.To, now)
	rec.LastUpdated = models.JSONTime(now)
	rec.Data.Normalize()
	return nil
}

// Transition resolves the record, applies the action and persists the result
// atomically. Either the full field set (status, history, payload) commits
// together or none of it does.
func (we *WorkflowEngine) Transition(req TransitionRequest) (*models.InspectionRecord, error) {
	rec, err := we.Locate(req.InspectionCode, req.WarehouseCode)
	if err != nil {
		return nil, err
	}

	if req.ExpectedVersion > 0 && rec.Version != req.ExpectedVersion {
		return nil, models.ErrConflict
	}

	if req.Data != nil {
		rec.Data = *req.Data
	}

	if err := ApplyTransition(rec, req.Action, req.Remarks, time.Now()); err != nil {
		return nil, err
	}
	rec.Version++

	tx := we.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Save(rec).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to persist transition: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transition: %w", err)
	}

	log.Printf("✅ Inspection %s: %s (action: %s)", rec.InspectionCode, rec.Status, req.Action)
	return rec, nil
}

// Locate finds the target record by inspectionCode, or falls back to the
// oldest submitted record for the warehouse when the code is absent. The
// fallback mirrors the original activation flow, which sometimes only knew
// the warehouse.
func (we *WorkflowEngine) Locate(inspectionCode, warehouseCode string) (*models.InspectionRecord, error) {
	var rec models.InspectionRecord

	if inspectionCode != "" {
		err := we.db.Where("inspection_code = ?", inspectionCode).First(&rec).Error
		if err == nil {
			return &rec, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lookup failed: %w", err)
		}
	}

	if warehouseCode != "" {
		err := we.db.
			Where("warehouse_code = ? AND status = ?", warehouseCode, string(models.StatusSubmitted)).
			Order("created_at ASC").
			First(&rec).Error
		if err == nil {
			return &rec, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("fallback lookup failed: %w", err)
		}
	}

	return nil, models.ErrRecordNotFound
}

// UpdateData replaces the survey payload of an editable record (pending or
// resubmitted) without a status change. The payload is normalized before the
// write and lastUpdated is stamped.
func (we *WorkflowEngine) UpdateData(inspectionCode string, data models.WarehouseInspectionData, expectedVersion int) (*models.InspectionRecord, error) {
	rec, err := we.Locate(inspectionCode, "")
	if err != nil {
		return nil, err
	}

	status := rec.EffectiveStatus()
	if status != models.StatusPending && status != models.StatusResubmitted {
		return nil, fmt.Errorf("cannot edit inspection in status '%s'", status)
	}
	if expectedVersion > 0 && rec.Version != expectedVersion {
		return nil, models.ErrConflict
	}

	data.Normalize()
	rec.Data = data
	rec.LastUpdated = models.JSONTime(time.Now())
	rec.Version++

	if err := we.db.Save(rec).Error; err != nil {
		return nil, fmt.Errorf("failed to update inspection: %w", err)
	}
	return rec, nil
}

// CountsByStatus returns per-status record counts for the dashboard, folding
// records with no status into pending.
func (we *WorkflowEngine) CountsByStatus() (map[models.InspectionStatus]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var results []statusCount
	if err := we.db.Model(&models.InspectionRecord{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch status counts: %w", err)
	}

	counts := make(map[models.InspectionStatus]int64, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		counts[s] = 0
	}
	for _, r := range results {
		counts[models.EffectiveStatus(r.Status)] += r.Count
	}
	return counts, nil
}
