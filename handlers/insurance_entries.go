package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"p9e.in/agrogreen/config"
	"p9e.in/agrogreen/models"
)

// Insurance entries live only inside their owning record's payload: every
// mutation here rewrites the record. Entries are created by explicit user
// action, never auto-materialized from form fields.

// AddInsuranceEntry appends an entry to an inspection and saves the record.
func AddInsuranceEntry(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var entry models.InsuranceEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	rec, err := NewWorkflowEngine().Locate(code, "")
	if err != nil {
		transitionError(w, err)
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry = entry.NormalizeForPersistence()
	rec.Data.InsuranceEntries = append(rec.Data.InsuranceEntries, entry)
	rec.LastUpdated = models.JSONTime(time.Now())

	if err := config.DB.Save(rec).Error; err != nil {
		http.Error(w, "failed to save insurance entry: "+err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

// UpdateInsuranceEntry replaces an entry in place, keyed by its stable id.
func UpdateInsuranceEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code, entryID := vars["code"], vars["entryId"]

	var entry models.InsuranceEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	rec, err := NewWorkflowEngine().Locate(code, "")
	if err != nil {
		transitionError(w, err)
		return
	}

	found := false
	for i := range rec.Data.InsuranceEntries {
		if rec.Data.InsuranceEntries[i].ID == entryID {
			entry.ID = entryID
			rec.Data.InsuranceEntries[i] = entry.NormalizeForPersistence()
			found = true
			break
		}
	}
	if !found {
		http.Error(w, "insurance entry not found", http.StatusNotFound)
		return
	}
	rec.LastUpdated = models.JSONTime(time.Now())

	if err := config.DB.Save(rec).Error; err != nil {
		http.Error(w, "failed to save insurance entry: "+err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, rec.ToDTO(time.Now()))
}

// RemoveInsuranceEntry drops an entry from the record.
func RemoveInsuranceEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code, entryID := vars["code"], vars["entryId"]

	rec, err := NewWorkflowEngine().Locate(code, "")
	if err != nil {
		transitionError(w, err)
		return
	}

	entries := rec.Data.InsuranceEntries
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		http.Error(w, "insurance entry not found", http.StatusNotFound)
		return
	}
	rec.Data.InsuranceEntries = kept
	rec.LastUpdated = models.JSONTime(time.Now())

	if err := config.DB.Save(rec).Error; err != nil {
		http.Error(w, "failed to save record: "+err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, rec.ToDTO(time.Now()))
}

// CheckInsuranceApplicability reconciles one entry against the inward
// movements that cite it.
func CheckInsuranceApplicability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code, entryID := vars["code"], vars["entryId"]

	rec, err := NewWorkflowEngine().Locate(code, "")
	if err != nil {
		transitionError(w, err)
		return
	}

	entry, ok := FindEntry(rec, entryID)
	if !ok {
		http.Error(w, "insurance entry not found", http.StatusNotFound)
		return
	}

	result, err := NewInsuranceService().CheckEntry(entry)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetInsuranceAlerts lists every entry on a record with its current alert
// level. Recomputed on every call; alert state is never cached.
func GetInsuranceAlerts(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	rec, err := NewWorkflowEngine().Locate(code, "")
	if err != nil {
		transitionError(w, err)
		return
	}

	now := time.Now()
	type entryAlert struct {
		EntryID string            `json:"entryId"`
		Alert   models.AlertLevel `json:"alert"`
	}
	alerts := make([]entryAlert, 0, len(rec.Data.InsuranceEntries))
	for _, e := range rec.Data.InsuranceEntries {
		alerts = append(alerts, entryAlert{EntryID: e.ID, Alert: e.AlertStatus(now)})
	}
	respondJSON(w, http.StatusOK, alerts)
}
