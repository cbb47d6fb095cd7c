package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"p9e.in/agrogreen/config"
	"p9e.in/agrogreen/middleware"
	"p9e.in/agrogreen/models"
	"p9e.in/agrogreen/utils"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// transitionError maps engine errors onto the response taxonomy: gate
// failures come back as structured results the UI can highlight, everything
// else as typed failures for toast presentation.
func transitionError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":         "validation_failed",
			"firstMissing":  verr.FirstMissing(),
			"missingCount":  len(verr.MissingFields),
			"missingFields": verr.MissingFields,
		})
	case errors.Is(err, models.ErrRecordNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

// fetchScopedList loads all inspections and applies the status scope and
// filter from the request. Shared by the list and export handlers.
func fetchScopedList(w http.ResponseWriter, r *http.Request) (models.InspectionStatus, []models.InspectionRecord, bool) {
	vars := mux.Vars(r)
	status := models.EffectiveStatus(vars["status"])

	var records []models.InspectionRecord
	if err := config.DB.Find(&records).Error; err != nil {
		http.Error(w, "failed to fetch inspections: "+err.Error(), http.StatusInternalServerError)
		return "", nil, false
	}

	filtered := FilterInspections(records, status, ParseInspectionFilter(r))
	return status, filtered, true
}

// ListInspections returns the records whose effective status matches the
// {status} path segment, filtered and sorted.
func ListInspections(w http.ResponseWriter, r *http.Request) {
	_, records, ok := fetchScopedList(w, r)
	if !ok {
		return
	}

	now := time.Now()
	dtos := make([]models.InspectionRecordDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, records[i].ToDTO(now))
	}
	respondJSON(w, http.StatusOK, dtos)
}

// GetInspection returns one record by inspection code.
func GetInspection(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	rec, err := NewWorkflowEngine().Locate(code, "")
	if err != nil {
		transitionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec.ToDTO(time.Now()))
}

// CreateInspection creates a new record for a (warehouse, bank) pairing.
// Status starts at pending regardless of what the client sends.
func CreateInspection(w http.ResponseWriter, r *http.Request) {
	var rec models.InspectionRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if rec.Latitude != 0 || rec.Longitude != 0 {
		if err := utils.ValidateCoordinate(rec.Latitude, rec.Longitude); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	now := time.Now()
	if rec.InspectionCode == "" {
		rec.InspectionCode = "INSP-" + strings.ToUpper(uuid.NewString()[:8])
	}
	rec.Status = string(models.StatusPending)
	rec.History = models.StatusHistory{}.Append(models.StatusPending, now)
	rec.LastUpdated = models.JSONTime(now)
	rec.Version = 1
	rec.Data.Normalize()

	if claims := middleware.GetClaims(r); claims != nil {
		rec.CreatedBy = claims.UserID
	}

	if err := config.DB.Create(&rec).Error; err != nil {
		http.Error(w, "failed to create inspection: "+err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, rec.ToDTO(now))
}

// UpdateInspectionData replaces the survey payload of an editable record.
func UpdateInspectionData(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var body struct {
		Data            models.WarehouseInspectionData `json:"warehouseInspectionData"`
		ExpectedVersion int                            `json:"expectedVersion,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	rec, err := NewWorkflowEngine().UpdateData(code, body.Data, body.ExpectedVersion)
	if err != nil {
		transitionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec.ToDTO(time.Now()))
}

// TransitionInspection performs one workflow action. On success the refresh
// bus tells sibling status views to reload, and the transition notification
// goes out; the response carries only confirmed, persisted state.
func TransitionInspection(w http.ResponseWriter, r *http.Request) {
	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Action == "" {
		req.Action = mux.Vars(r)["action"]
	}

	rec, err := NewWorkflowEngine().Transition(req)
	if err != nil {
		transitionError(w, err)
		return
	}

	source := r.Header.Get("X-View-Source")
	Bus.Publish(RefreshSignal{Source: source, Action: req.Action})

	if claims := middleware.GetClaims(r); claims != nil {
		NewNotificationService().NotifyTransition(rec, req.Action, claims.Name)
	}

	respondJSON(w, http.StatusOK, rec.ToDTO(time.Now()))
}

// DeleteInspection is deliberately a no-op: inspection records are never
// deleted through this service. Returns the unchanged record.
func DeleteInspection(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	rec, err := NewWorkflowEngine().Locate(code, "")
	if err != nil {
		transitionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec.ToDTO(time.Now()))
}

// GetStatusCounts feeds the dashboard counters.
func GetStatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := NewWorkflowEngine().CountsByStatus()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, counts)
}

// GetNearbyInspections lists records within radiusKm of a point.
func GetNearbyInspections(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, err1 := strconv.ParseFloat(q.Get("lat"), 64)
	lng, err2 := strconv.ParseFloat(q.Get("lng"), 64)
	if err1 != nil || err2 != nil {
		http.Error(w, "lat and lng are required", http.StatusBadRequest)
		return
	}
	radiusKm, err := strconv.ParseFloat(q.Get("radiusKm"), 64)
	if err != nil || radiusKm <= 0 {
		radiusKm = 25
	}

	var records []models.InspectionRecord
	if err := config.DB.Find(&records).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	now := time.Now()
	var out []models.InspectionRecordDTO
	for i := range records {
		rec := &records[i]
		if rec.Latitude == 0 && rec.Longitude == 0 {
			continue
		}
		if utils.DistanceKm(lat, lng, rec.Latitude, rec.Longitude) <= radiusKm {
			out = append(out, rec.ToDTO(now))
		}
	}
	respondJSON(w, http.StatusOK, out)
}
