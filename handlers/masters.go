package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/agrogreen/config"
	"p9e.in/agrogreen/models"
)

// Dropdown master-data endpoints for the inspection form's dependent
// state → branches(state) → names(state, branch) cascade. Every scoped
// response echoes the scope it was computed for, so the client can discard
// stale responses after the user changes an upstream selection.

type scopedList struct {
	Scope  string   `json:"scope"`
	Values []string `json:"values"`
}

// GetBankStates lists distinct bank states.
func GetBankStates(w http.ResponseWriter, r *http.Request) {
	var states []string
	if err := config.DB.Model(&models.Bank{}).
		Distinct("state").
		Order("state ASC").
		Pluck("state", &states).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, states)
}

// GetBankBranches lists branches within a state, tagged with the state.
func GetBankBranches(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		http.Error(w, "state is required", http.StatusBadRequest)
		return
	}

	var branches []string
	if err := config.DB.Model(&models.Bank{}).
		Where("state = ?", state).
		Distinct("branch").
		Order("branch ASC").
		Pluck("branch", &branches).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, scopedList{Scope: state, Values: branches})
}

// GetBankNames lists bank names within (state, branch), tagged with both.
func GetBankNames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state, branch := q.Get("state"), q.Get("branch")
	if state == "" || branch == "" {
		http.Error(w, "state and branch are required", http.StatusBadRequest)
		return
	}

	var banks []models.Bank
	if err := config.DB.
		Where("state = ? AND branch = ?", state, branch).
		Order("bank_name ASC").
		Find(&banks).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"scope": state + "/" + branch,
		"banks": banks,
	})
}

// GetClients lists master client records with their policies.
func GetClients(w http.ResponseWriter, r *http.Request) {
	var clients []models.Client
	if err := config.DB.Order("name ASC").Find(&clients).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, clients)
}

// GetAgrogreenPolicies lists the company-held master policies.
func GetAgrogreenPolicies(w http.ResponseWriter, r *http.Request) {
	var policies []models.AgrogreenPolicy
	if err := config.DB.Order("insurance_id ASC").Find(&policies).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, policies)
}

// CopyMasterPolicy copies one policy from a master record (client or
// agrogreen) into a fresh insurance entry, stamping provenance so later
// master edits can be traced back to the copy.
func CopyMasterPolicy(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collection, docID, policyID := vars["collection"], vars["docId"], vars["policyId"]

	var policies models.MasterPolicies
	switch collection {
	case models.SourceClients:
		var c models.Client
		if err := config.DB.First(&c, "id = ?", docID).Error; err != nil {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		policies = c.Policies
	case models.SourceAgrogreen:
		var p models.AgrogreenPolicy
		if err := config.DB.First(&p, "id = ?", docID).Error; err != nil {
			http.Error(w, "agrogreen policy not found", http.StatusNotFound)
			return
		}
		policies = p.Policies
	default:
		http.Error(w, "unknown master collection", http.StatusBadRequest)
		return
	}

	for _, p := range policies {
		if p.ID == policyID || p.InsuranceID == policyID {
			entry := p.NormalizeForPersistence()
			entry.SourceDocumentID = docID
			entry.SourceCollection = collection
			respondJSON(w, http.StatusOK, entry)
			return
		}
	}
	http.Error(w, "policy not found on master record", http.StatusNotFound)
}
