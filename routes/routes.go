package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/agrogreen/handlers"
	"p9e.in/agrogreen/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.Handle("/token", middleware.JWTMiddleware(http.HandlerFunc(handlers.GetCurrentUser))).Methods("GET")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	// User profile endpoint
	api.HandleFunc("/profile", handleProfile).Methods("GET")

	registerInspectionRoutes(api)
	registerInsuranceRoutes(api)
	registerMasterRoutes(api)
	registerNotificationRoutes(api)
	registerFileRoutes(api)

	return r
}

// handleProfile returns user profile information
func handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	user := middleware.GetUser(r)

	response := map[string]interface{}{
		"userID": claims.UserID,
		"name":   user.Name,
		"phone":  user.Phone,
		"role":   user.Role,
		"mode":   user.Mode,
	}
	json.NewEncoder(w).Encode(response)
}

// requireEdit guards record mutations behind edit/create access.
func requireEdit(h http.HandlerFunc) http.Handler {
	return middleware.RequireEditMode(h)
}

// registerInspectionRoutes wires the warehouse inspection lifecycle endpoints.
func registerInspectionRoutes(api *mux.Router) {
	api.HandleFunc("/inspections", handlers.ListInspections).Methods("GET")
	api.Handle("/inspections", requireEdit(handlers.CreateInspection)).Methods("POST")
	api.HandleFunc("/inspections/counts", handlers.GetStatusCounts).Methods("GET")
	api.HandleFunc("/inspections/nearby", handlers.GetNearbyInspections).Methods("GET")
	api.HandleFunc("/inspections/status/{status}", handlers.ListInspections).Methods("GET")
	api.HandleFunc("/inspections/status/{status}/export/csv", handlers.ExportInspectionsCSV).Methods("GET")
	api.HandleFunc("/inspections/status/{status}/export/excel", handlers.ExportInspectionsExcel).Methods("GET")
	api.HandleFunc("/inspections/{code}", handlers.GetInspection).Methods("GET")
	api.Handle("/inspections/{code}", requireEdit(handlers.UpdateInspectionData)).Methods("PUT")
	api.Handle("/inspections/{code}", requireEdit(handlers.DeleteInspection)).Methods("DELETE")
	api.Handle("/inspections/{code}/transition", requireEdit(handlers.TransitionInspection)).Methods("POST")
	api.Handle("/inspections/{code}/documents", requireEdit(handlers.AttachDocument)).Methods("POST")
}

// registerInsuranceRoutes wires the per-inspection insurance subsystem.
func registerInsuranceRoutes(api *mux.Router) {
	api.Handle("/inspections/{code}/insurance", requireEdit(handlers.AddInsuranceEntry)).Methods("POST")
	api.HandleFunc("/inspections/{code}/insurance/alerts", handlers.GetInsuranceAlerts).Methods("GET")
	api.Handle("/inspections/{code}/insurance/{entryId}", requireEdit(handlers.UpdateInsuranceEntry)).Methods("PUT")
	api.Handle("/inspections/{code}/insurance/{entryId}", requireEdit(handlers.RemoveInsuranceEntry)).Methods("DELETE")
	api.HandleFunc("/inspections/{code}/insurance/{entryId}/applicability", handlers.CheckInsuranceApplicability).Methods("GET")
}

// registerMasterRoutes wires the bank cascade and master policy sources.
func registerMasterRoutes(api *mux.Router) {
	api.HandleFunc("/masters/banks/states", handlers.GetBankStates).Methods("GET")
	api.HandleFunc("/masters/banks/branches", handlers.GetBankBranches).Methods("GET")
	api.HandleFunc("/masters/banks/names", handlers.GetBankNames).Methods("GET")
	api.HandleFunc("/masters/clients", handlers.GetClients).Methods("GET")
	api.HandleFunc("/masters/agrogreen-policies", handlers.GetAgrogreenPolicies).Methods("GET")
	api.HandleFunc("/masters/{collection}/{docId}/policies/{policyId}/copy", handlers.CopyMasterPolicy).Methods("POST")
}

func registerNotificationRoutes(api *mux.Router) {
	api.HandleFunc("/notifications", handlers.GetMyNotifications).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", handlers.MarkNotificationRead).Methods("POST")
}

func registerFileRoutes(api *mux.Router) {
	api.HandleFunc("/upload", handlers.UploadFile).Methods("POST")
}
