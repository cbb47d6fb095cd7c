package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"p9e.in/agrogreen/config"
	"p9e.in/agrogreen/middleware"
	"p9e.in/agrogreen/models"
)

// NotificationService creates and delivers in-app notifications for workflow
// handoffs between the submitter and the checker.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new notification service instance
func NewNotificationService() *NotificationService {
	return &NotificationService{
		db: config.DB,
	}
}

// transitionTitles keyed by action.
var transitionTitles = map[string]string{
	"submit":     "Inspection submitted for review",
	"activate":   "Inspection activated",
	"reject":     "Inspection rejected",
	"resubmit":   "Inspection returned for changes",
	"close":      "Inspection closed",
	"reactivate": "Inspection marked for reactivation",
	"edit":       "Inspection reopened for editing",
}

// NotifyTransition records an in-app notification for the party on the other
// side of the handoff. Submit goes to the checker inbox; review outcomes go
// back to the record's creator. Failures are logged, never surfaced; a lost
// notification must not fail the transition that already committed.
func (ns *NotificationService) NotifyTransition(rec *models.InspectionRecord, action, actorName string) {
	title, ok := transitionTitles[action]
	if !ok {
		title = "Inspection updated"
	}

	recipient := rec.CreatedBy
	if action == "submit" {
		recipient = "checkers"
	}
	if recipient == "" {
		return
	}

	n := models.Notification{
		Type:           models.NotificationTypeStatusTransition,
		RecipientID:    recipient,
		Title:          title,
		Body:           fmt.Sprintf("%s · %s by %s", rec.InspectionCode, action, actorName),
		InspectionCode: rec.InspectionCode,
		Action:         action,
		Status:         models.NotificationStatusPending,
	}
	if err := ns.db.Create(&n).Error; err != nil {
		log.Printf("❌ Failed to create notification for %s: %v", rec.InspectionCode, err)
	}
}

// NotifyExpiringInsurance scans every record's entries and notifies creators
// whose policies are expiring or expired. Meant for a periodic trigger.
func (ns *NotificationService) NotifyExpiringInsurance(now time.Time) (int, error) {
	var records []models.InspectionRecord
	if err := ns.db.Find(&records).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch inspections: %w", err)
	}

	created := 0
	for i := range records {
		rec := &records[i]
		if rec.CreatedBy == "" {
			continue
		}
		level := rec.InsuranceAlert(now)
		if level == models.AlertNone {
			continue
		}
		n := models.Notification{
			Type:           models.NotificationTypeInsuranceExpiry,
			RecipientID:    rec.CreatedBy,
			Title:          fmt.Sprintf("Insurance %s on %s", level, rec.InspectionCode),
			InspectionCode: rec.InspectionCode,
			Status:         models.NotificationStatusPending,
		}
		if err := ns.db.Create(&n).Error; err != nil {
			log.Printf("❌ Failed to create expiry notification: %v", err)
			continue
		}
		created++
	}
	return created, nil
}

// GetMyNotifications lists the caller's notifications, newest first.
func GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	recipients := []string{claims.UserID}
	if claims.Role == "checker" || claims.Role == "admin" {
		recipients = append(recipients, "checkers")
	}

	var notifications []models.Notification
	if err := config.DB.
		Where("recipient_id IN ?", recipients).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, notifications)
}

// MarkNotificationRead marks one notification as read.
func MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	now := time.Now()
	result := config.DB.Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": models.NotificationStatusRead, "read_at": now})
	if result.Error != nil {
		http.Error(w, result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "notification not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
