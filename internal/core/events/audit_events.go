package events

import (
	"time"

	"github.com/google/uuid"
)

const EventTypeAuditRecorded = "audit.recorded"

// AuditRecordedEvent carries one audit entry from a mutation handler to the
// persistence subscriber.
type AuditRecordedEvent struct {
	BaseEvent
	UserID       string `json:"user_id"`
	Action       string `json:"action"`
	Resource     string `json:"resource"`
	ResourceID   string `json:"resource_id"`
	ProjectID    string `json:"project_id"`
	Details      string `json:"details"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message"`
	IPAddress    string `json:"ip_address"`
	UserAgent    string `json:"user_agent"`
}

func NewAuditRecordedEvent(userID, action, resource, resourceID, projectID, details string, success bool, errorMessage, ipAddress, userAgent string) *AuditRecordedEvent {
	return &AuditRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeAuditRecorded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":     userID,
				"action":      action,
				"resource":    resource,
				"resource_id": resourceID,
				"project_id":  projectID,
				"success":     success,
			},
		},
		UserID:       userID,
		Action:       action,
		Resource:     resource,
		ResourceID:   resourceID,
		ProjectID:    projectID,
		Details:      details,
		Success:      success,
		ErrorMessage: errorMessage,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
	}
}
