package audit

import (
	"context"
	"time"

	"github.com/frahmantamala/project-tracker/internal"
	auditDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/audit"
)

// Actions recorded by mutation paths.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionAssign = "ASSIGN"
)

// Entry is one audit record as produced by a mutation path. Request metadata
// (IP, user agent) is filled from context by the recorder.
type Entry struct {
	UserID       string
	Action       string
	Resource     string
	ResourceID   string
	ProjectID    string
	Details      string
	Success      bool
	ErrorMessage string
}

// Recorder accepts audit entries. Recording is best-effort: implementations
// must never fail the operation being audited.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// Log is the read-side shape returned by the audit endpoints.
type Log struct {
	ID           string    `json:"id"`
	UserID       *string   `json:"userId,omitempty"`
	Action       string    `json:"action"`
	Resource     string    `json:"resource"`
	ResourceID   *string   `json:"resourceId,omitempty"`
	ProjectID    *string   `json:"projectId,omitempty"`
	Details      string    `json:"details,omitempty"`
	Success      bool      `json:"success"`
	ErrorMessage *string   `json:"errorMessage,omitempty"`
	IPAddress    *string   `json:"ipAddress,omitempty"`
	UserAgent    *string   `json:"userAgent,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

var ErrLogNotFound = internal.NewNotFoundError("audit log not found", internal.ErrCodeResourceNotFound)

func FromDataModel(l *auditDatamodel.AuditLog) *Log {
	return &Log{
		ID:           l.ID,
		UserID:       l.UserID,
		Action:       l.Action,
		Resource:     l.Resource,
		ResourceID:   l.ResourceID,
		ProjectID:    l.ProjectID,
		Details:      l.Details,
		Success:      l.Success,
		ErrorMessage: l.ErrorMessage,
		IPAddress:    l.IPAddress,
		UserAgent:    l.UserAgent,
		CreatedAt:    l.CreatedAt,
	}
}
