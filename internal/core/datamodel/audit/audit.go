package audit

import "time"

// AuditLog rows are append-only; nothing in the application updates or
// deletes them.
type AuditLog struct {
	ID           string    `gorm:"primaryKey"`
	UserID       *string   `gorm:"column:user_id;index"`
	Action       string    `gorm:"column:action;not null"`
	Resource     string    `gorm:"column:resource;not null;index"`
	ResourceID   *string   `gorm:"column:resource_id"`
	ProjectID    *string   `gorm:"column:project_id;index"`
	Details      string    `gorm:"column:details"`
	Success      bool      `gorm:"column:success;default:true"`
	ErrorMessage *string   `gorm:"column:error_message"`
	IPAddress    *string   `gorm:"column:ip_address"`
	UserAgent    *string   `gorm:"column:user_agent"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
