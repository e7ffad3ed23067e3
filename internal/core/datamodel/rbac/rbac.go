package rbac

import "time"

// RoleAssignment is the persisted (user, project, role) triple. The composite
// unique index backs the one-row-per-pair invariant enforced in the service.
type RoleAssignment struct {
	ID        string    `gorm:"primaryKey"`
	UserID    string    `gorm:"column:user_id;not null;uniqueIndex:idx_role_assignments_user_project"`
	ProjectID string    `gorm:"column:project_id;not null;uniqueIndex:idx_role_assignments_user_project"`
	Role      string    `gorm:"column:role;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (RoleAssignment) TableName() string {
	return "role_assignments"
}
