package rbac

import (
	"time"

	"github.com/frahmantamala/project-tracker/internal"
	rbacDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/rbac"
)

// Role is a project-scoped access level.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleEditor   Role = "Editor"
	RoleViewer   Role = "Viewer"
	RoleNoAccess Role = "NoAccess"
)

// roleHierarchy maps each role to the exact set of levels it satisfies.
// This is deliberately an allow-set rather than a numeric rank: NoAccess is
// an empty set, not a rank below Viewer, and a future role is free to have a
// non-linear set.
var roleHierarchy = map[Role][]Role{
	RoleAdmin:    {RoleAdmin, RoleEditor, RoleViewer},
	RoleEditor:   {RoleEditor, RoleViewer},
	RoleViewer:   {RoleViewer},
	RoleNoAccess: {},
}

// HasPermission reports whether a held role satisfies the required level.
func HasPermission(held, required Role) bool {
	for _, r := range roleHierarchy[held] {
		if r == required {
			return true
		}
	}
	return false
}

// ParseRole validates a raw role string.
func ParseRole(raw string) (Role, error) {
	role := Role(raw)
	if _, ok := roleHierarchy[role]; !ok {
		return "", ErrInvalidRole
	}
	return role, nil
}

// RoleAssignment grants one user one role on one project. At most one row
// exists per (user, project) pair.
type RoleAssignment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProjectID string    `json:"projectId"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`

	// Optional expansions for list responses.
	Project *ProjectRef `json:"project,omitempty"`
	User    *UserRef    `json:"user,omitempty"`
}

type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UserRef struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name,omitempty"`
}

var (
	ErrMissingPrincipal    = internal.NewUnauthorizedError("authentication required", internal.ErrCodeMissingPrincipal)
	ErrMissingProject      = internal.NewValidationError("project id is required", internal.ErrCodeMissingProject)
	ErrNoProjectAccess     = internal.NewForbiddenError("no access to this project", internal.ErrCodeNoProjectAccess)
	ErrInsufficientRole    = internal.NewForbiddenError("insufficient role for this action", internal.ErrCodeInsufficientRole)
	ErrInvalidRole         = internal.NewValidationError("invalid role", internal.ErrCodeInvalidRole)
	ErrDuplicateAssignment = internal.NewConflictError("role already assigned for this user and project", internal.ErrCodeDuplicateAssignment)
	ErrAssignmentNotFound  = internal.NewNotFoundError("role assignment not found", internal.ErrCodeAssignmentNotFound)

	ErrMissingAssignmentFields = internal.NewValidationError("userId, projectId and role are required", internal.ErrCodeValidationFailed)
	ErrMissingRoleField        = internal.NewValidationError("role is required", internal.ErrCodeValidationFailed)
)

func ToDataModel(a *RoleAssignment) *rbacDatamodel.RoleAssignment {
	return &rbacDatamodel.RoleAssignment{
		ID:        a.ID,
		UserID:    a.UserID,
		ProjectID: a.ProjectID,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
	}
}

func FromDataModel(a *rbacDatamodel.RoleAssignment) *RoleAssignment {
	return &RoleAssignment{
		ID:        a.ID,
		UserID:    a.UserID,
		ProjectID: a.ProjectID,
		Role:      Role(a.Role),
		CreatedAt: a.CreatedAt,
	}
}
