package rbac

import (
	"errors"
	"log/slog"
)

// AssignmentLookup is the read surface the authorizer needs from the
// role-assignment store.
type AssignmentLookup interface {
	GetByUserAndProject(userID, projectID string) (*RoleAssignment, error)
	HasAdminAnywhere(userID string) (bool, error)
}

// ProjectOwnerLookup resolves a project's owner. The owner bypass reads
// project data, not a role-assignment row, so every project-scoped check
// needs this extra read.
type ProjectOwnerLookup interface {
	OwnerID(projectID string) (string, error)
}

// Authorizer decides project-scoped access. It is stateless: every decision
// reads fresh assignment and ownership rows, nothing is cached across
// requests.
type Authorizer struct {
	assignments AssignmentLookup
	projects    ProjectOwnerLookup
	logger      *slog.Logger
}

func NewAuthorizer(assignments AssignmentLookup, projects ProjectOwnerLookup, logger *slog.Logger) *Authorizer {
	return &Authorizer{
		assignments: assignments,
		projects:    projects,
		logger:      logger,
	}
}

// Authorize allows the principal to act on the project when it owns the
// project, or when its assigned role satisfies at least one accepted role.
// There is no defaultRole fallback here: the mutation gate trusts only
// explicit assignments and ownership.
func (a *Authorizer) Authorize(principalID, projectID string, accepted ...Role) error {
	if principalID == "" {
		return ErrMissingPrincipal
	}
	if projectID == "" {
		return ErrMissingProject
	}

	ownerID, err := a.projects.OwnerID(projectID)
	if err != nil {
		return err
	}
	if ownerID == principalID {
		return nil
	}

	assignment, err := a.assignments.GetByUserAndProject(principalID, projectID)
	if err != nil {
		if errors.Is(err, ErrAssignmentNotFound) {
			a.logger.Warn("access denied: no role on project",
				"user_id", principalID,
				"project_id", projectID)
			return ErrNoProjectAccess
		}
		return err
	}

	for _, required := range accepted {
		if HasPermission(assignment.Role, required) {
			return nil
		}
	}

	a.logger.Warn("access denied: insufficient role",
		"user_id", principalID,
		"project_id", projectID,
		"held_role", assignment.Role,
		"accepted_roles", accepted)
	return ErrInsufficientRole
}

// CanViewProject is the weaker single-project visibility gate: owner, or any
// assigned role other than NoAccess.
func (a *Authorizer) CanViewProject(principalID, projectID string) error {
	if principalID == "" {
		return ErrMissingPrincipal
	}
	if projectID == "" {
		return ErrMissingProject
	}

	ownerID, err := a.projects.OwnerID(projectID)
	if err != nil {
		return err
	}
	if ownerID == principalID {
		return nil
	}

	assignment, err := a.assignments.GetByUserAndProject(principalID, projectID)
	if err != nil {
		if errors.Is(err, ErrAssignmentNotFound) {
			return ErrNoProjectAccess
		}
		return err
	}
	if assignment.Role == RoleNoAccess {
		return ErrNoProjectAccess
	}
	return nil
}

// IsAdminAnywhere reports whether the user holds an Admin assignment on any
// project. Used by the user-management protection, not by project gates.
func (a *Authorizer) IsAdminAnywhere(userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return a.assignments.HasAdminAnywhere(userID)
}

// CanManageRoles gates role-assignment management: the actor must own the
// target project or hold an Admin assignment on some project.
func (a *Authorizer) CanManageRoles(principalID, projectID string) error {
	if principalID == "" {
		return ErrMissingPrincipal
	}
	if projectID == "" {
		return ErrMissingProject
	}

	ownerID, err := a.projects.OwnerID(projectID)
	if err != nil {
		return err
	}
	if ownerID == principalID {
		return nil
	}

	isAdmin, err := a.assignments.HasAdminAnywhere(principalID)
	if err != nil {
		return err
	}
	if !isAdmin {
		a.logger.Warn("role management denied: not an admin",
			"user_id", principalID,
			"project_id", projectID)
		return ErrInsufficientRole
	}
	return nil
}
