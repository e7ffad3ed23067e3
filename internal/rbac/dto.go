package rbac

// AssignRoleDTO creates a role assignment.
type AssignRoleDTO struct {
	UserID    string `json:"userId"`
	ProjectID string `json:"projectId"`
	Role      string `json:"role"`
}

// UpdateRoleDTO changes the role of an existing assignment.
type UpdateRoleDTO struct {
	Role string `json:"role"`
}

func (d AssignRoleDTO) Validate() error {
	if d.UserID == "" || d.ProjectID == "" || d.Role == "" {
		return ErrMissingAssignmentFields
	}
	_, err := ParseRole(d.Role)
	return err
}

func (d UpdateRoleDTO) Validate() error {
	if d.Role == "" {
		return ErrMissingRoleField
	}
	_, err := ParseRole(d.Role)
	return err
}

// EffectiveRoleResponse is the display-layer derivation: the explicit
// assignment when present, otherwise the user's default role. Mutation gates
// never consult this.
type EffectiveRoleResponse struct {
	UserID    string `json:"userId"`
	ProjectID string `json:"projectId"`
	Role      Role   `json:"role"`
	Source    string `json:"source"`
}

const (
	EffectiveRoleSourceAssignment = "assignment"
	EffectiveRoleSourceDefault    = "default"
)
