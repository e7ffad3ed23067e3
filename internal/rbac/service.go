package rbac

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/project-tracker/internal/audit"
	"github.com/google/uuid"
)

type RepositoryAPI interface {
	List(userID, projectID string) ([]*RoleAssignment, error)
	GetByID(id string) (*RoleAssignment, error)
	GetByUserAndProject(userID, projectID string) (*RoleAssignment, error)
	Create(assignment *RoleAssignment) error
	UpdateRole(id string, role Role) error
	Delete(id string) error
	HasAdminAnywhere(userID string) (bool, error)
}

// DefaultRoleLookup reads a user's fallback role for the display-layer
// effective-role derivation.
type DefaultRoleLookup interface {
	DefaultRole(userID string) (string, error)
}

// Service manages role assignments. The Authorizer stays a separate, pure
// decision component; this service owns the write paths around it.
type Service struct {
	repo       RepositoryAPI
	authorizer *Authorizer
	users      DefaultRoleLookup
	recorder   audit.Recorder
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, authorizer *Authorizer, users DefaultRoleLookup, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		authorizer: authorizer,
		users:      users,
		recorder:   recorder,
		logger:     logger,
	}
}

func (s *Service) List(userID, projectID string) ([]*RoleAssignment, error) {
	return s.repo.List(userID, projectID)
}

// Assign creates a role assignment. The duplicate check is check-then-act;
// the unique index on (user_id, project_id) catches the losing side of a
// concurrent duplicate and is reported as the same conflict.
func (s *Service) Assign(ctx context.Context, actorID string, dto AssignRoleDTO) (*RoleAssignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.authorizer.CanManageRoles(actorID, dto.ProjectID); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByUserAndProject(dto.UserID, dto.ProjectID); err == nil {
		s.logger.Warn("duplicate role assignment rejected",
			"user_id", dto.UserID,
			"project_id", dto.ProjectID,
			"requested_role", dto.Role)
		return nil, ErrDuplicateAssignment
	} else if !errors.Is(err, ErrAssignmentNotFound) {
		return nil, err
	}

	assignment := &RoleAssignment{
		ID:        uuid.NewString(),
		UserID:    dto.UserID,
		ProjectID: dto.ProjectID,
		Role:      Role(dto.Role),
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(assignment); err != nil {
		s.recorder.Record(ctx, audit.Entry{
			UserID:       actorID,
			Action:       audit.ActionAssign,
			Resource:     "role_assignment",
			ProjectID:    dto.ProjectID,
			Details:      "attempted to assign role " + dto.Role,
			Success:      false,
			ErrorMessage: err.Error(),
		})
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     actorID,
		Action:     audit.ActionAssign,
		Resource:   "role_assignment",
		ResourceID: assignment.ID,
		ProjectID:  dto.ProjectID,
		Details:    "assigned role " + dto.Role + " to user " + dto.UserID,
		Success:    true,
	})

	s.logger.Info("role assigned",
		"assignment_id", assignment.ID,
		"user_id", dto.UserID,
		"project_id", dto.ProjectID,
		"role", dto.Role)
	return assignment, nil
}

func (s *Service) UpdateRole(ctx context.Context, actorID, id string, dto UpdateRoleDTO) (*RoleAssignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	assignment, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizer.CanManageRoles(actorID, assignment.ProjectID); err != nil {
		return nil, err
	}

	// Repositories may hand back the stored row itself; read the old role
	// before the update can alias it away.
	oldRole := assignment.Role

	if err := s.repo.UpdateRole(id, Role(dto.Role)); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     actorID,
		Action:     audit.ActionUpdate,
		Resource:   "role_assignment",
		ResourceID: id,
		ProjectID:  assignment.ProjectID,
		Details:    "changed role from " + string(oldRole) + " to " + dto.Role,
		Success:    true,
	})

	assignment.Role = Role(dto.Role)
	return assignment, nil
}

func (s *Service) Remove(ctx context.Context, actorID, id string) error {
	assignment, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.authorizer.CanManageRoles(actorID, assignment.ProjectID); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     actorID,
		Action:     audit.ActionDelete,
		Resource:   "role_assignment",
		ResourceID: id,
		ProjectID:  assignment.ProjectID,
		Details:    "removed role " + string(assignment.Role) + " from user " + assignment.UserID,
		Success:    true,
	})
	return nil
}

// EffectiveRole is the display-only derivation: explicit assignment first,
// then the user's default role. It deliberately diverges from Authorize,
// which never falls back to the default role.
func (s *Service) EffectiveRole(userID, projectID string) (*EffectiveRoleResponse, error) {
	if userID == "" {
		return nil, ErrMissingPrincipal
	}
	if projectID == "" {
		return nil, ErrMissingProject
	}

	assignment, err := s.repo.GetByUserAndProject(userID, projectID)
	if err == nil {
		return &EffectiveRoleResponse{
			UserID:    userID,
			ProjectID: projectID,
			Role:      assignment.Role,
			Source:    EffectiveRoleSourceAssignment,
		}, nil
	}
	if !errors.Is(err, ErrAssignmentNotFound) {
		return nil, err
	}

	defaultRole, err := s.users.DefaultRole(userID)
	if err != nil {
		return nil, err
	}
	role, parseErr := ParseRole(defaultRole)
	if parseErr != nil {
		role = RoleNoAccess
	}
	return &EffectiveRoleResponse{
		UserID:    userID,
		ProjectID: projectID,
		Role:      role,
		Source:    EffectiveRoleSourceDefault,
	}, nil
}
