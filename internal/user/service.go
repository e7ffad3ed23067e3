package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frahmantamala/project-tracker/internal/audit"
	"github.com/frahmantamala/project-tracker/internal/auth"
	userDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/project-tracker/internal/rbac"
)

// defaultPassword is the placeholder credential for accounts created through
// user management. The account owner is expected to change it on first login.
const defaultPassword = "password"

type RepositoryAPI interface {
	List() ([]*userDatamodel.User, error)
	GetByID(id string) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	Create(user *userDatamodel.User) error
	Update(user *userDatamodel.User) error
	Delete(id string) error
}

// AdminChecker reports whether a user holds an Admin assignment on any
// project. Satisfied by the rbac authorizer.
type AdminChecker interface {
	IsAdminAnywhere(userID string) (bool, error)
}

type Service struct {
	repo       RepositoryAPI
	admins     AdminChecker
	recorder   audit.Recorder
	logger     *slog.Logger
	bcryptCost int
}

func NewService(repo RepositoryAPI, admins AdminChecker, recorder audit.Recorder, logger *slog.Logger, bcryptCost int) *Service {
	return &Service{
		repo:       repo,
		admins:     admins,
		recorder:   recorder,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

func (s *Service) List() ([]*User, error) {
	rows, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users, nil
}

func (s *Service) GetByID(id string) (*User, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return FromDataModel(row), nil
}

// DefaultRole exposes the fallback role for effective-role derivation.
func (s *Service) DefaultRole(userID string) (string, error) {
	row, err := s.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return row.DefaultRole, nil
}

func (s *Service) Create(ctx context.Context, actorID string, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	defaultRole := string(rbac.RoleNoAccess)
	if dto.DefaultRole != "" {
		role, err := rbac.ParseRole(dto.DefaultRole)
		if err != nil {
			return nil, err
		}
		defaultRole = string(role)
	}

	if _, err := s.repo.GetByEmail(dto.Email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	password := dto.Password
	if password == "" {
		password = defaultPassword
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	row := &userDatamodel.User{
		ID:           uuid.NewString(),
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: hash,
		DefaultRole:  defaultRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(row); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     actorID,
		Action:     audit.ActionCreate,
		Resource:   "user",
		ResourceID: row.ID,
		Details:    "created user " + row.Email,
		Success:    true,
	})

	s.logger.Info("user created", "user_id", row.ID, "email", row.Email)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, actorID, id string, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.guardTarget(ctx, actorID, id, audit.ActionUpdate)
	if err != nil {
		return nil, err
	}

	if dto.Email != nil && *dto.Email != row.Email {
		if _, err := s.repo.GetByEmail(*dto.Email); err == nil {
			return nil, ErrEmailInUse
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		row.Email = *dto.Email
	}
	if dto.Name != nil {
		row.Name = dto.Name
	}
	if dto.DefaultRole != nil {
		role, err := rbac.ParseRole(*dto.DefaultRole)
		if err != nil {
			return nil, err
		}
		row.DefaultRole = string(role)
	}
	row.UpdatedAt = time.Now()

	if err := s.repo.Update(row); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     actorID,
		Action:     audit.ActionUpdate,
		Resource:   "user",
		ResourceID: row.ID,
		Details:    "updated user " + row.Email,
		Success:    true,
	})
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	row, err := s.guardTarget(ctx, actorID, id, audit.ActionDelete)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     actorID,
		Action:     audit.ActionDelete,
		Resource:   "user",
		ResourceID: id,
		Details:    "deleted user " + row.Email,
		Success:    true,
	})

	s.logger.Info("user deleted", "user_id", id, "deleted_by", actorID)
	return nil
}

// guardTarget loads the target account and applies the management protections:
// the actor may not target itself, and an account holding an Admin assignment
// anywhere may only be touched by another such admin.
func (s *Service) guardTarget(ctx context.Context, actorID, id, action string) (*userDatamodel.User, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if actorID == id {
		return nil, ErrSelfModification
	}

	targetIsAdmin, err := s.admins.IsAdminAnywhere(id)
	if err != nil {
		return nil, err
	}
	if targetIsAdmin {
		actorIsAdmin, err := s.admins.IsAdminAnywhere(actorID)
		if err != nil {
			return nil, err
		}
		if !actorIsAdmin {
			s.recorder.Record(ctx, audit.Entry{
				UserID:       actorID,
				Action:       action,
				Resource:     "user",
				ResourceID:   id,
				Details:      "blocked: target holds an admin role",
				Success:      false,
				ErrorMessage: ErrAdminProtected.Message,
			})
			return nil, ErrAdminProtected
		}
	}
	return row, nil
}
