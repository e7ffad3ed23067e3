package connection

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frahmantamala/project-tracker/internal/audit"
	"github.com/frahmantamala/project-tracker/internal/rbac"
)

type RepositoryAPI interface {
	List(projectID string) ([]*Connection, error)
	GetByID(id string) (*Connection, error)
	Create(c *Connection) error
	Update(c *Connection) error
	Delete(id string) error
}

type AccessPolicy interface {
	Authorize(principalID, projectID string, accepted ...rbac.Role) error
}

type Service struct {
	repo     RepositoryAPI
	policy   AccessPolicy
	recorder audit.Recorder
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, policy AccessPolicy, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		policy:   policy,
		recorder: recorder,
		logger:   logger,
	}
}

func (s *Service) List(projectID string) ([]*Connection, error) {
	return s.repo.List(projectID)
}

func (s *Service) GetByID(id string) (*Connection, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConnectionNotFound
		}
		return nil, err
	}
	return c, nil
}

// Create gates on the target project when one is given. Global connections
// have no project to gate on; any authenticated user may create them.
func (s *Service) Create(ctx context.Context, principalID string, dto CreateConnectionDTO) (*Connection, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.ProjectID != nil {
		if err := s.policy.Authorize(principalID, *dto.ProjectID, rbac.RoleAdmin, rbac.RoleEditor); err != nil {
			return nil, err
		}
	}

	status := dto.Status
	if status == "" {
		status = StatusInactive
	}

	now := time.Now()
	c := &Connection{
		ID:        uuid.NewString(),
		ProjectID: dto.ProjectID,
		Name:      dto.Name,
		Kind:      dto.Kind,
		Config:    dto.Config,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(c); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     principalID,
		Action:     audit.ActionCreate,
		Resource:   "connection",
		ResourceID: c.ID,
		ProjectID:  deref(c.ProjectID),
		Details:    "created connection " + c.Name,
		Success:    true,
	})
	return c, nil
}

func (s *Service) Update(ctx context.Context, principalID, id string, dto UpdateConnectionDTO) (*Connection, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if c.ProjectID != nil {
		if err := s.policy.Authorize(principalID, *c.ProjectID, rbac.RoleAdmin, rbac.RoleEditor); err != nil {
			return nil, err
		}
	}

	if dto.Name != nil {
		c.Name = *dto.Name
	}
	if dto.Kind != nil {
		c.Kind = *dto.Kind
	}
	if dto.Config != nil {
		c.Config = *dto.Config
	}
	if dto.Status != nil {
		c.Status = *dto.Status
	}
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(c); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     principalID,
		Action:     audit.ActionUpdate,
		Resource:   "connection",
		ResourceID: c.ID,
		ProjectID:  deref(c.ProjectID),
		Details:    "updated connection " + c.Name,
		Success:    true,
	})
	return c, nil
}

func (s *Service) Delete(ctx context.Context, principalID, id string) error {
	c, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if c.ProjectID != nil {
		if err := s.policy.Authorize(principalID, *c.ProjectID, rbac.RoleAdmin); err != nil {
			s.recorder.Record(ctx, audit.Entry{
				UserID:       principalID,
				Action:       audit.ActionDelete,
				Resource:     "connection",
				ResourceID:   id,
				ProjectID:    *c.ProjectID,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			return err
		}
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     principalID,
		Action:     audit.ActionDelete,
		Resource:   "connection",
		ResourceID: id,
		ProjectID:  deref(c.ProjectID),
		Details:    "deleted connection " + c.Name,
		Success:    true,
	})
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
