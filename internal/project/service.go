package project

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
	GetByID(id string) (*Project, error)
	ListOwned(ownerID string) ([]*Project, error)
	ListAssigned(userID string) ([]*Project, error)
	Create(p *Project) error
	Update(p *Project) error
	Delete(id string) error
	OwnerID(projectID string) (string, error)
}

// AccessPolicy is the slice of the authorizer project handlers need.
type AccessPolicy interface {
	Authorize(principalID, projectID string, accepted ...rbac.Role) error
	CanViewProject(principalID, projectID string) error
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

// ListVisible returns the union of projects the user owns and projects where
// it holds a role other than NoAccess, deduplicated by id.
func (s *Service) ListVisible(userID string) ([]*Project, error) {
	owned, err := s.repo.ListOwned(userID)
	if err != nil {
		return nil, err
	}
	assigned, err := s.repo.ListAssigned(userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(owned))
	projects := make([]*Project, 0, len(owned)+len(assigned))
	for _, p := range owned {
		seen[p.ID] = struct{}{}
		projects = append(projects, p)
	}
	for _, p := range assigned {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		projects = append(projects, p)
	}
	return projects, nil
}

func (s *Service) Get(principalID, id string) (*Project, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if err := s.policy.CanViewProject(principalID, id); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, ownerID string, dto CreateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &Project{
		ID:          uuid.NewString(),
		Name:        dto.Name,
		Description: dto.Description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     ownerID,
		Action:     audit.ActionCreate,
		Resource:   "project",
		ResourceID: p.ID,
		ProjectID:  p.ID,
		Details:    "created project " + p.Name,
		Success:    true,
	})

	s.logger.Info("project created", "project_id", p.ID, "owner_id", ownerID)
	return p, nil
}

func (s *Service) Update(ctx context.Context, principalID, id string, dto UpdateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	if err := s.policy.Authorize(principalID, id, rbac.RoleAdmin); err != nil {
		return nil, err
	}

	if dto.Name != nil {
		p.Name = *dto.Name
	}
	if dto.Description != nil {
		p.Description = *dto.Description
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(p); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     principalID,
		Action:     audit.ActionUpdate,
		Resource:   "project",
		ResourceID: p.ID,
		ProjectID:  p.ID,
		Details:    "updated project " + p.Name,
		Success:    true,
	})
	return p, nil
}

func (s *Service) Delete(ctx context.Context, principalID, id string) error {
	p, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	if err := s.policy.Authorize(principalID, id, rbac.RoleAdmin); err != nil {
		s.recorder.Record(ctx, audit.Entry{
			UserID:       principalID,
			Action:       audit.ActionDelete,
			Resource:     "project",
			ResourceID:   id,
			ProjectID:    id,
			Details:      "blocked delete of project " + p.Name,
			Success:      false,
			ErrorMessage: err.Error(),
		})
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     principalID,
		Action:     audit.ActionDelete,
		Resource:   "project",
		ResourceID: id,
		ProjectID:  id,
		Details:    "deleted project " + p.Name,
		Success:    true,
	})

	s.logger.Info("project deleted", "project_id", id, "deleted_by", principalID)
	return nil
}
