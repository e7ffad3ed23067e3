package doc

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
	List(projectID string) ([]*Doc, error)
	GetByID(id string) (*Doc, error)
	Create(d *Doc) error
	Update(d *Doc) error
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

func (s *Service) List(projectID string) ([]*Doc, error) {
	return s.repo.List(projectID)
}

func (s *Service) GetByID(id string) (*Doc, error) {
	d, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, principalID string, dto CreateDocDTO) (*Doc, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(principalID, dto.ProjectID, rbac.RoleAdmin, rbac.RoleEditor); err != nil {
		return nil, err
	}

	now := time.Now()
	d := &Doc{
		ID:        uuid.NewString(),
		ProjectID: dto.ProjectID,
		Title:     dto.Title,
		Content:   dto.Content,
		URL:       dto.URL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(d); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     principalID,
		Action:     audit.ActionCreate,
		Resource:   "doc",
		ResourceID: d.ID,
		ProjectID:  d.ProjectID,
		Details:    "created doc " + d.Title,
		Success:    true,
	})
	return d, nil
}

func (s *Service) Update(ctx context.Context, principalID, id string, dto UpdateDocDTO) (*Doc, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(principalID, d.ProjectID, rbac.RoleAdmin, rbac.RoleEditor); err != nil {
		return nil, err
	}

	if dto.Title != nil {
		d.Title = *dto.Title
	}
	if dto.Content != nil {
		d.Content = *dto.Content
	}
	if dto.URL != nil {
		d.URL = dto.URL
	}
	d.UpdatedAt = time.Now()

	if err := s.repo.Update(d); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     principalID,
		Action:     audit.ActionUpdate,
		Resource:   "doc",
		ResourceID: d.ID,
		ProjectID:  d.ProjectID,
		Details:    "updated doc " + d.Title,
		Success:    true,
	})
	return d, nil
}

func (s *Service) Delete(ctx context.Context, principalID, id string) error {
	d, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.policy.Authorize(principalID, d.ProjectID, rbac.RoleAdmin); err != nil {
		s.recorder.Record(ctx, audit.Entry{
			UserID:       principalID,
			Action:       audit.ActionDelete,
			Resource:     "doc",
			ResourceID:   id,
			ProjectID:    d.ProjectID,
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
		Resource:   "doc",
		ResourceID: id,
		ProjectID:  d.ProjectID,
		Details:    "deleted doc " + d.Title,
		Success:    true,
	})
	return nil
}
