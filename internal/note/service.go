package note

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
	List(projectID string) ([]*Note, error)
	GetByID(id string) (*Note, error)
	Create(n *Note) error
	Update(n *Note) error
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

func (s *Service) List(projectID string) ([]*Note, error) {
	return s.repo.List(projectID)
}

func (s *Service) GetByID(id string) (*Note, error) {
	n, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return n, nil
}

func (s *Service) Create(ctx context.Context, principalID string, dto CreateNoteDTO) (*Note, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(principalID, dto.ProjectID, rbac.RoleAdmin, rbac.RoleEditor); err != nil {
		return nil, err
	}

	now := time.Now()
	n := &Note{
		ID:        uuid.NewString(),
		ProjectID: dto.ProjectID,
		Content:   dto.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(n); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     principalID,
		Action:     audit.ActionCreate,
		Resource:   "note",
		ResourceID: n.ID,
		ProjectID:  n.ProjectID,
		Success:    true,
	})
	return n, nil
}

func (s *Service) Update(ctx context.Context, principalID, id string, dto UpdateNoteDTO) (*Note, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	n, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(principalID, n.ProjectID, rbac.RoleAdmin, rbac.RoleEditor); err != nil {
		return nil, err
	}

	n.Content = *dto.Content
	n.UpdatedAt = time.Now()
	if err := s.repo.Update(n); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     principalID,
		Action:     audit.ActionUpdate,
		Resource:   "note",
		ResourceID: n.ID,
		ProjectID:  n.ProjectID,
		Success:    true,
	})
	return n, nil
}

// Delete requires Admin on the note's project. The denial is recorded too,
// deletions are the destructive path worth a full trail.
func (s *Service) Delete(ctx context.Context, principalID, id string) error {
	n, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.policy.Authorize(principalID, n.ProjectID, rbac.RoleAdmin); err != nil {
		s.recorder.Record(ctx, audit.Entry{
			UserID:       principalID,
			Action:       audit.ActionDelete,
			Resource:     "note",
			ResourceID:   id,
			ProjectID:    n.ProjectID,
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
		Resource:   "note",
		ResourceID: id,
		ProjectID:  n.ProjectID,
		Success:    true,
	})
	return nil
}
