package timelog

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
	List(filter ListFilter) ([]*TimeLog, error)
	GetByID(id string) (*TimeLog, error)
	Create(t *TimeLog) error
	Update(t *TimeLog) error
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

func (s *Service) List(filter ListFilter) ([]*TimeLog, error) {
	return s.repo.List(filter)
}

func (s *Service) GetByID(id string) (*TimeLog, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeLogNotFound
		}
		return nil, err
	}
	return t, nil
}

// Create logs time for the acting user; the entry's user is always the
// principal, never taken from the request body.
func (s *Service) Create(ctx context.Context, principalID string, dto CreateTimeLogDTO) (*TimeLog, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(principalID, dto.ProjectID, rbac.RoleAdmin, rbac.RoleEditor); err != nil {
		return nil, err
	}

	now := time.Now()
	loggedAt := now
	if dto.LoggedAt != nil {
		loggedAt = *dto.LoggedAt
	}

	t := &TimeLog{
		ID:        uuid.NewString(),
		ProjectID: dto.ProjectID,
		TaskID:    dto.TaskID,
		UserID:    principalID,
		Hours:     dto.Hours,
		Note:      dto.Note,
		LoggedAt:  loggedAt,
		CreatedAt: now,
	}
	if err := s.repo.Create(t); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     principalID,
		Action:     audit.ActionCreate,
		Resource:   "timelog",
		ResourceID: t.ID,
		ProjectID:  t.ProjectID,
		Success:    true,
	})
	return t, nil
}

func (s *Service) Update(ctx context.Context, principalID, id string, dto UpdateTimeLogDTO) (*TimeLog, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(principalID, t.ProjectID, rbac.RoleAdmin, rbac.RoleEditor); err != nil {
		return nil, err
	}

	if dto.Hours != nil {
		t.Hours = *dto.Hours
	}
	if dto.Note != nil {
		t.Note = *dto.Note
	}
	if dto.LoggedAt != nil {
		t.LoggedAt = *dto.LoggedAt
	}

	if err := s.repo.Update(t); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     principalID,
		Action:     audit.ActionUpdate,
		Resource:   "timelog",
		ResourceID: t.ID,
		ProjectID:  t.ProjectID,
		Success:    true,
	})
	return t, nil
}

func (s *Service) Delete(ctx context.Context, principalID, id string) error {
	t, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.policy.Authorize(principalID, t.ProjectID, rbac.RoleAdmin); err != nil {
		s.recorder.Record(ctx, audit.Entry{
			UserID:       principalID,
			Action:       audit.ActionDelete,
			Resource:     "timelog",
			ResourceID:   id,
			ProjectID:    t.ProjectID,
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
		Resource:   "timelog",
		ResourceID: id,
		ProjectID:  t.ProjectID,
		Success:    true,
	})
	return nil
}
