package task

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
	List(projectID string) ([]*Task, error)
	GetByID(id string) (*Task, error)
	ListChildren(parentID string) ([]*Task, error)
	Create(t *Task) error
	Update(t *Task) error
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

func (s *Service) List(projectID string) ([]*Task, error) {
	return s.repo.List(projectID)
}

// GetByID returns the task with its direct children expanded.
func (s *Service) GetByID(id string) (*Task, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	children, err := s.repo.ListChildren(id)
	if err != nil {
		return nil, err
	}
	t.Children = children
	return t, nil
}

// validateParent checks that the parent exists, lives in the same project,
// and is not the task itself. Deeper cycles cannot form from these two
// checks alone but the tree stays consistent for every write going through
// the service.
func (s *Service) validateParent(taskID, projectID string, parentID *string) error {
	if parentID == nil || *parentID == "" {
		return nil
	}
	if taskID != "" && *parentID == taskID {
		return ErrSelfParent
	}
	parent, err := s.repo.GetByID(*parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParentNotFound
		}
		return err
	}
	if parent.ProjectID != projectID {
		return ErrParentWrongScope
	}
	return nil
}

func (s *Service) Create(ctx context.Context, principalID string, dto CreateTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(principalID, dto.ProjectID, rbac.RoleAdmin, rbac.RoleEditor); err != nil {
		return nil, err
	}

	if err := s.validateParent("", dto.ProjectID, dto.ParentID); err != nil {
		return nil, err
	}

	status := dto.Status
	if status == "" {
		status = StatusTodo
	}

	now := time.Now()
	t := &Task{
		ID:          uuid.NewString(),
		ProjectID:   dto.ProjectID,
		ParentID:    dto.ParentID,
		Title:       dto.Title,
		Description: dto.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(t); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     principalID,
		Action:     audit.ActionCreate,
		Resource:   "task",
		ResourceID: t.ID,
		ProjectID:  t.ProjectID,
		Details:    "created task " + t.Title,
		Success:    true,
	})
	return t, nil
}

func (s *Service) Update(ctx context.Context, principalID, id string, dto UpdateTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if err := s.policy.Authorize(principalID, t.ProjectID, rbac.RoleAdmin, rbac.RoleEditor); err != nil {
		return nil, err
	}

	if dto.ParentID != nil {
		if err := s.validateParent(id, t.ProjectID, dto.ParentID); err != nil {
			return nil, err
		}
		if *dto.ParentID == "" {
			t.ParentID = nil
		} else {
			t.ParentID = dto.ParentID
		}
	}
	if dto.Title != nil {
		t.Title = *dto.Title
	}
	if dto.Description != nil {
		t.Description = *dto.Description
	}
	if dto.Status != nil {
		t.Status = *dto.Status
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(t); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     principalID,
		Action:     audit.ActionUpdate,
		Resource:   "task",
		ResourceID: t.ID,
		ProjectID:  t.ProjectID,
		Details:    "updated task " + t.Title,
		Success:    true,
	})
	return t, nil
}

// Delete removes the task; direct children are detached, not deleted.
func (s *Service) Delete(ctx context.Context, principalID, id string) error {
	t, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := s.policy.Authorize(principalID, t.ProjectID, rbac.RoleAdmin); err != nil {
		s.recorder.Record(ctx, audit.Entry{
			UserID:       principalID,
			Action:       audit.ActionDelete,
			Resource:     "task",
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
		Resource:   "task",
		ResourceID: id,
		ProjectID:  t.ProjectID,
		Details:    "deleted task " + t.Title,
		Success:    true,
	})
	return nil
}
