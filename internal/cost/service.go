package cost

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
	List(projectID string) ([]*Cost, error)
	GetByID(id string) (*Cost, error)
	Create(c *Cost) error
	Update(c *Cost) error
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

func (s *Service) List(projectID string) ([]*Cost, error) {
	return s.repo.List(projectID)
}

func (s *Service) GetByID(id string) (*Cost, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCostNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, principalID string, dto CreateCostDTO) (*Cost, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(principalID, dto.ProjectID, rbac.RoleAdmin, rbac.RoleEditor); err != nil {
		return nil, err
	}

	now := time.Now()
	incurredAt := now
	if dto.IncurredAt != nil {
		incurredAt = *dto.IncurredAt
	}
	currency := dto.Currency
	if currency == "" {
		currency = "USD"
	}

	c := &Cost{
		ID:          uuid.NewString(),
		ProjectID:   dto.ProjectID,
		Description: dto.Description,
		AmountCents: dto.AmountCents,
		Currency:    currency,
		IncurredAt:  incurredAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(c); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     principalID,
		Action:     audit.ActionCreate,
		Resource:   "cost",
		ResourceID: c.ID,
		ProjectID:  c.ProjectID,
		Details:    "created cost entry " + c.Description,
		Success:    true,
	})
	return c, nil
}

func (s *Service) Update(ctx context.Context, principalID, id string, dto UpdateCostDTO) (*Cost, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(principalID, c.ProjectID, rbac.RoleAdmin, rbac.RoleEditor); err != nil {
		return nil, err
	}

	if dto.Description != nil {
		c.Description = *dto.Description
	}
	if dto.AmountCents != nil {
		c.AmountCents = *dto.AmountCents
	}
	if dto.Currency != nil {
		c.Currency = *dto.Currency
	}
	if dto.IncurredAt != nil {
		c.IncurredAt = *dto.IncurredAt
	}
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(c); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		UserID:     principalID,
		Action:     audit.ActionUpdate,
		Resource:   "cost",
		ResourceID: c.ID,
		ProjectID:  c.ProjectID,
		Details:    "updated cost entry " + c.Description,
		Success:    true,
	})
	return c, nil
}

func (s *Service) Delete(ctx context.Context, principalID, id string) error {
	c, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.policy.Authorize(principalID, c.ProjectID, rbac.RoleAdmin); err != nil {
		s.recorder.Record(ctx, audit.Entry{
			UserID:       principalID,
			Action:       audit.ActionDelete,
			Resource:     "cost",
			ResourceID:   id,
			ProjectID:    c.ProjectID,
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
		Resource:   "cost",
		ResourceID: id,
		ProjectID:  c.ProjectID,
		Details:    "deleted cost entry " + c.Description,
		Success:    true,
	})
	return nil
}
