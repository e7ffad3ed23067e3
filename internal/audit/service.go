package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	auditDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/audit"
	"github.com/frahmantamala/project-tracker/internal/core/events"
	"github.com/google/uuid"
)

type RepositoryAPI interface {
	Create(log *auditDatamodel.AuditLog) error
	List(filter Filter) ([]*auditDatamodel.AuditLog, error)
	GetByID(id string) (*auditDatamodel.AuditLog, error)
}

// Filter narrows audit queries. Zero values mean "no filter".
type Filter struct {
	ProjectID string
	UserID    string
	Resource  string
	Limit     int
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// RegisterSubscriber attaches the persistence handler to the bus.
func (s *Service) RegisterSubscriber(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeAuditRecorded, s.HandleAuditEvent)
}

// HandleAuditEvent persists one audit entry. A write failure is logged and
// swallowed; audit logging is best-effort, never transactional with the
// operation it describes.
func (s *Service) HandleAuditEvent(ctx context.Context, event events.Event) error {
	recorded, ok := event.(*events.AuditRecordedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	row := &auditDatamodel.AuditLog{
		ID:           uuid.NewString(),
		UserID:       optional(recorded.UserID),
		Action:       recorded.Action,
		Resource:     recorded.Resource,
		ResourceID:   optional(recorded.ResourceID),
		ProjectID:    optional(recorded.ProjectID),
		Details:      recorded.Details,
		Success:      recorded.Success,
		ErrorMessage: optional(recorded.ErrorMessage),
		IPAddress:    optional(recorded.IPAddress),
		UserAgent:    optional(recorded.UserAgent),
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to persist audit log",
			"error", err,
			"action", recorded.Action,
			"resource", recorded.Resource,
			"resource_id", recorded.ResourceID)
	}
	return nil
}

func (s *Service) List(filter Filter) ([]*Log, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}

	rows, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list audit logs", "error", err)
		return nil, err
	}

	logs := make([]*Log, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, FromDataModel(row))
	}
	return logs, nil
}

func (s *Service) GetByID(id string) (*Log, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
