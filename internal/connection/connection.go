package connection

import (
	"strings"
	"time"

	"github.com/frahmantamala/project-tracker/internal"
	connectionDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/connection"
)

// Connection is an external integration. ProjectID is nil for global
// connections shared across projects.
type Connection struct {
	ID        string    `json:"id"`
	ProjectID *string   `json:"projectId,omitempty"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Config    string    `json:"config,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var ErrConnectionNotFound = internal.NewNotFoundError("connection not found", internal.ErrCodeResourceNotFound)

type CreateConnectionDTO struct {
	ProjectID *string `json:"projectId,omitempty"`
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Config    string  `json:"config,omitempty"`
	Status    string  `json:"status,omitempty"`
}

type UpdateConnectionDTO struct {
	Name   *string `json:"name,omitempty"`
	Kind   *string `json:"kind,omitempty"`
	Config *string `json:"config,omitempty"`
	Status *string `json:"status,omitempty"`
}

func (d CreateConnectionDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(d.Kind) == "" {
		return internal.NewValidationError("kind is required", internal.ErrCodeValidationFailed)
	}
	if d.Status != "" && d.Status != StatusActive && d.Status != StatusInactive {
		return internal.NewValidationError("status must be active or inactive", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d UpdateConnectionDTO) Validate() error {
	if d.Name == nil && d.Kind == nil && d.Config == nil && d.Status == nil {
		return internal.NewValidationError("no fields to update", internal.ErrCodeValidationFailed)
	}
	if d.Status != nil && *d.Status != StatusActive && *d.Status != StatusInactive {
		return internal.NewValidationError("status must be active or inactive", internal.ErrCodeValidationFailed)
	}
	return nil
}

func ToDataModel(c *Connection) *connectionDatamodel.Connection {
	return &connectionDatamodel.Connection{
		ID:        c.ID,
		ProjectID: c.ProjectID,
		Name:      c.Name,
		Kind:      c.Kind,
		Config:    c.Config,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromDataModel(c *connectionDatamodel.Connection) *Connection {
	return &Connection{
		ID:        c.ID,
		ProjectID: c.ProjectID,
		Name:      c.Name,
		Kind:      c.Kind,
		Config:    c.Config,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
