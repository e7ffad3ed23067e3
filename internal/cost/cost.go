package cost

import (
	"strings"
	"time"

	"github.com/frahmantamala/project-tracker/internal"
	costDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/cost"
)

// Cost is a project expense entry. Amounts are stored in integer cents to
// avoid floating-point currency drift.
type Cost struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amountCents"`
	Currency    string    `json:"currency"`
	IncurredAt  time.Time `json:"incurredAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var ErrCostNotFound = internal.NewNotFoundError("cost entry not found", internal.ErrCodeResourceNotFound)

type CreateCostDTO struct {
	ProjectID   string     `json:"projectId"`
	Description string     `json:"description"`
	AmountCents int64      `json:"amountCents"`
	Currency    string     `json:"currency,omitempty"`
	IncurredAt  *time.Time `json:"incurredAt,omitempty"`
}

type UpdateCostDTO struct {
	Description *string    `json:"description,omitempty"`
	AmountCents *int64     `json:"amountCents,omitempty"`
	Currency    *string    `json:"currency,omitempty"`
	IncurredAt  *time.Time `json:"incurredAt,omitempty"`
}

func (d CreateCostDTO) Validate() error {
	if d.ProjectID == "" {
		return internal.NewValidationError("projectId is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(d.Description) == "" {
		return internal.NewValidationError("description is required", internal.ErrCodeValidationFailed)
	}
	if d.AmountCents <= 0 {
		return internal.NewValidationError("amountCents must be positive", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d UpdateCostDTO) Validate() error {
	if d.Description == nil && d.AmountCents == nil && d.Currency == nil && d.IncurredAt == nil {
		return internal.NewValidationError("no fields to update", internal.ErrCodeValidationFailed)
	}
	if d.AmountCents != nil && *d.AmountCents <= 0 {
		return internal.NewValidationError("amountCents must be positive", internal.ErrCodeValidationFailed)
	}
	return nil
}

func ToDataModel(c *Cost) *costDatamodel.Cost {
	return &costDatamodel.Cost{
		ID:          c.ID,
		ProjectID:   c.ProjectID,
		Description: c.Description,
		AmountCents: c.AmountCents,
		Currency:    c.Currency,
		IncurredAt:  c.IncurredAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromDataModel(c *costDatamodel.Cost) *Cost {
	return &Cost{
		ID:          c.ID,
		ProjectID:   c.ProjectID,
		Description: c.Description,
		AmountCents: c.AmountCents,
		Currency:    c.Currency,
		IncurredAt:  c.IncurredAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
