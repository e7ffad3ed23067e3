package timelog

import (
	"time"

	"github.com/frahmantamala/project-tracker/internal"
	timelogDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/timelog"
)

// TimeLog records hours a user spent on a project, optionally tied to a task.
type TimeLog struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	TaskID    *string   `json:"taskId,omitempty"`
	UserID    string    `json:"userId"`
	Hours     float64   `json:"hours"`
	Note      string    `json:"note,omitempty"`
	LoggedAt  time.Time `json:"loggedAt"`
	CreatedAt time.Time `json:"createdAt"`
}

var ErrTimeLogNotFound = internal.NewNotFoundError("time log not found", internal.ErrCodeResourceNotFound)

type CreateTimeLogDTO struct {
	ProjectID string     `json:"projectId"`
	TaskID    *string    `json:"taskId,omitempty"`
	Hours     float64    `json:"hours"`
	Note      string     `json:"note,omitempty"`
	LoggedAt  *time.Time `json:"loggedAt,omitempty"`
}

type UpdateTimeLogDTO struct {
	Hours    *float64   `json:"hours,omitempty"`
	Note     *string    `json:"note,omitempty"`
	LoggedAt *time.Time `json:"loggedAt,omitempty"`
}

// ListFilter narrows the listing; all fields are optional.
type ListFilter struct {
	ProjectID string
	UserID    string
	TaskID    string
}

func (d CreateTimeLogDTO) Validate() error {
	if d.ProjectID == "" {
		return internal.NewValidationError("projectId is required", internal.ErrCodeValidationFailed)
	}
	if d.Hours <= 0 {
		return internal.NewValidationError("hours must be positive", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d UpdateTimeLogDTO) Validate() error {
	if d.Hours == nil && d.Note == nil && d.LoggedAt == nil {
		return internal.NewValidationError("no fields to update", internal.ErrCodeValidationFailed)
	}
	if d.Hours != nil && *d.Hours <= 0 {
		return internal.NewValidationError("hours must be positive", internal.ErrCodeValidationFailed)
	}
	return nil
}

func ToDataModel(t *TimeLog) *timelogDatamodel.TimeLog {
	return &timelogDatamodel.TimeLog{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		TaskID:    t.TaskID,
		UserID:    t.UserID,
		Hours:     t.Hours,
		Note:      t.Note,
		LoggedAt:  t.LoggedAt,
		CreatedAt: t.CreatedAt,
	}
}

func FromDataModel(t *timelogDatamodel.TimeLog) *TimeLog {
	return &TimeLog{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		TaskID:    t.TaskID,
		UserID:    t.UserID,
		Hours:     t.Hours,
		Note:      t.Note,
		LoggedAt:  t.LoggedAt,
		CreatedAt: t.CreatedAt,
	}
}
