package task

import (
	"strings"
	"time"

	"github.com/frahmantamala/project-tracker/internal"
	taskDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/task"
)

// Task is a unit of project work. Tasks nest through ParentID; subtasks always
// belong to the same project as their parent.
type Task struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	ParentID    *string   `json:"parentId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Children is populated on single-task reads only.
	Children []*Task `json:"children,omitempty"`
}

const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

var (
	ErrTaskNotFound      = internal.NewNotFoundError("task not found", internal.ErrCodeResourceNotFound)
	ErrParentNotFound    = internal.NewValidationError("parent task not found", internal.ErrCodeValidationFailed)
	ErrParentWrongScope  = internal.NewValidationError("parent task belongs to a different project", internal.ErrCodeValidationFailed)
	ErrSelfParent        = internal.NewValidationError("a task cannot be its own parent", internal.ErrCodeValidationFailed)
	ErrInvalidTaskStatus = internal.NewValidationError("status must be todo, in_progress or done", internal.ErrCodeValidationFailed)
)

func validStatus(s string) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type CreateTaskDTO struct {
	ProjectID   string  `json:"projectId"`
	ParentID    *string `json:"parentId,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
}

type UpdateTaskDTO struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
}

func (d CreateTaskDTO) Validate() error {
	if d.ProjectID == "" {
		return internal.NewValidationError("projectId is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(d.Title) == "" {
		return internal.NewValidationError("title is required", internal.ErrCodeValidationFailed)
	}
	if d.Status != "" && !validStatus(d.Status) {
		return ErrInvalidTaskStatus
	}
	return nil
}

func (d UpdateTaskDTO) Validate() error {
	if d.Title == nil && d.Description == nil && d.Status == nil && d.ParentID == nil {
		return internal.NewValidationError("no fields to update", internal.ErrCodeValidationFailed)
	}
	if d.Title != nil && strings.TrimSpace(*d.Title) == "" {
		return internal.NewValidationError("title cannot be empty", internal.ErrCodeValidationFailed)
	}
	if d.Status != nil && !validStatus(*d.Status) {
		return ErrInvalidTaskStatus
	}
	return nil
}

func ToDataModel(t *Task) *taskDatamodel.Task {
	return &taskDatamodel.Task{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		ParentID:    t.ParentID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func FromDataModel(t *taskDatamodel.Task) *Task {
	return &Task{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		ParentID:    t.ParentID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
