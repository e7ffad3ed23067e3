package note

import (
	"strings"
	"time"

	"github.com/frahmantamala/project-tracker/internal"
	noteDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/note"
)

type Note struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var ErrNoteNotFound = internal.NewNotFoundError("note not found", internal.ErrCodeResourceNotFound)

type CreateNoteDTO struct {
	ProjectID string `json:"projectId"`
	Content   string `json:"content"`
}

type UpdateNoteDTO struct {
	Content *string `json:"content,omitempty"`
}

func (d CreateNoteDTO) Validate() error {
	if d.ProjectID == "" {
		return internal.NewValidationError("projectId is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(d.Content) == "" {
		return internal.NewValidationError("content is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d UpdateNoteDTO) Validate() error {
	if d.Content == nil {
		return internal.NewValidationError("no fields to update", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(*d.Content) == "" {
		return internal.NewValidationError("content cannot be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}

func ToDataModel(n *Note) *noteDatamodel.Note {
	return &noteDatamodel.Note{
		ID:        n.ID,
		ProjectID: n.ProjectID,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func FromDataModel(n *noteDatamodel.Note) *Note {
	return &Note{
		ID:        n.ID,
		ProjectID: n.ProjectID,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
