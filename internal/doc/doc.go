package doc

import (
	"strings"
	"time"

	"github.com/frahmantamala/project-tracker/internal"
	docDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/doc"
)

type Doc struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	URL       *string   `json:"url,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var ErrDocNotFound = internal.NewNotFoundError("doc not found", internal.ErrCodeResourceNotFound)

type CreateDocDTO struct {
	ProjectID string  `json:"projectId"`
	Title     string  `json:"title"`
	Content   string  `json:"content,omitempty"`
	URL       *string `json:"url,omitempty"`
}

type UpdateDocDTO struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	URL     *string `json:"url,omitempty"`
}

func (d CreateDocDTO) Validate() error {
	if d.ProjectID == "" {
		return internal.NewValidationError("projectId is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(d.Title) == "" {
		return internal.NewValidationError("title is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d UpdateDocDTO) Validate() error {
	if d.Title == nil && d.Content == nil && d.URL == nil {
		return internal.NewValidationError("no fields to update", internal.ErrCodeValidationFailed)
	}
	if d.Title != nil && strings.TrimSpace(*d.Title) == "" {
		return internal.NewValidationError("title cannot be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}

func ToDataModel(d *Doc) *docDatamodel.Doc {
	return &docDatamodel.Doc{
		ID:        d.ID,
		ProjectID: d.ProjectID,
		Title:     d.Title,
		Content:   d.Content,
		URL:       d.URL,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func FromDataModel(d *docDatamodel.Doc) *Doc {
	return &Doc{
		ID:        d.ID,
		ProjectID: d.ProjectID,
		Title:     d.Title,
		Content:   d.Content,
		URL:       d.URL,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
