package postgres

import (
	noteDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/note"
	"github.com/frahmantamala/project-tracker/internal/note"
	"gorm.io/gorm"
)

// NoteRepository implements note.RepositoryAPI using GORM
type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) List(projectID string) ([]*note.Note, error) {
	query := r.db.Model(&noteDatamodel.Note{})
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var rows []noteDatamodel.Note
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	notes := make([]*note.Note, 0, len(rows))
	for i := range rows {
		notes = append(notes, note.FromDataModel(&rows[i]))
	}
	return notes, nil
}

func (r *NoteRepository) GetByID(id string) (*note.Note, error) {
	var row noteDatamodel.Note
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return note.FromDataModel(&row), nil
}

func (r *NoteRepository) Create(n *note.Note) error {
	return r.db.Create(note.ToDataModel(n)).Error
}

func (r *NoteRepository) Update(n *note.Note) error {
	return r.db.Save(note.ToDataModel(n)).Error
}

func (r *NoteRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&noteDatamodel.Note{}).Error
}
