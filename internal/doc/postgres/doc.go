package postgres

import (
	docDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/doc"
	"github.com/frahmantamala/project-tracker/internal/doc"
	"gorm.io/gorm"
)

// DocRepository implements doc.RepositoryAPI using GORM
type DocRepository struct {
	db *gorm.DB
}

func NewDocRepository(db *gorm.DB) *DocRepository {
	return &DocRepository{db: db}
}

func (r *DocRepository) List(projectID string) ([]*doc.Doc, error) {
	query := r.db.Model(&docDatamodel.Doc{})
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var rows []docDatamodel.Doc
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	docs := make([]*doc.Doc, 0, len(rows))
	for i := range rows {
		docs = append(docs, doc.FromDataModel(&rows[i]))
	}
	return docs, nil
}

func (r *DocRepository) GetByID(id string) (*doc.Doc, error) {
	var row docDatamodel.Doc
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return doc.FromDataModel(&row), nil
}

func (r *DocRepository) Create(d *doc.Doc) error {
	return r.db.Create(doc.ToDataModel(d)).Error
}

func (r *DocRepository) Update(d *doc.Doc) error {
	return r.db.Save(doc.ToDataModel(d)).Error
}

func (r *DocRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&docDatamodel.Doc{}).Error
}
