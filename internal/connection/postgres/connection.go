package postgres

import (
	"github.com/frahmantamala/project-tracker/internal/connection"
	connectionDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/connection"
	"gorm.io/gorm"
)

// ConnectionRepository implements connection.RepositoryAPI using GORM
type ConnectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

func (r *ConnectionRepository) List(projectID string) ([]*connection.Connection, error) {
	query := r.db.Model(&connectionDatamodel.Connection{})
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var rows []connectionDatamodel.Connection
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	connections := make([]*connection.Connection, 0, len(rows))
	for i := range rows {
		connections = append(connections, connection.FromDataModel(&rows[i]))
	}
	return connections, nil
}

func (r *ConnectionRepository) GetByID(id string) (*connection.Connection, error) {
	var row connectionDatamodel.Connection
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return connection.FromDataModel(&row), nil
}

func (r *ConnectionRepository) Create(c *connection.Connection) error {
	return r.db.Create(connection.ToDataModel(c)).Error
}

func (r *ConnectionRepository) Update(c *connection.Connection) error {
	return r.db.Save(connection.ToDataModel(c)).Error
}

func (r *ConnectionRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&connectionDatamodel.Connection{}).Error
}
